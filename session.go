package polylead

import (
	"errors"
	"strings"
)

// ============================================================
// Session — the input form as a state machine
// ============================================================

// State is where a Session stands.
type State int

const (
	StateIdle State = iota
	StateInvalid
	StateValid
	StateAnalyzed
	StateFailed
)

var stateNames = [...]string{"idle", "invalid", "valid", "analyzed", "failed"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// ErrSessionNotReady is returned by Session.Analyze outside StateValid.
var ErrSessionNotReady = errors.New("session: input is not valid, nothing to analyze")

// Session tracks one user's input through validation and analysis.
// Transitions happen only through Input, Analyze and Reset:
//
//	Idle --Input--> Valid | Invalid
//	Valid --Analyze--> Analyzed | Failed
//	any --Input--> Valid | Invalid, any --Reset--> Idle
//
// A Session is owned by one caller and is not safe for concurrent use.
type Session struct {
	analyzer *Analyzer
	state    State
	input    string
	result   *Analysis
	err      error
}

// NewSession returns an idle session analyzing with a. A nil a uses the
// default limits.
func NewSession(a *Analyzer) *Session {
	if a == nil {
		a = defaultAnalyzer
	}
	return &Session{analyzer: a}
}

func (s *Session) State() State { return s.state }

// Expression is the last input, "" when idle.
func (s *Session) Expression() string { return s.input }

// Result is the last analysis, nil unless the state is StateAnalyzed.
func (s *Session) Result() *Analysis { return s.result }

// Err explains StateInvalid or StateFailed; nil otherwise.
func (s *Session) Err() error { return s.err }

// CanAnalyze reports whether Analyze would run.
func (s *Session) CanAnalyze() bool { return s.state == StateValid }

// Input replaces the expression and validates it. Blank input returns the
// session to Idle rather than Invalid.
func (s *Session) Input(expr string) State {
	s.input, s.result, s.err = expr, nil, nil
	if strings.TrimSpace(expr) == "" {
		s.state = StateIdle
		return s.state
	}
	if err := Check(expr); err != nil {
		s.state, s.err = StateInvalid, err
		return s.state
	}
	s.state = StateValid
	return s.state
}

// Analyze runs the pipeline on the current input.
func (s *Session) Analyze() (*Analysis, error) {
	if s.state != StateValid {
		return nil, ErrSessionNotReady
	}
	res, err := s.analyzer.Analyze(s.input)
	if err != nil {
		s.state, s.err = StateFailed, err
		return nil, err
	}
	s.state, s.result = StateAnalyzed, res
	return res, nil
}

// Reset clears the session back to Idle.
func (s *Session) Reset() {
	s.state, s.input, s.result, s.err = StateIdle, "", nil, nil
}
