// Package tui is the interactive analyzer: a single input line validated
// as the user types, with Enter running the analysis.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/njchilds90/polylead"
	"github.com/njchilds90/polylead/internal/ux"
)

const hint = "type a polynomial, e.g. 3x^2y - (x+1)(x-1)   enter: analyze   esc: quit"

// Model is the bubbletea model driving a polylead.Session.
//
// # Description
//
// Every keystroke that changes the input is fed to Session.Input, so the
// view always reflects the pre-flight check of what is on screen. Enter
// runs Session.Analyze when the input is valid; Esc, Ctrl+C and Ctrl+D quit.
//
// # Thread Safety
//
// Owned by the bubbletea event loop. Not safe for concurrent use.
type Model struct {
	input   textinput.Model
	session *polylead.Session
	history []string
	quit    bool
}

// New returns a focused model analyzing with a. A nil a uses the default
// analyzer.
func New(a *polylead.Analyzer) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "x^2 + 2xy + y^2"
	ti.Focus()
	ti.Width = 80
	if a != nil && a.MaxLength() > 0 {
		ti.CharLimit = a.MaxLength()
	}
	return Model{input: ti, session: polylead.NewSession(a)}
}

// Session exposes the underlying session.
func (m Model) Session() *polylead.Session { return m.session }

// History lists the expressions analyzed so far, oldest first.
func (m Model) History() []string { return m.history }

// Quitting reports whether the model has asked the program to exit.
func (m Model) Quitting() bool { return m.quit }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEsc, tea.KeyCtrlC, tea.KeyCtrlD:
			m.quit = true
			return m, tea.Quit

		case tea.KeyEnter:
			if m.session.CanAnalyze() {
				if _, err := m.session.Analyze(); err == nil {
					m.history = append(m.history, m.session.Expression())
				}
			}
			return m, nil

		case tea.KeyCtrlL:
			m.input.SetValue("")
			m.session.Reset()
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.session.Input(after)
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quit {
		return ""
	}
	var b strings.Builder
	b.WriteString(ux.Styles.Title.Render("polylead"))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.status())
	b.WriteString("\n\n")
	b.WriteString(ux.Styles.Muted.Render(hint))
	b.WriteString("\n")
	return b.String()
}

func (m Model) status() string {
	s := m.session
	switch s.State() {
	case polylead.StateInvalid, polylead.StateFailed:
		return ux.FormatError(s.Expression(), s.Err())
	case polylead.StateValid:
		return ux.FormatValid(s.Expression())
	case polylead.StateAnalyzed:
		return ux.FormatAnalysis(s.Result())
	}
	return ux.Styles.Muted.Render("waiting for input")
}

// Run starts the interactive program on the terminal, drawing to out.
func Run(a *polylead.Analyzer, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(a), tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
