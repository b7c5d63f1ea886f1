// Package polylead analyzes polynomial expressions typed as text.
//
// Given a sum of monomials in single-letter variables, with optional
// exponents, parenthesized products, explicit and implicit multiplication
// and simple division, it validates the syntax, normalizes the expression
// into canonical monomials, consolidates like terms and picks the leading
// term: the term of highest total degree together with its coefficient.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat)
//   - Pure functions: no state survives a call
//   - Deterministic output, including tie-breaks between leading terms
//   - JSON and tool-call friendly results
//
// The pipeline is Check → Normalize → Aggregate → SelectLeadingTerm, with
// Render turning the selected term into display text.
package polylead

import (
	"errors"
	"math/big"
	"strings"
)

// DefaultMaxLength bounds the length of an analyzed expression in bytes.
const DefaultMaxLength = 4096

// ============================================================
// Analyzer
// ============================================================

// Analyzer runs the pipeline with fixed limits. Its zero value is not
// usable; build one with New. It holds no mutable state and is safe for
// concurrent use.
type Analyzer struct {
	maxTerms  int
	maxLength int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithMaxTerms bounds how many monomials expansion may produce.
func WithMaxTerms(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxTerms = n
		}
	}
}

// WithMaxLength bounds the input length in bytes; 0 disables the limit.
func WithMaxLength(n int) Option {
	return func(a *Analyzer) {
		if n >= 0 {
			a.maxLength = n
		}
	}
}

// New returns an Analyzer with the given options applied over the defaults.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{maxTerms: DefaultMaxTerms, maxLength: DefaultMaxLength}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var defaultAnalyzer = New()

// MaxTerms reports the expansion limit.
func (a *Analyzer) MaxTerms() int { return a.maxTerms }

// MaxLength reports the input length limit, 0 meaning unlimited.
func (a *Analyzer) MaxLength() int { return a.maxLength }

func (a *Analyzer) checkLength(expr string) error {
	if a.maxLength > 0 && len(expr) > a.maxLength {
		return newError(KindExpressionTooLong, a.maxLength, "")
	}
	return nil
}

// ============================================================
// Normalize
// ============================================================

// Normalize rewrites expr as a flat sum of monomials: no parentheses, no
// '*', each term in canonical form ("3x^2y", "-x/y", "z/3"). Like terms
// are not combined. Input that is already a flat sum keeps its own
// spelling, with only the whitespace around + and - rewritten, so
// Normalize is idempotent.
func Normalize(expr string) (string, error) { return defaultAnalyzer.Normalize(expr) }

// Normalize is the package-level Normalize with this analyzer's limits.
func (a *Analyzer) Normalize(expr string) (string, error) {
	monos, err := a.expand(expr)
	if err != nil {
		return "", err
	}
	if flat, ok := flatSum(expr); ok {
		return flat, nil
	}
	return FormatSum(monos), nil
}

// flatSum rejoins expr term by term when it has no parentheses, no '*'
// and at most one sign per term.
func flatSum(expr string) (string, bool) {
	toks, err := Tokenize(expr)
	if err != nil {
		return "", false
	}
	for _, tok := range toks {
		switch tok.Kind {
		case TokenLParen, TokenRParen, TokenStar:
			return "", false
		}
	}
	terms, err := SplitTerms(expr)
	if err != nil {
		return "", false
	}
	var b strings.Builder
	for i, t := range terms {
		neg := strings.HasPrefix(t, "-")
		body := strings.TrimPrefix(t, "-")
		if body == "" || body[0] == '+' || body[0] == '-' {
			return "", false
		}
		switch {
		case i == 0 && neg:
			b.WriteString("-")
		case i > 0 && neg:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		b.WriteString(body)
	}
	return b.String(), true
}

// Expand returns the expanded monomials behind Normalize, before any
// like terms are combined.
func (a *Analyzer) Expand(expr string) ([]Monomial, error) { return a.expand(expr) }

func (a *Analyzer) expand(expr string) ([]Monomial, error) {
	if err := a.checkLength(expr); err != nil {
		return nil, err
	}
	n, err := parse(expr)
	if err != nil {
		return nil, err
	}
	return newExpander(a.maxTerms).expand(n)
}

// FormatSum joins monomials as "t1 + t2 - t3".
func FormatSum(monos []Monomial) string {
	var b strings.Builder
	for i, m := range monos {
		neg := m.Coefficient.Sign() < 0
		switch {
		case i == 0 && neg:
			b.WriteString("-")
		case i > 0 && neg:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		b.WriteString(m.magnitude())
	}
	return b.String()
}

// ============================================================
// Analyze
// ============================================================

// Analysis is the result of one successful Analyze call.
type Analysis struct {
	OriginalExpression   string
	NormalizedExpression string
	LeadingTerm          TermGroup
	// Groups are every surviving term group, in first-appearance order.
	Groups       []TermGroup
	AllVariables []string
}

// LeadingCoefficient is the coefficient of the leading term.
func (a *Analysis) LeadingCoefficient() *big.Rat { return ratCopy(a.LeadingTerm.Coefficient) }

// Degree is the total degree of the leading term.
func (a *Analysis) Degree() int { return a.LeadingTerm.Degree }

// Render renders the leading term against the analysis' variables.
func (a *Analysis) Render() Display { return Render(a.LeadingTerm, a.AllVariables) }

// Analyze validates expr, normalizes it, consolidates like terms and picks
// the leading term. Every failure is a *ValidationError.
func Analyze(expr string) (*Analysis, error) { return defaultAnalyzer.Analyze(expr) }

// Analyze is the package-level Analyze with this analyzer's limits.
func (a *Analyzer) Analyze(expr string) (*Analysis, error) {
	if err := Check(expr); err != nil {
		return nil, err
	}
	normalized, err := a.Normalize(expr)
	if err != nil {
		return nil, classify(err)
	}
	groups, err := a.aggregate(normalized)
	if err != nil {
		return nil, classify(err)
	}
	return &Analysis{
		OriginalExpression:   expr,
		NormalizedExpression: normalized,
		LeadingTerm:          SelectLeadingTerm(groups),
		Groups:               groups,
		AllVariables:         Variables(expr),
	}, nil
}

// classify turns pipeline errors into *ValidationError.
func classify(err error) error {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	var se *SyntaxError
	if errors.As(err, &se) {
		return wrapError(KindNoParsableTermsAfterNormalization, err)
	}
	return wrapError(KindInvalidExpression, err)
}
