package polylead

import (
	"math/big"
	"strings"
)

// ============================================================
// TermGroup — like terms collapsed into one
// ============================================================

// TermGroup is every monomial sharing one signature, with coefficients
// summed. Degree is the sum of the signature's powers, 0 for constants.
type TermGroup struct {
	Signature   Signature
	Coefficient *big.Rat
	Degree      int
}

// IsConstant reports whether the group has the constant signature.
func (g TermGroup) IsConstant() bool { return len(g.Signature) == 0 }

// Monomial returns the group as a single monomial.
func (g TermGroup) Monomial() Monomial {
	return Monomial{Coefficient: ratCopy(g.Coefficient), Exponents: g.Signature.Map()}
}

// String writes the group in normalized form, e.g. "3x^2y".
func (g TermGroup) String() string { return g.Monomial().String() }

// ZeroTerm is the synthetic result of a polynomial whose terms all cancel.
func ZeroTerm() TermGroup {
	return TermGroup{Signature: Signature{}, Coefficient: ratInt(0), Degree: 0}
}

// ============================================================
// Aggregation
// ============================================================

// Aggregate splits a normalized expression into its top-level signed terms,
// parses each with ParseMonomial and consolidates like terms.
func Aggregate(normalized string) ([]TermGroup, error) { return defaultAnalyzer.Aggregate(normalized) }

// Aggregate is the package-level Aggregate with this analyzer's limits.
func (a *Analyzer) Aggregate(normalized string) ([]TermGroup, error) {
	if err := a.checkLength(normalized); err != nil {
		return nil, err
	}
	return a.aggregate(normalized)
}

// aggregate skips the length check: Analyze feeds it expanded text, which
// may be longer than the input it came from.
func (a *Analyzer) aggregate(normalized string) ([]TermGroup, error) {
	terms, err := SplitTerms(normalized)
	if err != nil {
		return nil, err
	}
	monos := make([]Monomial, 0, len(terms))
	for _, t := range terms {
		m, err := parseMonomial(t, a.maxTerms)
		if err != nil {
			return nil, err
		}
		monos = append(monos, m)
	}
	return AggregateMonomials(monos), nil
}

// AggregateMonomials groups monomials by signature in first-appearance
// order, sums coefficients and drops groups that sum to exactly zero.
func AggregateMonomials(monos []Monomial) []TermGroup {
	index := map[string]int{}
	var groups []TermGroup
	for _, m := range monos {
		sig := m.Signature()
		key := sig.Key()
		if i, ok := index[key]; ok {
			groups[i].Coefficient = ratAdd(groups[i].Coefficient, m.Coefficient)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, TermGroup{Signature: sig, Coefficient: ratCopy(m.Coefficient), Degree: sig.Degree()})
	}
	kept := make([]TermGroup, 0, len(groups))
	for _, g := range groups {
		if g.Coefficient.Sign() != 0 {
			kept = append(kept, g)
		}
	}
	return kept
}

// SplitTerms cuts an expression at its top-level binary + and - operators.
// Each returned term keeps its sign: "3x - 2y" gives "3x", "-2y". Signs
// inside parentheses or directly after *, / or another sign stay put.
func SplitTerms(expr string) ([]string, error) {
	toks, err := Tokenize(expr)
	if err != nil {
		return nil, err
	}
	var terms []string
	start, depth := 0, 0
	var prev Token
	for i, tok := range toks {
		switch tok.Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			depth--
		case TokenPlus, TokenMinus:
			if depth == 0 && i > 0 && prev.endsOperand() {
				terms = appendTerm(terms, expr[start:tok.Pos])
				start = tok.Pos
			}
		case TokenEOF:
			terms = appendTerm(terms, expr[start:])
		}
		prev = tok
	}
	if len(terms) == 0 {
		return nil, syntaxErrorf(0, "no terms found")
	}
	return terms, nil
}

func appendTerm(terms []string, t string) []string {
	t = strings.TrimSpace(t)
	if t == "" {
		return terms
	}
	switch t[0] {
	case '+':
		t = strings.TrimSpace(t[1:])
	case '-':
		t = "-" + strings.TrimSpace(t[1:])
	}
	return append(terms, t)
}
