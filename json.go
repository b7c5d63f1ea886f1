package polylead

import (
	"encoding/json"
)

// ============================================================
// JSON Serialization
// ============================================================

// Coefficients are written as strings ("3", "-1/2", "0.5") so that exact
// rationals survive the trip through float-only JSON clients.

type monomialJSON struct {
	Term        string         `json:"term"`
	Coefficient string         `json:"coefficient"`
	Exponents   map[string]int `json:"exponents"`
	Degree      int            `json:"degree"`
}

func (m Monomial) MarshalJSON() ([]byte, error) {
	exps := m.Exponents
	if exps == nil {
		exps = map[string]int{}
	}
	return json.Marshal(monomialJSON{
		Term:        m.String(),
		Coefficient: FormatCoefficient(m.Coefficient),
		Exponents:   exps,
		Degree:      m.Degree(),
	})
}

type termGroupJSON struct {
	Term        string         `json:"term"`
	Coefficient string         `json:"coefficient"`
	Signature   map[string]int `json:"signature"`
	Degree      int            `json:"degree"`
}

func (g TermGroup) MarshalJSON() ([]byte, error) {
	coef := g.Coefficient
	if coef == nil {
		coef = ratInt(0)
	}
	return json.Marshal(termGroupJSON{
		Term:        Monomial{Coefficient: coef, Exponents: g.Signature.Map()}.String(),
		Coefficient: FormatCoefficient(coef),
		Signature:   g.Signature.Map(),
		Degree:      g.Degree,
	})
}

type analysisJSON struct {
	OriginalExpression   string      `json:"original_expression"`
	NormalizedExpression string      `json:"normalized_expression"`
	LeadingTerm          TermGroup   `json:"leading_term"`
	LeadingCoefficient   string      `json:"leading_coefficient"`
	Degree               int         `json:"degree"`
	Groups               []TermGroup `json:"groups"`
	AllVariables         []string    `json:"all_variables"`
	Display              Display     `json:"display"`
}

func (a *Analysis) MarshalJSON() ([]byte, error) {
	groups, vars := a.Groups, a.AllVariables
	if groups == nil {
		groups = []TermGroup{}
	}
	if vars == nil {
		vars = []string{}
	}
	return json.Marshal(analysisJSON{
		OriginalExpression:   a.OriginalExpression,
		NormalizedExpression: a.NormalizedExpression,
		LeadingTerm:          a.LeadingTerm,
		LeadingCoefficient:   FormatCoefficient(a.LeadingTerm.Coefficient),
		Degree:               a.LeadingTerm.Degree,
		Groups:               groups,
		AllVariables:         vars,
		Display:              a.Render(),
	})
}

// ToJSON encodes an analysis as a JSON string.
func ToJSON(a *Analysis) (string, error) {
	b, err := json.Marshal(a)
	return string(b), err
}
