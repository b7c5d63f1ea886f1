package polylead

import (
	"strconv"
	"strings"
)

// ============================================================
// Renderer
// ============================================================

// Display is a term ready for presentation.
type Display struct {
	// Text uses carets: "3x^2y", "-x/y^2".
	Text string `json:"text"`
	// Pretty uses Unicode superscripts: "3x²y", "-x/y²".
	Pretty string `json:"pretty"`
	LaTeX  string `json:"latex"`
	// Coefficient and Degree of the term, Coefficient formatted.
	Coefficient string `json:"coefficient"`
	Degree      int    `json:"degree"`
	// Variables lists every variable known to the caller, "x, y".
	Variables string `json:"variables"`
}

// Render turns a term into display text. Variables with positive powers
// come first, sorted; negative powers follow a division marker with their
// absolute value. A coefficient of 1 is omitted, -1 renders as a bare sign,
// and a term without variables renders as its coefficient.
func Render(term TermGroup, vars []string) Display {
	coef := term.Coefficient
	if coef == nil {
		coef = ratInt(0)
	}
	d := Display{
		Coefficient: FormatCoefficient(coef),
		Degree:      term.Degree,
		Variables:   strings.Join(vars, ", "),
	}
	num, den := term.Signature.split()
	if len(num) == 0 && len(den) == 0 {
		d.Text = d.Coefficient
		d.Pretty = d.Coefficient
		d.LaTeX = coefficientLaTeX(coef)
		return d
	}

	prefix, latexPrefix := "", ""
	switch {
	case ratIsOne(coef):
	case ratIsNegOne(coef):
		prefix, latexPrefix = "-", "-"
	default:
		prefix, latexPrefix = d.Coefficient, coefficientLaTeX(coef)
		if strings.Contains(prefix, "/") {
			prefix = "(" + prefix + ")"
		}
	}
	if len(num) == 0 {
		// 1/x, -1/x, 3/x: the numerator is the coefficient itself.
		if prefix == "" || prefix == "-" {
			prefix += "1"
		}
		latexPrefix = ""
		if coef.Sign() < 0 {
			latexPrefix = "-"
		}
		d.Text = prefix + "/" + joinPowers(den, caretPower)
		d.Pretty = prefix + "/" + joinPowers(den, superscriptPower)
		d.LaTeX = latexPrefix + "\\frac{" + coefficientLaTeX(ratAbs(coef)) + "}{" + joinPowers(den, latexPower) + "}"
		return d
	}

	d.Text = prefix + joinPowers(num, caretPower)
	d.Pretty = prefix + joinPowers(num, superscriptPower)
	if len(den) > 0 {
		d.Text += "/" + joinPowers(den, caretPower)
		d.Pretty += "/" + joinPowers(den, superscriptPower)
	}
	d.LaTeX = latexTerm(latexPrefix, num, den)
	return d
}

func joinPowers(s Signature, f func(Power) string) string {
	var b strings.Builder
	for _, p := range s {
		b.WriteString(f(p))
	}
	return b.String()
}

func caretPower(p Power) string { return p.caret() }

func superscriptPower(p Power) string {
	e := abs(p.Exp)
	if e == 1 {
		return p.Var
	}
	return p.Var + toSuperscript(e)
}

func latexPower(p Power) string {
	e := abs(p.Exp)
	if e == 1 {
		return p.Var
	}
	return p.Var + "^{" + strconv.Itoa(e) + "}"
}

func latexTerm(prefix string, num, den Signature) string {
	if len(den) == 0 {
		return prefix + joinPowers(num, latexPower)
	}
	return prefix + "\\frac{" + joinPowers(num, latexPower) + "}{" + joinPowers(den, latexPower) + "}"
}

var superscriptDigits = []rune("⁰¹²³⁴⁵⁶⁷⁸⁹")

func toSuperscript(n int) string {
	var b strings.Builder
	for _, c := range strconv.Itoa(n) {
		b.WriteRune(superscriptDigits[c-'0'])
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
