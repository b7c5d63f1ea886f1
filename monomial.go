package polylead

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// Monomial — coefficient times variables with integer powers
// ============================================================

// Monomial is a signed rational coefficient times a product of variables.
// Exponents never holds a zero power; an empty map is a constant.
type Monomial struct {
	Coefficient *big.Rat
	Exponents   map[string]int
}

// NewMonomial builds a monomial, dropping zero powers.
func NewMonomial(coef *big.Rat, exps map[string]int) Monomial {
	m := Monomial{Coefficient: ratCopy(coef), Exponents: map[string]int{}}
	for v, p := range exps {
		if p != 0 {
			m.Exponents[strings.ToLower(v)] += p
		}
	}
	for v, p := range m.Exponents {
		if p == 0 {
			delete(m.Exponents, v)
		}
	}
	return m
}

func constant(c *big.Rat) Monomial {
	return Monomial{Coefficient: c, Exponents: map[string]int{}}
}

// IsConstant reports whether the monomial has no variables.
func (m Monomial) IsConstant() bool { return len(m.Exponents) == 0 }

// Degree is the sum of all powers.
func (m Monomial) Degree() int {
	d := 0
	for _, p := range m.Exponents {
		d += p
	}
	return d
}

// Mul multiplies two monomials, summing powers of shared variables.
// Powers are not range-checked; the analyzer rejects anything beyond
// MaxExponent before calling it.
func (m Monomial) Mul(o Monomial) Monomial {
	exps := make(map[string]int, len(m.Exponents)+len(o.Exponents))
	for v, p := range m.Exponents {
		exps[v] = p
	}
	for v, p := range o.Exponents {
		if n := exps[v] + p; n != 0 {
			exps[v] = n
		} else {
			delete(exps, v)
		}
	}
	return Monomial{Coefficient: ratMul(m.Coefficient, o.Coefficient), Exponents: exps}
}

// Neg flips the sign of the coefficient.
func (m Monomial) Neg() Monomial {
	return Monomial{Coefficient: ratNeg(m.Coefficient), Exponents: m.Exponents}
}

// Pow raises the monomial to a non-negative integer power. Like Mul it
// does not range-check the resulting powers.
func (m Monomial) Pow(n int) Monomial {
	if n == 0 {
		return constant(ratInt(1))
	}
	exps := make(map[string]int, len(m.Exponents))
	for v, p := range m.Exponents {
		exps[v] = p * n
	}
	return Monomial{Coefficient: ratPow(m.Coefficient, n), Exponents: exps}
}

// Inverse returns 1/m: reciprocal coefficient, negated powers.
// The caller guarantees a non-zero coefficient.
func (m Monomial) Inverse() Monomial {
	exps := make(map[string]int, len(m.Exponents))
	for v, p := range m.Exponents {
		exps[v] = -p
	}
	return Monomial{Coefficient: new(big.Rat).Inv(m.Coefficient), Exponents: exps}
}

// Signature returns the sorted (variable, power) list of the monomial.
func (m Monomial) Signature() Signature {
	sig := make(Signature, 0, len(m.Exponents))
	for v, p := range m.Exponents {
		sig = append(sig, Power{Var: v, Exp: p})
	}
	sort.Slice(sig, func(i, j int) bool { return sig[i].Var < sig[j].Var })
	return sig
}

// String writes the monomial in normalized form with its sign, e.g. "-3x^2/y".
func (m Monomial) String() string {
	if m.Coefficient.Sign() < 0 {
		return "-" + m.magnitude()
	}
	return m.magnitude()
}

// magnitude writes |coefficient| and the variables: "3x^2y/z", "0.5",
// "1/x". A coefficient without a finite decimal form is split around the
// division marker, so (1/3)x is "x/3" and (2/3)/y is "2/3y".
func (m Monomial) magnitude() string {
	abs := ratAbs(m.Coefficient)
	num, den := m.Signature().split()
	var b strings.Builder
	if decimalDigits(abs) < 0 {
		if abs.Num().Cmp(big.NewInt(1)) != 0 || len(num) == 0 {
			b.WriteString(abs.Num().String())
		}
		for _, p := range num {
			b.WriteString(p.caret())
		}
		b.WriteByte('/')
		b.WriteString(abs.Denom().String())
		for _, p := range den {
			b.WriteString(p.caret())
		}
		return b.String()
	}
	if len(num) == 0 || !ratIsOne(abs) {
		b.WriteString(FormatCoefficient(abs))
	}
	for _, p := range num {
		b.WriteString(p.caret())
	}
	if len(den) > 0 {
		b.WriteByte('/')
		for _, p := range den {
			b.WriteString(p.caret())
		}
	}
	return b.String()
}

// ============================================================
// Signature
// ============================================================

// Power is one (variable, power) pair of a signature.
type Power struct {
	Var string `json:"var"`
	Exp int    `json:"exp"`
}

// caret writes |Exp| as "x" or "x^n".
func (p Power) caret() string {
	e := p.Exp
	if e < 0 {
		e = -e
	}
	if e == 1 {
		return p.Var
	}
	return p.Var + "^" + strconv.Itoa(e)
}

// Signature is a sorted list of (variable, power) pairs with no zero powers.
// The empty signature is the constant signature.
type Signature []Power

// Key is the grouping and ordering key, e.g. "x^2,y^1"; "" for constants.
func (s Signature) Key() string {
	parts := make([]string, len(s))
	for i, p := range s {
		parts[i] = p.Var + "^" + strconv.Itoa(p.Exp)
	}
	return strings.Join(parts, ",")
}

// Degree is the sum of the powers.
func (s Signature) Degree() int {
	d := 0
	for _, p := range s {
		d += p.Exp
	}
	return d
}

// Map returns the signature as a variable→power map.
func (s Signature) Map() map[string]int {
	out := make(map[string]int, len(s))
	for _, p := range s {
		out[p.Var] = p.Exp
	}
	return out
}

// Variables lists the signature's variables in order.
func (s Signature) Variables() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Var
	}
	return out
}

// split separates positive powers from negative ones.
func (s Signature) split() (num, den Signature) {
	for _, p := range s {
		if p.Exp > 0 {
			num = append(num, p)
		} else {
			den = append(den, p)
		}
	}
	return num, den
}

// ============================================================
// Term parser
// ============================================================

// ParseMonomial reads one term such as "-3x^2y", "yyy" or "4x/y^2" into a
// Monomial. Everything after the division marker is the denominator, so
// "x/yz" is x·y⁻¹·z⁻¹. Text that expands to more than one monomial is
// rejected.
func ParseMonomial(term string) (Monomial, error) { return defaultAnalyzer.ParseMonomial(term) }

// ParseMonomial is the package-level ParseMonomial with this analyzer's
// limits.
func (a *Analyzer) ParseMonomial(term string) (Monomial, error) {
	if err := a.checkLength(term); err != nil {
		return Monomial{}, err
	}
	return parseMonomial(term, a.maxTerms)
}

func parseMonomial(term string, maxTerms int) (Monomial, error) {
	n, err := parse(term)
	if err != nil {
		return Monomial{}, err
	}
	monos, err := newExpander(maxTerms).expand(n)
	if err != nil {
		return Monomial{}, err
	}
	if len(monos) != 1 {
		return Monomial{}, syntaxErrorf(0, "%q is not a single term", term)
	}
	return monos[0], nil
}
