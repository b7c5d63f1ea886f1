package polylead

import (
	"fmt"
	"math/big"
)

// DefaultMaxTerms bounds the number of monomials one expansion may produce.
const DefaultMaxTerms = 4096

// maxCoefficientBits bounds the size of a coefficient raised to a power.
const maxCoefficientBits = 1 << 16

// ============================================================
// Expansion — distribute products over sums
// ============================================================

// expander turns a tree into a flat list of monomials in one walk.
// Products form the full cross product of their factors' terms without
// combining like terms; that is left to the aggregator. Powers of sums
// come out combined: (x+y)^n is n+1 terms. Every power in every monomial
// stays within MaxExponent.
type expander struct {
	maxTerms int
}

func newExpander(maxTerms int) *expander {
	if maxTerms <= 0 {
		maxTerms = DefaultMaxTerms
	}
	return &expander{maxTerms: maxTerms}
}

func (e *expander) expand(n node) ([]Monomial, error) {
	switch v := n.(type) {
	case *numberNode:
		return []Monomial{constant(ratCopy(v.val))}, nil

	case *variableNode:
		return []Monomial{{Coefficient: ratInt(1), Exponents: map[string]int{v.name: 1}}}, nil

	case *groupNode:
		return e.expand(v.inner)

	case *negNode:
		terms, err := e.expand(v.x)
		if err != nil {
			return nil, err
		}
		out := make([]Monomial, len(terms))
		for i, t := range terms {
			out[i] = t.Neg()
		}
		return out, nil

	case *sumNode:
		var out []Monomial
		for _, t := range v.terms {
			terms, err := e.expand(t)
			if err != nil {
				return nil, err
			}
			out = append(out, terms...)
			if err := e.check(len(out)); err != nil {
				return nil, err
			}
		}
		return out, nil

	case *productNode:
		acc := []Monomial{constant(ratInt(1))}
		for _, f := range v.factors {
			terms, err := e.expand(f)
			if err != nil {
				return nil, err
			}
			if acc, err = e.multiply(acc, terms); err != nil {
				return nil, err
			}
		}
		return acc, nil

	case *powerNode:
		base, err := e.expand(v.base)
		if err != nil {
			return nil, err
		}
		return e.power(base, v.exp, v)

	case *quotientNode:
		num, err := e.expand(v.num)
		if err != nil {
			return nil, err
		}
		den, err := e.expand(v.den)
		if err != nil {
			return nil, err
		}
		if len(den) != 1 {
			return nil, newError(KindNonMonomialDivisor, -1, fmt.Sprintf("cannot divide by %s", v.den))
		}
		if den[0].Coefficient.Sign() == 0 {
			return nil, newError(KindDivisionByZero, -1, fmt.Sprintf("divisor %s is zero", v.den))
		}
		return e.multiply(num, []Monomial{den[0].Inverse()})
	}
	return nil, newError(KindInvalidExpression, -1, fmt.Sprintf("unexpected node %T", n))
}

// multiply forms the cross product of two term lists, left terms outermost.
func (e *expander) multiply(a, b []Monomial) ([]Monomial, error) {
	if err := e.check(len(a) * len(b)); err != nil {
		return nil, err
	}
	out := make([]Monomial, 0, len(a)*len(b))
	for _, x := range a {
		for _, y := range b {
			m := x.Mul(y)
			if err := checkPowers(m, 1); err != nil {
				return nil, err
			}
			out = append(out, m)
		}
	}
	return out, nil
}

// power raises an expanded base to n. Like terms of the base are combined
// first; the result is always combined, so the term limit applies to the
// distinct monomials of the result.
func (e *expander) power(base []Monomial, n int, at node) ([]Monomial, error) {
	if len(base) > 1 {
		base = combineLike(base)
	}
	for _, m := range base {
		if err := checkPowers(m, n); err != nil {
			return nil, err
		}
	}
	if n == 0 {
		return []Monomial{constant(ratInt(1))}, nil
	}
	if len(base) == 0 {
		return []Monomial{constant(ratInt(0))}, nil
	}
	bits := 0
	for _, m := range base {
		bits = max(bits, m.Coefficient.Num().BitLen(), m.Coefficient.Denom().BitLen())
	}
	if len(base) == 1 {
		if bits > 1 && bits*n > maxCoefficientBits {
			return nil, newError(KindExpansionLimitExceeded, -1, fmt.Sprintf("coefficient of %s is too large", at))
		}
		return []Monomial{base[0].Pow(n)}, nil
	}
	// With two or more distinct signatures and no possible cancellation the
	// result has at least n+1 terms: a^i b^(n-i) for i = 0..n.
	if n+1 > e.maxTerms && (len(base) == 2 || sameSign(base)) {
		return nil, e.check(n + 1)
	}
	// Binomial coefficients add about n bits on top of the powers.
	if n*(bits+1) > maxCoefficientBits {
		return nil, newError(KindExpansionLimitExceeded, -1, fmt.Sprintf("coefficients of %s are too large", at))
	}
	if len(base) == 2 {
		return binomial(base[0], base[1], n), nil
	}
	acc := []Monomial{constant(ratInt(1))}
	for i := 0; i < n; i++ {
		var err error
		if acc, err = e.multiplyCombined(acc, base); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// multiplyCombined multiplies two term lists, combining like terms as it
// goes. It fails once the distinct monomials met exceed the term limit.
func (e *expander) multiplyCombined(a, b []Monomial) ([]Monomial, error) {
	index := map[string]int{}
	var out []Monomial
	for _, x := range a {
		for _, y := range b {
			m := x.Mul(y)
			if err := checkPowers(m, 1); err != nil {
				return nil, err
			}
			key := m.Signature().Key()
			if i, ok := index[key]; ok {
				out[i].Coefficient = ratAdd(out[i].Coefficient, m.Coefficient)
				continue
			}
			index[key] = len(out)
			out = append(out, m)
			if err := e.check(len(out)); err != nil {
				return nil, err
			}
		}
	}
	return dropZeros(out), nil
}

// binomial expands (a+b)^n term by term, highest power of a first. a and b
// have distinct signatures, so all n+1 terms are distinct and non-zero.
func binomial(a, b Monomial, n int) []Monomial {
	out := make([]Monomial, 0, n+1)
	c := big.NewInt(1)
	for i := n; i >= 0; i-- {
		m := a.Pow(i).Mul(b.Pow(n - i))
		m.Coefficient = ratMul(m.Coefficient, new(big.Rat).SetInt(c))
		out = append(out, m)
		// C(n, k+1) = C(n, k) * (n-k) / (k+1), with k = n-i.
		k := int64(n - i)
		c.Mul(c, big.NewInt(int64(n)-k))
		c.Quo(c, big.NewInt(k+1))
	}
	return out
}

func sameSign(terms []Monomial) bool {
	for _, t := range terms[1:] {
		if t.Coefficient.Sign() != terms[0].Coefficient.Sign() {
			return false
		}
	}
	return true
}

// checkPowers fails when raising m to n would push any power beyond
// MaxExponent.
func checkPowers(m Monomial, n int) error {
	if n <= 0 {
		return nil
	}
	for v, p := range m.Exponents {
		if abs(p) > MaxExponent/n {
			return newError(KindExpansionLimitExceeded, -1, fmt.Sprintf("power of %s exceeds %d", v, MaxExponent))
		}
	}
	return nil
}

func (e *expander) check(n int) error {
	if n > e.maxTerms {
		return newError(KindExpansionLimitExceeded, -1, fmt.Sprintf("more than %d terms", e.maxTerms))
	}
	return nil
}

// combineLike sums monomials with equal signatures, keeping first-seen
// order and dropping sums that cancel to zero.
func combineLike(terms []Monomial) []Monomial {
	index := map[string]int{}
	var out []Monomial
	for _, t := range terms {
		key := t.Signature().Key()
		if i, ok := index[key]; ok {
			out[i].Coefficient = ratAdd(out[i].Coefficient, t.Coefficient)
			continue
		}
		index[key] = len(out)
		out = append(out, Monomial{Coefficient: ratCopy(t.Coefficient), Exponents: t.Exponents})
	}
	return dropZeros(out)
}

// dropZeros removes cancelled terms; an empty result is the constant 0.
func dropZeros(terms []Monomial) []Monomial {
	kept := terms[:0]
	for _, t := range terms {
		if t.Coefficient.Sign() != 0 {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return []Monomial{constant(ratInt(0))}
	}
	return kept
}
