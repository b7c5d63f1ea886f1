package polylead

import (
	"fmt"
	"math/big"
	"strings"
)

// ============================================================
// Coefficients — exact rationals
// ============================================================

func ratInt(n int64) *big.Rat { return new(big.Rat).SetInt64(n) }

func ratAdd(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func ratMul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func ratNeg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }
func ratAbs(a *big.Rat) *big.Rat    { return new(big.Rat).Abs(a) }
func ratCopy(a *big.Rat) *big.Rat   { return new(big.Rat).Set(a) }

func ratIsOne(a *big.Rat) bool    { return a.IsInt() && a.Num().IsInt64() && a.Num().Int64() == 1 }
func ratIsNegOne(a *big.Rat) bool { return a.IsInt() && a.Num().IsInt64() && a.Num().Int64() == -1 }

// ratPow raises a to a non-negative integer power.
func ratPow(a *big.Rat, n int) *big.Rat {
	num := new(big.Int).Exp(a.Num(), big.NewInt(int64(n)), nil)
	den := new(big.Int).Exp(a.Denom(), big.NewInt(int64(n)), nil)
	return new(big.Rat).SetFrac(num, den)
}

// parseRat reads a decimal literal such as "3", "2.5" or ".5".
func parseRat(text string) (*big.Rat, bool) {
	text = strings.TrimSuffix(text, ".")
	if strings.HasPrefix(text, ".") {
		text = "0" + text
	}
	if text == "" {
		return nil, false
	}
	return new(big.Rat).SetString(text)
}

// decimalDigits reports how many fractional digits r needs to be written
// exactly in base 10, or -1 when its denominator has a prime factor other
// than 2 or 5.
func decimalDigits(r *big.Rat) int {
	d := new(big.Int).Set(r.Denom())
	two, five := big.NewInt(2), big.NewInt(5)
	twos, fives := 0, 0
	m := new(big.Int)
	for {
		if m.Mod(d, two).Sign() != 0 {
			break
		}
		d.Quo(d, two)
		twos++
	}
	for {
		if m.Mod(d, five).Sign() != 0 {
			break
		}
		d.Quo(d, five)
		fives++
	}
	if d.Cmp(big.NewInt(1)) != 0 {
		return -1
	}
	if twos > fives {
		return twos
	}
	return fives
}

// FormatCoefficient renders a coefficient the way the analyzer prints it:
// integers as integers, terminating fractions as decimals, everything else
// as p/q.
func FormatCoefficient(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	if digits := decimalDigits(r); digits >= 0 {
		return r.FloatString(digits)
	}
	return r.RatString()
}

// coefficientLaTeX writes non-terminating fractions as \frac.
func coefficientLaTeX(r *big.Rat) string {
	if r.IsInt() || decimalDigits(r) >= 0 {
		return FormatCoefficient(r)
	}
	sign := ""
	v := ratCopy(r)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return fmt.Sprintf("%s\\frac{%s}{%s}", sign, v.Num().String(), v.Denom().String())
}
