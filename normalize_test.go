package polylead_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/njchilds90/polylead"
)

// ============================================================
// Normalize tests
// ============================================================

func TestNormalize(t *testing.T) {
	cases := []struct {
		expr, want string
	}{
		{"3x^2 + 2x - 5", "3x^2 + 2x - 5"},
		{"3x^2+2x-5", "3x^2 + 2x - 5"},
		{"x(x+2)", "x^2 + 2x"},
		{"(x+1)(x-1)", "x^2 - x + x - 1"},
		{"2(x+3)", "2x + 6"},
		{"a(b+c)d", "abd + acd"},
		{"x*y*2", "2xy"},
		{"3x*-y", "-3xy"},
		{"-(x - y)", "-x + y"},
		{"x - -y", "x + y"},
		{"yyy", "yyy"},
		{"yyy^2", "yyy^2"},
		{"x/yz", "x/yz"},
		{"2x/4y", "2x/4y"},
		{"2x/(4y)", "0.5x/y"},
		{"x/3", "x/3"},
		{"x*(1/3)", "x/3"},
		{"(2x)/(3y)", "2x/3y"},
		{"1/(3y)", "1/3y"},
		{"(1/3)", "1/3"},
		{"-(x/3)", "-x/3"},
		{"(x+1)^2", "x^2 + 2x + 1"},
		{"x^0 + 1", "x^0 + 1"},
		{"-x^2", "-x^2"},
		{"2.5x", "2.5x"},
		{"Xy", "Xy"},
		{"+x", "x"},
	}
	for _, c := range cases {
		got, err := polylead.Normalize(c.expr)
		if err != nil {
			t.Errorf("Normalize(%q): unexpected error %v", c.expr, err)
			continue
		}
		if got != c.want {
			t.Errorf("Normalize(%q): want %q, got %q", c.expr, c.want, got)
		}
	}
}

func TestNormalize_FlatInputUnchanged(t *testing.T) {
	for _, expr := range []string{
		"3x^2 + 2x - 5",
		"x^2 - x + x - 1",
		"x/3",
		"1/3y",
		"yyy",
		"xyx",
		"x^0 + 1",
		"2x/4y",
		"0.5x/y",
		"-x/y^2z",
		"1/x",
		"x - x + 5",
		"-2ab^3c",
	} {
		once, err := polylead.Normalize(expr)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", expr, err)
		}
		if once != expr {
			t.Errorf("flat input %q should be unchanged, got %q", expr, once)
		}
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, expr := range []string{
		"(x+1)(x-1)",
		"x*(1/3)",
		"1/(3y)",
		"(2x)/(3y)",
		"2x/(4y) + x^2/y",
		"(a+b)^3 - a^3",
		"-(x - y)",
		"x - -y",
		"(x+y)/(7z)",
	} {
		once, err := polylead.Normalize(expr)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", expr, err)
		}
		if strings.ContainsAny(once, "()*") {
			t.Errorf("Normalize(%q): want no parentheses or '*', got %q", expr, once)
		}
		twice, err := polylead.Normalize(once)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", once, err)
		}
		if twice != once {
			t.Errorf("want %q, got %q", once, twice)
		}
	}
}

func TestNormalize_Errors(t *testing.T) {
	cases := []struct {
		expr string
		want error
	}{
		{"x/(x+1)", polylead.ErrNonMonomialDivisor},
		{"x/0", polylead.ErrDivisionByZero},
		{"2^100000x", polylead.ErrExpansionLimitExceeded},
		{"(((x^1048576)^1048576)^1048576)^1048576", polylead.ErrExpansionLimitExceeded},
		{"(x^1048576)^2", polylead.ErrExpansionLimitExceeded},
		{"x^1048576*x", polylead.ErrExpansionLimitExceeded},
		{"x^1048576(x+1)", polylead.ErrExpansionLimitExceeded},
		{"1/(x^1048576 x)", polylead.ErrExpansionLimitExceeded},
		{"(x+1)^100000", polylead.ErrExpansionLimitExceeded},
		{"(x+y+z)^100", polylead.ErrExpansionLimitExceeded},
	}
	for _, c := range cases {
		_, err := polylead.Normalize(c.expr)
		if !errors.Is(err, c.want) {
			t.Errorf("Normalize(%q): want %v, got %v", c.expr, c.want, err)
		}
	}

	_, err := polylead.Normalize("x^99999999")
	var se *polylead.SyntaxError
	if !errors.As(err, &se) {
		t.Errorf("want *SyntaxError for huge exponent, got %v", err)
	}
	_, err = polylead.Normalize("x + ()")
	if !errors.As(err, &se) {
		t.Errorf("want *SyntaxError for empty parentheses, got %v", err)
	}
}

func TestNormalize_PowersOfSums(t *testing.T) {
	cases := []struct {
		expr, want string
	}{
		{"(x+1)^2", "x^2 + 2x + 1"},
		{"(x+1)^3", "x^3 + 3x^2 + 3x + 1"},
		{"(x-y)^2", "x^2 - 2xy + y^2"},
		{"(2x-1)^3", "8x^3 - 12x^2 + 6x - 1"},
		{"(x+y+1)^2", "x^2 + 2xy + 2x + y^2 + 2y + 1"},
		{"(x+x)^2", "4x^2"},
		{"(x-x)^2", "0"},
		{"(x+1)^0", "1"},
		{"(x/2+1)^2", "0.25x^2 + x + 1"},
	}
	for _, c := range cases {
		got, err := polylead.Normalize(c.expr)
		if err != nil {
			t.Errorf("Normalize(%q): unexpected error %v", c.expr, err)
			continue
		}
		if got != c.want {
			t.Errorf("Normalize(%q): want %q, got %q", c.expr, c.want, got)
		}
	}
}

func TestNormalize_PowerTermLimit(t *testing.T) {
	monos, err := polylead.New().Expand("(x+1)^2049")
	if err != nil {
		t.Fatalf("(x+1)^2049: unexpected error %v", err)
	}
	if len(monos) != 2050 {
		t.Errorf("want 2050 terms, got %d", len(monos))
	}
	if monos[0].String() != "x^2049" || monos[2049].String() != "1" {
		t.Errorf("want x^2049 ... 1, got %s ... %s", monos[0], monos[2049])
	}

	at := polylead.New(polylead.WithMaxTerms(polylead.DefaultMaxTerms))
	if _, err := at.Expand("(x+1)^4095"); err != nil {
		t.Errorf("(x+1)^4095 has exactly %d terms, got %v", polylead.DefaultMaxTerms, err)
	}
	if _, err := at.Expand("(x+1)^4096"); !errors.Is(err, polylead.ErrExpansionLimitExceeded) {
		t.Errorf("(x+1)^4096: want expansion limit, got %v", err)
	}

	four := polylead.New(polylead.WithMaxTerms(4))
	if got, err := four.Normalize("(x+1)^3"); err != nil || got != "x^3 + 3x^2 + 3x + 1" {
		t.Errorf("(x+1)^3 under 4 terms: got %q, %v", got, err)
	}
	if _, err := four.Normalize("(x+1)^4"); !errors.Is(err, polylead.ErrExpansionLimitExceeded) {
		t.Errorf("(x+1)^4 under 4 terms: want expansion limit, got %v", err)
	}
	if got, err := four.Normalize("(x+y-x)^9"); err != nil || got != "y^9" {
		t.Errorf("(x+y-x)^9 under 4 terms: got %q, %v", got, err)
	}
}

func TestAnalyze_MaxExponent(t *testing.T) {
	res, err := polylead.Analyze("x^1048576 + x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Degree() != polylead.MaxExponent {
		t.Errorf("want degree %d, got %d", polylead.MaxExponent, res.Degree())
	}
	_, err = polylead.Analyze("(((x^1048576)^1048576)^1048576)^1048576")
	if !errors.Is(err, polylead.ErrExpansionLimitExceeded) {
		t.Errorf("want expansion limit, got %v", err)
	}
}

func TestAnalyzer_Limits(t *testing.T) {
	a := polylead.New(polylead.WithMaxTerms(8))
	if a.MaxTerms() != 8 {
		t.Errorf("want 8, got %d", a.MaxTerms())
	}
	_, err := a.Normalize("(a+b+c)(d+e+f)")
	if !errors.Is(err, polylead.ErrExpansionLimitExceeded) {
		t.Errorf("want expansion limit, got %v", err)
	}
	if _, err := polylead.Normalize("(a+b+c)(d+e+f)"); err != nil {
		t.Errorf("default analyzer should allow 9 terms, got %v", err)
	}

	short := polylead.New(polylead.WithMaxLength(5))
	_, err = short.Normalize("x+y+z+w")
	if !errors.Is(err, polylead.ErrExpressionTooLong) {
		t.Errorf("want too long, got %v", err)
	}
	if polylead.New(polylead.WithMaxLength(0)).MaxLength() != 0 {
		t.Error("WithMaxLength(0) should disable the limit")
	}
}

func TestAnalyzer_Expand(t *testing.T) {
	monos, err := polylead.New().Expand("(x+1)(x-1)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(monos) != 4 {
		t.Fatalf("want 4 monomials, got %d", len(monos))
	}
	if got := polylead.FormatSum(monos); got != "x^2 - x + x - 1" {
		t.Errorf("want x^2 - x + x - 1, got %s", got)
	}
}
