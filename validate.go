package polylead

import (
	"regexp"
	"strings"
)

// ============================================================
// Validator — pre-flight syntax gate
// ============================================================

var (
	doubleStarPattern = regexp.MustCompile(`\*\*`)

	// Two operands separated only by whitespace: "3 x", "x 3", "x^2 y".
	missingOperatorPattern = regexp.MustCompile(`(?i)(\d+\s+[a-z]|\d+[a-z]\s+\d+|[a-z]\^?\d*\s+\d+|[a-z]\^?\d*\s+[a-z])`)
)

// Validate reports whether expr passes every pre-flight check. It is the
// boolean gate a form uses to enable analysis; Check gives the reason.
func Validate(expr string) bool { return Check(expr) == nil }

// Check runs the pre-flight checks in order and returns the first failure
// as a *ValidationError, or nil. Division is permitted.
func Check(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return newError(KindEmptyInput, -1, "")
	}
	if pos, ok := balanced(expr); !ok {
		return newError(KindUnbalancedParentheses, pos, "")
	}
	if !strings.ContainsFunc(expr, func(r rune) bool { return r < 0x80 && isLetter(byte(r)) }) {
		return newError(KindNoVariablePresent, -1, "")
	}
	if pos, kind, ok := checkExponents(expr); !ok {
		return newError(kind, pos, "")
	}
	if loc := doubleStarPattern.FindStringIndex(expr); loc != nil {
		return newError(KindDoubleStarOperator, loc[0], "")
	}
	if loc := missingOperatorPattern.FindStringIndex(expr); loc != nil {
		return newError(KindMissingOperatorBetweenTerms, loc[0], strings.TrimSpace(expr[loc[0]:loc[1]]))
	}
	return nil
}

// balanced walks the parentheses with a running counter. On failure it
// returns the offset of the offending ) or of the last unclosed (.
func balanced(expr string) (int, bool) {
	var open []int
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case '(':
			open = append(open, i)
		case ')':
			if len(open) == 0 {
				return i, false
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) > 0 {
		return open[len(open)-1], false
	}
	return -1, true
}

// checkExponents requires digits after every caret. A letter there is a
// non-numeric exponent; anything else, or the end of input, is dangling.
func checkExponents(expr string) (int, ErrorKind, bool) {
	for i := 0; i < len(expr); i++ {
		if expr[i] != '^' {
			continue
		}
		if i+1 >= len(expr) {
			return i, KindDanglingExponent, false
		}
		next := expr[i+1]
		if isLetter(next) {
			return i, KindNonNumericExponent, false
		}
		if !isDigit(next) {
			return i, KindDanglingExponent, false
		}
	}
	return -1, 0, true
}
