package polylead

import (
	"errors"
	"fmt"
)

// ============================================================
// Error kinds
// ============================================================

// ErrorKind identifies why an expression was rejected.
type ErrorKind int

const (
	KindInvalidExpression ErrorKind = iota
	KindEmptyInput
	KindUnbalancedParentheses
	KindNoVariablePresent
	KindDanglingExponent
	KindDoubleStarOperator
	KindMissingOperatorBetweenTerms
	KindNonNumericExponent
	KindNoParsableTermsAfterNormalization
	KindExpressionTooLong
	KindExpansionLimitExceeded
	KindDivisionByZero
	KindNonMonomialDivisor
)

var kindCodes = map[ErrorKind]string{
	KindInvalidExpression:                 "INVALID_EXPRESSION",
	KindEmptyInput:                        "EMPTY_INPUT",
	KindUnbalancedParentheses:             "UNBALANCED_PARENTHESES",
	KindNoVariablePresent:                 "NO_VARIABLE_PRESENT",
	KindDanglingExponent:                  "DANGLING_EXPONENT",
	KindDoubleStarOperator:                "DOUBLE_STAR_OPERATOR",
	KindMissingOperatorBetweenTerms:       "MISSING_OPERATOR",
	KindNonNumericExponent:                "NON_NUMERIC_EXPONENT",
	KindNoParsableTermsAfterNormalization: "NO_PARSABLE_TERMS",
	KindExpressionTooLong:                 "EXPRESSION_TOO_LONG",
	KindExpansionLimitExceeded:            "EXPANSION_LIMIT_EXCEEDED",
	KindDivisionByZero:                    "DIVISION_BY_ZERO",
	KindNonMonomialDivisor:                "NON_MONOMIAL_DIVISOR",
}

var kindMessages = map[ErrorKind]string{
	KindInvalidExpression:                 "invalid polynomial expression",
	KindEmptyInput:                        "please enter a polynomial",
	KindUnbalancedParentheses:             "parentheses are not balanced",
	KindNoVariablePresent:                 "expression must contain at least one variable term",
	KindDanglingExponent:                  "exponent marker ^ must be followed by digits",
	KindDoubleStarOperator:                "** is not a supported operator",
	KindMissingOperatorBetweenTerms:       "all terms must be separated by operators (+ or -)",
	KindNonNumericExponent:                "exponents must be whole numbers",
	KindNoParsableTermsAfterNormalization: "no valid polynomial terms found",
	KindExpressionTooLong:                 "expression is too long",
	KindExpansionLimitExceeded:            "expression expands to too many terms",
	KindDivisionByZero:                    "division by zero",
	KindNonMonomialDivisor:                "only single terms can appear after /",
}

// Code returns the stable machine-readable code for the kind.
func (k ErrorKind) Code() string {
	if c, ok := kindCodes[k]; ok {
		return c
	}
	return kindCodes[KindInvalidExpression]
}

// Message returns the human-readable description of the kind.
func (k ErrorKind) Message() string {
	if m, ok := kindMessages[k]; ok {
		return m
	}
	return kindMessages[KindInvalidExpression]
}

func (k ErrorKind) String() string { return k.Code() }

// ============================================================
// ValidationError
// ============================================================

// ValidationError is the single failure value surfaced by Check and Analyze.
// Pos is the byte offset in the input the failure points at, or -1.
type ValidationError struct {
	Kind   ErrorKind
	Pos    int
	Detail string
	Err    error
}

func newError(kind ErrorKind, pos int, detail string) *ValidationError {
	return &ValidationError{Kind: kind, Pos: pos, Detail: detail}
}

func wrapError(kind ErrorKind, err error) *ValidationError {
	pos := -1
	var se *SyntaxError
	if errors.As(err, &se) {
		pos = se.Pos
	}
	return &ValidationError{Kind: kind, Pos: pos, Err: err}
}

func (e *ValidationError) Error() string {
	msg := e.Kind.Message()
	switch {
	case e.Detail != "":
		msg += ": " + e.Detail
	case e.Err != nil:
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is reports kind equality so sentinels work with errors.Is.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	return ok && t.Kind == e.Kind
}

// Sentinels, one per kind.
var (
	ErrInvalidExpression      = &ValidationError{Kind: KindInvalidExpression, Pos: -1}
	ErrEmptyInput             = &ValidationError{Kind: KindEmptyInput, Pos: -1}
	ErrUnbalancedParentheses  = &ValidationError{Kind: KindUnbalancedParentheses, Pos: -1}
	ErrNoVariablePresent      = &ValidationError{Kind: KindNoVariablePresent, Pos: -1}
	ErrDanglingExponent       = &ValidationError{Kind: KindDanglingExponent, Pos: -1}
	ErrDoubleStarOperator     = &ValidationError{Kind: KindDoubleStarOperator, Pos: -1}
	ErrMissingOperator        = &ValidationError{Kind: KindMissingOperatorBetweenTerms, Pos: -1}
	ErrNonNumericExponent     = &ValidationError{Kind: KindNonNumericExponent, Pos: -1}
	ErrNoParsableTerms        = &ValidationError{Kind: KindNoParsableTermsAfterNormalization, Pos: -1}
	ErrExpressionTooLong      = &ValidationError{Kind: KindExpressionTooLong, Pos: -1}
	ErrExpansionLimitExceeded = &ValidationError{Kind: KindExpansionLimitExceeded, Pos: -1}
	ErrDivisionByZero         = &ValidationError{Kind: KindDivisionByZero, Pos: -1}
	ErrNonMonomialDivisor     = &ValidationError{Kind: KindNonMonomialDivisor, Pos: -1}
)

// KindOf extracts the kind from any error produced by this package.
// Errors from elsewhere report KindInvalidExpression.
func KindOf(err error) ErrorKind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return KindInvalidExpression
}

// ============================================================
// SyntaxError
// ============================================================

// SyntaxError is reported by the lexer and parser.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}

func syntaxErrorf(pos int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
