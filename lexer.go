package polylead

import (
	"strings"
	"unicode"
)

// ============================================================
// Tokens
// ============================================================

// TokenKind classifies a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNumber
	TokenVariable
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenCaret
	TokenLParen
	TokenRParen
)

var tokenNames = [...]string{
	TokenEOF:      "end of input",
	TokenNumber:   "number",
	TokenVariable: "variable",
	TokenPlus:     "+",
	TokenMinus:    "-",
	TokenStar:     "*",
	TokenSlash:    "/",
	TokenCaret:    "^",
	TokenLParen:   "(",
	TokenRParen:   ")",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return "unknown"
}

func (k TokenKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Token is one lexeme of an expression.
//
// Variables are single letters, lower-cased. A run of the same letter
// ("yyy") is a single token whose Run is the run length; Text holds the
// letter once. Pos is the byte offset of the token's first character.
type Token struct {
	Kind TokenKind `json:"kind"`
	Text string    `json:"text"`
	Pos  int       `json:"pos"`
	Run  int       `json:"run,omitempty"`
}

// startsOperand reports whether the token can begin an implicit product.
func (t Token) startsOperand() bool {
	return t.Kind == TokenVariable || t.Kind == TokenLParen
}

// endsOperand reports whether a following + or - is a binary operator.
func (t Token) endsOperand() bool {
	return t.Kind == TokenNumber || t.Kind == TokenVariable || t.Kind == TokenRParen
}

// ============================================================
// Lexer
// ============================================================

// Tokenize splits expr into tokens, ending with a TokenEOF token.
func Tokenize(expr string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(expr) && isDigit(expr[i+1])):
			start := i
			for i < len(expr) && isDigit(expr[i]) {
				i++
			}
			if i < len(expr) && expr[i] == '.' {
				i++
				for i < len(expr) && isDigit(expr[i]) {
					i++
				}
			}
			if i < len(expr) && expr[i] == '.' {
				return nil, syntaxErrorf(i, "malformed number %q", expr[start:i+1])
			}
			toks = append(toks, Token{Kind: TokenNumber, Text: expr[start:i], Pos: start})
		case isLetter(c):
			start := i
			letter := unicode.ToLower(rune(c))
			run := 0
			for i < len(expr) && isLetter(expr[i]) && unicode.ToLower(rune(expr[i])) == letter {
				run++
				i++
			}
			toks = append(toks, Token{Kind: TokenVariable, Text: string(letter), Pos: start, Run: run})
		default:
			kind, ok := punctuation[c]
			if !ok {
				return nil, syntaxErrorf(i, "unexpected character %q", rune(c))
			}
			toks = append(toks, Token{Kind: kind, Text: string(c), Pos: i})
			i++
		}
	}
	toks = append(toks, Token{Kind: TokenEOF, Pos: len(expr)})
	return toks, nil
}

var punctuation = map[byte]TokenKind{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'^': TokenCaret,
	'(': TokenLParen,
	')': TokenRParen,
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

// Variables returns the distinct variables of expr, lower-cased, in order of
// first appearance.
func Variables(expr string) []string {
	seen := map[byte]bool{}
	var out []string
	for i := 0; i < len(expr); i++ {
		c := expr[i]
		if !isLetter(c) {
			continue
		}
		lc := strings.ToLower(string(c))[0]
		if !seen[lc] {
			seen[lc] = true
			out = append(out, string(lc))
		}
	}
	return out
}
