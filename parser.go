package polylead

import (
	"math/big"
	"strconv"
	"strings"
)

// ============================================================
// AST
// ============================================================

// node is one element of the expression tree. Expansion (expand.go) turns
// any node into a flat list of monomials.
type node interface {
	String() string
}

type numberNode struct{ val *big.Rat }

type variableNode struct{ name string }

// powerNode is base^exp with a non-negative integer exponent.
type powerNode struct {
	base node
	exp  int
}

// sumNode holds terms with their signs already applied via negNode.
type sumNode struct{ terms []node }

type productNode struct{ factors []node }

// quotientNode divides num by den; den must expand to a single monomial.
type quotientNode struct{ num, den node }

type negNode struct{ x node }

type groupNode struct{ inner node }

func (n *numberNode) String() string   { return FormatCoefficient(n.val) }
func (n *variableNode) String() string { return n.name }
func (n *powerNode) String() string    { return n.base.String() + "^" + strconv.Itoa(n.exp) }
func (n *negNode) String() string      { return "-" + n.x.String() }
func (n *groupNode) String() string    { return "(" + n.inner.String() + ")" }
func (n *quotientNode) String() string { return n.num.String() + "/" + n.den.String() }

func (n *sumNode) String() string {
	parts := make([]string, len(n.terms))
	for i, t := range n.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}

func (n *productNode) String() string {
	parts := make([]string, len(n.factors))
	for i, f := range n.factors {
		parts[i] = f.String()
	}
	return strings.Join(parts, "*")
}

// ============================================================
// Recursive-descent parser
// ============================================================
//
//	sum     := signed (("+" | "-") signed)*
//	signed  := ("+" | "-")* term
//	term    := product ("/" product)*
//	product := factor (("*" | implicit) factor)*
//	factor  := ("+" | "-")* power
//	power   := primary ("^" INTEGER)?
//	primary := NUMBER | VARIABLE | "(" sum ")"

// MaxExponent is the largest exponent accepted after ^.
const MaxExponent = 1 << 20

type parser struct {
	toks []Token
	pos  int
}

// parse builds the tree for expr.
func parse(expr string) (node, error) {
	toks, err := Tokenize(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Kind != TokenEOF {
		if tok.Kind == TokenRParen {
			return nil, syntaxErrorf(tok.Pos, "unmatched )")
		}
		return nil, syntaxErrorf(tok.Pos, "missing operator before %s", describe(tok))
	}
	return n, nil
}

func (p *parser) peek() Token { return p.toks[p.pos] }

func (p *parser) next() Token {
	tok := p.toks[p.pos]
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseSum() (node, error) {
	first, err := p.parseSigned()
	if err != nil {
		return nil, err
	}
	terms := []node{first}
	for {
		tok := p.peek()
		if tok.Kind != TokenPlus && tok.Kind != TokenMinus {
			break
		}
		p.next()
		t, err := p.parseSigned()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenMinus {
			t = &negNode{x: t}
		}
		terms = append(terms, t)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return &sumNode{terms: terms}, nil
}

func (p *parser) parseSigned() (node, error) {
	negative := false
	for {
		tok := p.peek()
		if tok.Kind == TokenMinus {
			negative = !negative
		} else if tok.Kind != TokenPlus {
			break
		}
		p.next()
	}
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if negative {
		return &negNode{x: t}, nil
	}
	return t, nil
}

func (p *parser) parseTerm() (node, error) {
	n, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == TokenSlash {
		p.next()
		den, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		n = &quotientNode{num: n, den: den}
	}
	return n, nil
}

func (p *parser) parseProduct() (node, error) {
	first, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	factors := []node{first}
	for {
		tok := p.peek()
		if tok.Kind == TokenStar {
			p.next()
		} else if !tok.startsOperand() {
			break
		}
		f, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		factors = append(factors, f)
	}
	if len(factors) == 1 {
		return first, nil
	}
	return &productNode{factors: factors}, nil
}

// parseFactor accepts signs directly after * or /, as in x*-y.
func (p *parser) parseFactor() (node, error) {
	negative := false
	for {
		tok := p.peek()
		if tok.Kind == TokenMinus {
			negative = !negative
		} else if tok.Kind != TokenPlus {
			break
		}
		p.next()
	}
	f, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	if negative {
		return &negNode{x: f}, nil
	}
	return f, nil
}

func (p *parser) parsePower() (node, error) {
	tok := p.peek()
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != TokenCaret {
		return base, nil
	}
	caret := p.next()
	expTok := p.next()
	if expTok.Kind != TokenNumber || strings.Contains(expTok.Text, ".") {
		return nil, syntaxErrorf(caret.Pos, "exponent must be a whole number, found %s", describe(expTok))
	}
	exp, err := strconv.Atoi(expTok.Text)
	if err != nil || exp > MaxExponent {
		return nil, syntaxErrorf(expTok.Pos, "exponent %s is out of range", expTok.Text)
	}
	// A caret after a letter run binds to the last letter only: yyy^2 = y*y*y^2.
	if v, ok := base.(*powerNode); ok && tok.Kind == TokenVariable && tok.Run > 1 {
		return &productNode{factors: []node{
			&powerNode{base: v.base, exp: tok.Run - 1},
			&powerNode{base: v.base, exp: exp},
		}}, nil
	}
	return &powerNode{base: base, exp: exp}, nil
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()
	switch tok.Kind {
	case TokenNumber:
		val, ok := parseRat(tok.Text)
		if !ok {
			return nil, syntaxErrorf(tok.Pos, "malformed number %q", tok.Text)
		}
		return &numberNode{val: val}, nil
	case TokenVariable:
		if tok.Run > MaxExponent {
			return nil, syntaxErrorf(tok.Pos, "run of %d %q letters is too long", tok.Run, tok.Text)
		}
		v := &variableNode{name: tok.Text}
		if tok.Run > 1 {
			return &powerNode{base: v, exp: tok.Run}, nil
		}
		return v, nil
	case TokenLParen:
		if p.peek().Kind == TokenRParen {
			return nil, syntaxErrorf(tok.Pos, "empty parentheses")
		}
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		closing := p.next()
		if closing.Kind != TokenRParen {
			return nil, syntaxErrorf(closing.Pos, "expected ), found %s", describe(closing))
		}
		return &groupNode{inner: inner}, nil
	}
	return nil, syntaxErrorf(tok.Pos, "expected a number, variable or (, found %s", describe(tok))
}

func describe(tok Token) string {
	switch tok.Kind {
	case TokenEOF:
		return "end of input"
	case TokenNumber, TokenVariable:
		return strconv.Quote(tok.Text)
	}
	return strconv.Quote(tok.Kind.String())
}
