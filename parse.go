package tablespan

import (
	"fmt"
	"strconv"
	"strings"
)

// Term is one element of a parsed formula side: a token (a variable such
// as "a:`y 1`" or the spanner operator "=") or a parenthesized group.
type Term struct {
	Value  string // token text, backticks and colon retained
	Terms  []Term // group elements; nil for tokens
	Offset int    // byte offset in the formula
}

// IsGroup reports whether t is a parenthesized group.
func (t Term) IsGroup() bool { return t.Terms != nil }

// String prints t in nested-list notation, e.g. ["sp", "=", "a", "b"].
func (t Term) String() string {
	if !t.IsGroup() {
		return strconv.Quote(t.Value)
	}
	return termsString(t.Terms)
}

func termsString(terms []Term) string {
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = t.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ParseTree is a parsed formula. LHS is nil when the formula starts with
// the literal 1, which means the table has no row-identifying columns.
type ParseTree struct {
	LHS []Term
	RHS []Term
}

// NoRowSide reports whether the formula declared no row side ("1 ~ ...").
func (p ParseTree) NoRowSide() bool { return p.LHS == nil }

// String prints the tree as a two element list, e.g. [["x"], ["y"]] or
// ["1", ["y"]].
func (p ParseTree) String() string {
	lhs := strconv.Quote(noRowSide)
	if !p.NoRowSide() {
		lhs = termsString(p.LHS)
	}
	return "[" + lhs + ", " + termsString(p.RHS) + "]"
}

const noRowSide = "1"

// Parse applies the formula grammar to formula. The grammar is permissive
// about spanner groups: "(a + b)" parses and is rejected later by [Build].
func Parse(formula string) (ParseTree, error) {
	toks, err := tokenize(formula)
	if err != nil {
		return ParseTree{}, err
	}
	p := &parser{src: formula, toks: toks}
	return p.formula()
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) peek(ahead int) (token, bool) {
	if p.pos+ahead >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos+ahead], true
}

func (p *parser) errorAt(t token, ok bool, msg string) *ParseError {
	if !ok {
		return newParseError(p.src, len(p.src), msg)
	}
	return newParseError(p.src, t.offset, msg)
}

func (p *parser) formula() (ParseTree, error) {
	var tree ParseTree
	first, ok1 := p.peek(0)
	second, ok2 := p.peek(1)
	if ok1 && ok2 && first.kind == tokNumber && first.text == noRowSide && second.kind == tokTilde {
		p.pos++
	} else {
		lhs, err := p.expr()
		if err != nil {
			return ParseTree{}, err
		}
		tree.LHS = lhs
	}

	t, ok := p.peek(0)
	if !ok || t.kind != tokTilde {
		return ParseTree{}, p.errorAt(t, ok, "expected '~' between row and column side")
	}
	p.pos++

	rhs, err := p.expr()
	if err != nil {
		return ParseTree{}, err
	}
	tree.RHS = rhs

	if t, ok := p.peek(0); ok {
		return ParseTree{}, p.errorAt(t, ok, fmt.Sprintf("unexpected %s", t.kind))
	}
	return tree, nil
}

func (p *parser) expr() ([]Term, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	terms := []Term{first}
	for {
		op, ok := p.peek(0)
		if !ok || (op.kind != tokPlus && op.kind != tokEquals) {
			return terms, nil
		}
		p.pos++
		if op.kind == tokEquals {
			terms = append(terms, Term{Value: "=", Offset: op.offset})
		}
		next, err := p.term()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
}

func (p *parser) term() (Term, error) {
	t, ok := p.peek(0)
	if !ok {
		return Term{}, p.errorAt(t, ok, "expected a variable or '('")
	}
	switch t.kind {
	case tokLParen:
		p.pos++
		terms, err := p.expr()
		if err != nil {
			return Term{}, err
		}
		closing, ok := p.peek(0)
		if !ok || closing.kind != tokRParen {
			return Term{}, p.errorAt(closing, ok, fmt.Sprintf("unbalanced parentheses: '(' at offset %d is never closed", t.offset))
		}
		p.pos++
		return Term{Terms: terms, Offset: t.offset}, nil
	case tokIdent, tokQuoted:
		return p.variable()
	default:
		return Term{}, p.errorAt(t, ok, fmt.Sprintf("unexpected %s", t.kind))
	}
}

// variable combines base (":" base)? into one token. The pieces must be
// adjacent.
func (p *parser) variable() (Term, error) {
	base, _ := p.peek(0)
	p.pos++
	colon, ok := p.peek(0)
	if !ok || colon.kind != tokColon {
		return Term{Value: base.text, Offset: base.offset}, nil
	}
	if colon.offset != base.end() {
		return Term{}, p.errorAt(colon, ok, "whitespace before ':'")
	}
	p.pos++
	item, ok := p.peek(0)
	if !ok || (item.kind != tokIdent && item.kind != tokQuoted) || item.offset != colon.end() {
		return Term{}, p.errorAt(item, ok, "expected a column name directly after ':'")
	}
	p.pos++
	return Term{Value: base.text + ":" + item.text, Offset: base.offset}, nil
}
