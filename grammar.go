package tablespan

import (
	"fmt"
	"sync"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// Token kinds of the formula language.
//
//	identifier := [a-zA-Z_][a-zA-Z0-9_]*
//	quoted     := `...` with \ escaping the next byte
//	variable   := (identifier | quoted) (":" (identifier | quoted))?
//	term       := variable | "(" expr ")"
//	expr       := term (("=" | "+") term)*
//	formula    := ("1" | expr) "~" expr
type tokenKind int

const (
	tokIdent tokenKind = iota + 1
	tokQuoted
	tokNumber
	tokColon
	tokEquals
	tokPlus
	tokTilde
	tokLParen
	tokRParen
)

var tokenNames = map[tokenKind]string{
	tokIdent:  "identifier",
	tokQuoted: "quoted name",
	tokNumber: "number",
	tokColon:  "':'",
	tokEquals: "'='",
	tokPlus:   "'+'",
	tokTilde:  "'~'",
	tokLParen: "'('",
	tokRParen: "')'",
}

func (k tokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", int(k))
}

type token struct {
	kind   tokenKind
	text   string
	offset int
}

func (t token) end() int { return t.offset + len(t.text) }

var (
	lexerOnce sync.Once
	lexer     *lexmachine.Lexer
	lexerErr  error
)

// formulaLexer returns the shared DFA lexer, compiling it on first use.
func formulaLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		l := lexmachine.NewLexer()
		l.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), makeToken(tokIdent))
		l.Add([]byte("`([^`\\\\]|\\\\.)*`"), makeToken(tokQuoted))
		l.Add([]byte(`[0-9]+`), makeToken(tokNumber))
		l.Add([]byte(`:`), makeToken(tokColon))
		l.Add([]byte(`=`), makeToken(tokEquals))
		l.Add([]byte(`\+`), makeToken(tokPlus))
		l.Add([]byte(`~`), makeToken(tokTilde))
		l.Add([]byte(`\(`), makeToken(tokLParen))
		l.Add([]byte(`\)`), makeToken(tokRParen))
		l.Add([]byte(`( |\t|\n|\r)+`), skip)
		if err := l.Compile(); err != nil {
			lexerErr = fmt.Errorf("compile formula lexer: %w", err)
			return
		}
		lexer = l
	})
	return lexer, lexerErr
}

func makeToken(kind tokenKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(kind), string(m.Bytes), m), nil
	}
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// tokenize splits formula into tokens. Input the grammar has no token for
// is reported as a *ParseError at the first unmatched byte.
func tokenize(formula string) ([]token, error) {
	l, err := formulaLexer()
	if err != nil {
		return nil, err
	}
	scan, err := l.Scanner([]byte(formula))
	if err != nil {
		return nil, err
	}
	var toks []token
	for tok, err, eof := scan.Next(); !eof; tok, err, eof = scan.Next() {
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			return nil, newParseError(formula, ui.StartTC, "unexpected input")
		} else if err != nil {
			return nil, err
		}
		t := tok.(*lexmachine.Token)
		toks = append(toks, token{
			kind:   tokenKind(t.Type),
			text:   string(t.Lexeme),
			offset: t.TC,
		})
	}
	return toks, nil
}
