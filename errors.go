package tablespan

import (
	"fmt"
	"strings"
)

// ParseError reports a formula that does not match the grammar.
type ParseError struct {
	Formula  string
	Offset   int    // byte offset of the offending input
	Fragment string // input starting at Offset
	Msg      string
}

func newParseError(formula string, offset int, msg string) *ParseError {
	return &ParseError{
		Formula:  formula,
		Offset:   offset,
		Fragment: fragment(formula, offset),
		Msg:      msg,
	}
}

func (e *ParseError) Error() string {
	if e.Fragment == "" {
		return fmt.Sprintf("%s at offset %d (end of formula): %s", ErrSyntax, e.Offset, e.Msg)
	}
	return fmt.Sprintf("%s at offset %d near %q: %s", ErrSyntax, e.Offset, e.Fragment, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

const fragmentLen = 16

func fragment(s string, offset int) string {
	if offset >= len(s) {
		return ""
	}
	frag := s[offset:]
	if len(frag) > fragmentLen {
		frag = frag[:fragmentLen] + "..."
	}
	return strings.TrimRight(frag, " \t\r\n")
}

// TreeError reports a formula that parses but cannot be turned into a
// header tree. Terms holds the offending sub-list.
type TreeError struct {
	Err   error // ErrSpanner or ErrVariable
	Terms string
	Depth int
	Msg   string
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("%s: %s in %s", e.Err, e.Msg, e.Terms)
}

func (e *TreeError) Unwrap() error { return e.Err }

// UnknownColumnError reports a formula variable missing from the data.
type UnknownColumnError struct {
	Column    string
	Available []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("%s: formula refers to column %q which is absent (have %s)",
		ErrUnknownColumn, e.Column, strings.Join(e.Available, ", "))
}

func (e *UnknownColumnError) Unwrap() error { return ErrUnknownColumn }
