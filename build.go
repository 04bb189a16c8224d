package tablespan

import "strings"

// Build turns one side of a parse tree into a header tree rooted at a
// synthetic [BaseLevel] entry. The returned tree is not annotated; see
// [Annotate].
//
// Groups must have the shape (name = child ...). Anything else is a
// *TreeError wrapping [ErrSpanner].
func Build(terms []Term) (*HeaderEntry, error) {
	return build(terms, 1)
}

func build(terms []Term, depth int) (*HeaderEntry, error) {
	root := NewEntry(BaseLevel, BaseLevel)
	if err := appendEntries(root, terms, depth); err != nil {
		return nil, err
	}
	return root, nil
}

func appendEntries(parent *HeaderEntry, terms []Term, depth int) error {
	for _, t := range terms {
		if t.IsGroup() {
			child, err := buildSpanner(t, depth+1)
			if err != nil {
				return err
			}
			parent.Entries = append(parent.Entries, child)
			continue
		}
		if t.Value == "=" {
			return &TreeError{
				Err:   ErrSpanner,
				Terms: termsString(terms),
				Depth: depth,
				Msg:   "'=' may only follow a spanner name",
			}
		}
		name, item, err := splitVariable(t.Value)
		if err != nil {
			return &TreeError{Err: ErrVariable, Terms: t.String(), Depth: depth, Msg: err.Error()}
		}
		parent.Entries = append(parent.Entries, NewEntry(name, item))
	}
	return nil
}

func buildSpanner(group Term, depth int) (*HeaderEntry, error) {
	terms := group.Terms
	if len(terms) < 3 || terms[0].IsGroup() || terms[1].IsGroup() || terms[1].Value != "=" {
		return nil, &TreeError{
			Err:   ErrSpanner,
			Terms: group.String(),
			Depth: depth,
			Msg:   "expected a spanner name",
		}
	}
	name := unquote(terms[0].Value)
	spanner := NewEntry(name, name)
	if err := appendEntries(spanner, terms[2:], depth); err != nil {
		return nil, err
	}
	return spanner, nil
}

// BuildHeader builds and annotates both sides of tree.
func BuildHeader(tree ParseTree) (Header, error) {
	var h Header
	if !tree.NoRowSide() {
		lhs, err := Build(tree.LHS)
		if err != nil {
			return Header{}, err
		}
		if h.LHS, err = Annotate(lhs); err != nil {
			return Header{}, err
		}
	}
	rhs, err := Build(tree.RHS)
	if err != nil {
		return Header{}, err
	}
	if h.RHS, err = Annotate(rhs); err != nil {
		return Header{}, err
	}
	return h, nil
}

// ParseHeader parses formula and builds its annotated header.
func ParseHeader(formula string) (Header, error) {
	tree, err := Parse(formula)
	if err != nil {
		return Header{}, err
	}
	return BuildHeader(tree)
}

// splitVariable splits "display:column" at the first colon outside
// backticks and strips the quoting of both parts. Without a colon the
// display name and the column are the same.
func splitVariable(v string) (name, item string, err error) {
	if v == noRowSide {
		return v, v, nil
	}
	cut := -1
	inQuote, escaped := false, false
scan:
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case escaped:
			escaped = false
		case inQuote && c == '\\':
			escaped = true
		case c == '`':
			inQuote = !inQuote
		case c == ':' && !inQuote:
			cut = i
			break scan
		}
	}
	if inQuote && cut < 0 {
		return "", "", errUnterminated
	}
	if cut < 0 {
		name = unquote(v)
		if name == "" {
			return "", "", errEmptyPart
		}
		return name, name, nil
	}
	name, item = unquote(v[:cut]), unquote(v[cut+1:])
	if name == "" || item == "" {
		return "", "", errEmptyPart
	}
	return name, item, nil
}

type variableError string

func (e variableError) Error() string { return string(e) }

const (
	errUnterminated variableError = "unterminated backtick quote"
	errEmptyPart    variableError = "empty name or column around ':'"
)

// unquote removes surrounding backticks and resolves backslash escapes.
// Unquoted input is returned unchanged.
func unquote(s string) string {
	if len(s) < 2 || s[0] != '`' || s[len(s)-1] != '`' {
		return s
	}
	inner := s[1 : len(s)-1]
	if !strings.Contains(inner, `\`) {
		return inner
	}
	var sb strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
		}
		sb.WriteByte(inner[i])
	}
	return sb.String()
}
