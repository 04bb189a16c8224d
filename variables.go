package tablespan

import "fmt"

// Variables returns the ItemName of every leaf below e in formula order
// (pre-order, left to right). The synthetic root is never included. A nil
// tree yields nil, which callers read as "this side does not exist".
func Variables(e *HeaderEntry) []string {
	if e == nil {
		return nil
	}
	vars := []string{}
	for leaf := range e.Leaves() {
		// An empty side has only the root.
		if leaf == e {
			continue
		}
		vars = append(vars, leaf.ItemName)
	}
	return vars
}

// VariableSet lists the data columns referenced by each formula side.
type VariableSet struct {
	LHS []string `json:"lhs" yaml:"lhs"`
	RHS []string `json:"rhs" yaml:"rhs"`
}

// Variables returns the columns referenced by both sides of h.
func (h Header) Variables() VariableSet {
	return VariableSet{LHS: Variables(h.LHS), RHS: Variables(h.RHS)}
}

// Select copies the named columns of f, in the given order, into a new
// DataFrame. A name missing from f yields an *UnknownColumnError and a
// column without f.Len() values an [ErrShape] error.
func Select(f Frame, names []string) (*DataFrame, error) {
	rows := f.Len()
	cols := make([][]any, len(names))
	for i, name := range names {
		col, ok := f.Column(name)
		if !ok {
			return nil, &UnknownColumnError{Column: name, Available: f.Columns()}
		}
		if len(col) != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, want %d", ErrShape, name, len(col), rows)
		}
		cols[i] = append([]any(nil), col...)
	}
	return NewDataFrame(names, cols)
}
