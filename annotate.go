package tablespan

import "fmt"

// AssignWidth returns a copy of e in which every entry carries its width:
// 1 for a leaf, the sum of its children's widths otherwise. e is not
// modified. A nil tree yields nil.
func AssignWidth(e *HeaderEntry) (*HeaderEntry, error) {
	if e == nil {
		return nil, nil
	}
	out := &HeaderEntry{Name: e.Name, ItemName: e.ItemName, Level: e.Level}
	if e.IsLeaf() {
		out.Width = 1
		return out, nil
	}
	out.Entries = make([]*HeaderEntry, len(e.Entries))
	for i, child := range e.Entries {
		if child == nil {
			return nil, fmt.Errorf("%w: nil entry %d below %q", ErrInconsistent, i, e.Name)
		}
		annotated, err := AssignWidth(child)
		if err != nil {
			return nil, err
		}
		out.Entries[i] = annotated
		out.Width += annotated.Width
	}
	if out.Width <= 0 {
		return nil, fmt.Errorf("%w: could not set a width for %q", ErrInconsistent, e.Name)
	}
	return out, nil
}

// AssignLevel returns a copy of e in which every entry carries its level:
// 1 for a leaf, one more than its deepest child otherwise. e is not
// modified. A nil tree yields nil.
func AssignLevel(e *HeaderEntry) (*HeaderEntry, error) {
	if e == nil {
		return nil, nil
	}
	out := &HeaderEntry{Name: e.Name, ItemName: e.ItemName, Width: e.Width}
	if e.IsLeaf() {
		out.Level = 1
		return out, nil
	}
	out.Entries = make([]*HeaderEntry, len(e.Entries))
	for i, child := range e.Entries {
		if child == nil {
			return nil, fmt.Errorf("%w: nil entry %d below %q", ErrInconsistent, i, e.Name)
		}
		annotated, err := AssignLevel(child)
		if err != nil {
			return nil, err
		}
		out.Entries[i] = annotated
		out.Level = max(out.Level, annotated.Level+1)
	}
	if out.Level <= 0 {
		return nil, fmt.Errorf("%w: could not set a level for %q", ErrInconsistent, e.Name)
	}
	return out, nil
}

// Annotate assigns widths and levels to a copy of e.
func Annotate(e *HeaderEntry) (*HeaderEntry, error) {
	withWidth, err := AssignWidth(e)
	if err != nil {
		return nil, err
	}
	return AssignLevel(withWidth)
}
