package tablespan

import "iter"

// BaseLevel is the name of the synthetic root of every header tree. The
// root is never rendered and never merged. It is recognised by its position,
// so a data column may carry the same name.
const BaseLevel = "_BASE_LEVEL_"

// HeaderEntry is a node in a header hierarchy. Leaves map to data columns
// through ItemName; inner nodes are spanners whose ItemName equals Name.
//
// Width is the number of leaves below the entry and Level the distance to
// its deepest leaf, a leaf having level 1. Zero means "not annotated yet".
// Entries are treated as immutable once annotated.
type HeaderEntry struct {
	Name     string         `json:"name" yaml:"name"`
	ItemName string         `json:"item_name" yaml:"item_name"`
	Width    int            `json:"width,omitempty" yaml:"width,omitempty"`
	Level    int            `json:"level,omitempty" yaml:"level,omitempty"`
	Entries  []*HeaderEntry `json:"entries,omitempty" yaml:"entries,omitempty"`
}

// NewEntry returns an unannotated entry. An empty itemName defaults to name.
func NewEntry(name, itemName string, entries ...*HeaderEntry) *HeaderEntry {
	if itemName == "" {
		itemName = name
	}
	return &HeaderEntry{Name: name, ItemName: itemName, Entries: entries}
}

// IsLeaf reports whether e has no children.
func (e *HeaderEntry) IsLeaf() bool { return len(e.Entries) == 0 }

// Equal reports whether e and other have the same shape, names, widths and
// levels. An unannotated entry never equals an annotated one.
func (e *HeaderEntry) Equal(other *HeaderEntry) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.Name != other.Name || e.ItemName != other.ItemName ||
		e.Width != other.Width || e.Level != other.Level ||
		len(e.Entries) != len(other.Entries) {
		return false
	}
	for i := range e.Entries {
		if !e.Entries[i].Equal(other.Entries[i]) {
			return false
		}
	}
	return true
}

// All yields e and its descendants in pre-order.
func (e *HeaderEntry) All() iter.Seq[*HeaderEntry] {
	return func(yield func(*HeaderEntry) bool) {
		e.walk(yield)
	}
}

func (e *HeaderEntry) walk(yield func(*HeaderEntry) bool) bool {
	if e == nil {
		return true
	}
	if !yield(e) {
		return false
	}
	for _, child := range e.Entries {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

// Leaves yields the leaves below e from left to right.
func (e *HeaderEntry) Leaves() iter.Seq[*HeaderEntry] {
	return func(yield func(*HeaderEntry) bool) {
		for n := range e.All() {
			if n.IsLeaf() && !yield(n) {
				return
			}
		}
	}
}

// Header holds the row side (LHS) and column side (RHS) header trees of a
// table. LHS is nil when the formula has no row side.
type Header struct {
	LHS *HeaderEntry `json:"lhs" yaml:"lhs"`
	RHS *HeaderEntry `json:"rhs" yaml:"rhs"`
}

// HasRowSide reports whether the header has row-identifying columns.
func (h Header) HasRowSide() bool { return h.LHS != nil }

// MaxLevel returns the level of the deeper side root.
func (h Header) MaxLevel() int {
	level := 0
	if h.RHS != nil {
		level = h.RHS.Level
	}
	if h.LHS != nil && h.LHS.Level > level {
		level = h.LHS.Level
	}
	return level
}

// Equal compares both sides structurally.
func (h Header) Equal(other Header) bool {
	return h.LHS.Equal(other.LHS) && h.RHS.Equal(other.RHS)
}
