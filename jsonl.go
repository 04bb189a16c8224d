package tablespan

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
)

// writeJSONL writes one JSON object per data row, keyed by column name.
func writeJSONL(w io.Writer, t *Table) error {
	enc := json.NewEncoder(w)
	keys := t.recordKeys()
	for r := range t.Len() {
		if err := enc.Encode(t.record(keys, r)); err != nil {
			return err
		}
	}
	return nil
}

// record returns data row i under keys, as made by recordKeys.
func (t *Table) record(keys []string, i int) map[string]any {
	rec := make(map[string]any, len(keys))
	for j, v := range t.dataRow(i) {
		rec[keys[j]] = plainValue(v)
	}
	return rec
}

// recordKeys returns one key per row name and data column. The first
// reference to a column keeps its name; later ones get a "_2", "_3", ...
// suffix that names no other column.
func (t *Table) recordKeys() []string {
	names := slices.Concat(t.vars.LHS, t.vars.RHS)
	taken := make(map[string]bool, len(names))
	for _, name := range names {
		taken[name] = true
	}
	keys := make([]string, len(names))
	seen := make(map[string]bool, len(names))
	for j, name := range names {
		if !seen[name] {
			seen[name] = true
			keys[j] = name
			continue
		}
		key := name
		for n := 2; taken[key]; n++ {
			key = fmt.Sprintf("%s_%d", name, n)
		}
		taken[key] = true
		keys[j] = key
	}
	return keys
}
