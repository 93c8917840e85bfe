// Package extract turns decoded SIDRA JSON documents into columnar tables.
//
// Two transforms exist. Metadata walks a nested metadata document along a
// key path and flattens the terminal list into a table. Series interprets
// the numeric-data endpoint's "header row + data rows" array convention and
// renames columns from raw field identifiers to display names.
//
// Both are pure functions: malformed shapes produce an empty table rather
// than an error, matching the harvester's skip-and-continue policy.
package extract

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"sidracap/coltab"
)

// listShape classifies the terminal list of a metadata key path. The shape
// is resolved once and dispatches to the matching table-building strategy.
type listShape uint8

const (
	shapeEmpty    listShape = iota // not a list, or a list with no elements
	shapeStrings                   // every element is a string
	shapeMappings                  // at least one element is not a string
)

func classify(list []any, ok bool) listShape {
	if !ok || len(list) == 0 {
		return shapeEmpty
	}
	for _, item := range list {
		if _, isStr := item.(string); !isStr {
			return shapeMappings
		}
	}

	return shapeStrings
}

// Metadata navigates doc along path and flattens the terminal list into a
// table.
//
// A missing key, a non-mapping intermediate value, a non-list terminal
// value, or an empty terminal list all yield the empty table; none of these
// are errors. A list of strings becomes a single column named after the
// last path key (singularized); a list of mappings becomes one column per
// distinct key in first-seen order, with absent fields as null cells.
func Metadata(doc map[string]any, path []string) *coltab.Table {
	var cur any = doc
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return coltab.New()
		}
		cur, ok = m[key]
		if !ok {
			return coltab.New()
		}
	}

	list, isList := cur.([]any)
	switch classify(list, isList) {
	case shapeStrings:
		return stringColumn(list, path[len(path)-1])
	case shapeMappings:
		return mappingColumns(list)
	default:
		return coltab.New()
	}
}

// stringColumn builds the single-column table for a list of strings.
func stringColumn(list []any, lastKey string) *coltab.Table {
	table := coltab.New(singularize(lastKey))
	for _, item := range list {
		s, _ := item.(string)
		_ = table.AppendRow(coltab.StringCell(s))
	}

	return table
}

// mappingColumns builds the multi-column table for a list of mappings.
// The column set is the union of keys across all rows, in first-seen order;
// a key absent from a row surfaces as a null cell.
func mappingColumns(list []any) *coltab.Table {
	var columns []string
	seen := make(map[string]struct{})
	for _, item := range list {
		row, ok := item.(map[string]any)
		if !ok {
			continue
		}
		// Within one mapping, Go's decoder loses key order; sort for a
		// deterministic first-seen sequence.
		keys := make([]string, 0, len(row))
		for k := range row {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if _, dup := seen[k]; !dup {
				seen[k] = struct{}{}
				columns = append(columns, k)
			}
		}
	}

	table := coltab.New(columns...)
	for _, item := range list {
		row, _ := item.(map[string]any)
		cells := make([]coltab.Cell, len(columns))
		for i, col := range columns {
			v, present := row[col]
			if !present {
				cells[i] = coltab.NullCell()
				continue
			}
			cells[i] = coltab.CellOf(v)
		}
		_ = table.AppendRow(cells...)
	}

	return table
}

// Series converts a numeric-data envelope into a table.
//
// Element 0 maps raw field identifiers to display names; elements 1..N are
// rows keyed by the raw identifiers. An envelope with fewer than two
// elements, or a non-mapping element 0, yields the empty table. Columns are
// ordered by sorted raw identifier so output is stable run to run; an
// identifier absent from a row surfaces as a null cell.
func Series(envelope []any) *coltab.Table {
	if len(envelope) < 2 {
		return coltab.New()
	}

	header, ok := envelope[0].(map[string]any)
	if !ok || len(header) == 0 {
		return coltab.New()
	}

	rawIDs := make([]string, 0, len(header))
	for id := range header {
		rawIDs = append(rawIDs, id)
	}
	sort.Strings(rawIDs)

	columns := make([]string, len(rawIDs))
	for i, id := range rawIDs {
		columns[i] = coltab.CellOf(header[id]).Text()
	}

	table := coltab.New(columns...)
	for _, item := range envelope[1:] {
		row, _ := item.(map[string]any)
		cells := make([]coltab.Cell, len(rawIDs))
		for i, id := range rawIDs {
			v, present := row[id]
			if !present {
				cells[i] = coltab.NullCell()
				continue
			}
			cells[i] = coltab.CellOf(v)
		}
		_ = table.AppendRow(cells...)
	}

	return table
}

// singularize derives a column name from a plural key: strip exactly one
// trailing "s" (if present) and upper-case the first rune. This is a fixed
// string transform, not linguistic pluralization; keys that are already
// singular only get capitalized.
func singularize(key string) string {
	key = strings.TrimSuffix(key, "s")

	r, size := utf8.DecodeRuneInString(key)
	if size == 0 || r == utf8.RuneError {
		return key
	}

	return string(unicode.ToUpper(r)) + key[size:]
}
