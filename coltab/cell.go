package coltab

import (
	"fmt"
	"strconv"

	"sidracap/format"
)

// Cell is one table value: a tagged JSON scalar or null.
// The zero value is a null cell.
type Cell struct {
	Kind format.Kind
	Str  string
	Num  float64
	Bool bool
}

// NullCell returns the explicit missing-value cell.
func NullCell() Cell {
	return Cell{Kind: format.KindNull}
}

// StringCell returns a cell holding a string value.
func StringCell(s string) Cell {
	return Cell{Kind: format.KindString, Str: s}
}

// NumberCell returns a cell holding a float64 value.
func NumberCell(f float64) Cell {
	return Cell{Kind: format.KindNumber, Num: f}
}

// BoolCell returns a cell holding a boolean value.
func BoolCell(b bool) Cell {
	return Cell{Kind: format.KindBool, Bool: b}
}

// CellOf converts a value decoded by encoding/json into a Cell.
// nil maps to null, string/float64/bool map to their kinds, and anything
// else (nested arrays or objects) is stored as its string rendering.
func CellOf(v any) Cell {
	switch val := v.(type) {
	case nil:
		return NullCell()
	case string:
		return StringCell(val)
	case float64:
		return NumberCell(val)
	case bool:
		return BoolCell(val)
	default:
		return StringCell(fmt.Sprint(val))
	}
}

// IsNull reports whether the cell is a missing value.
func (c Cell) IsNull() bool {
	return c.Kind == format.KindNull
}

// Text renders the cell as a plain string: the string itself, a number in
// its shortest decimal form ("1737", not "1737.000000"), "true"/"false",
// or "" for null. Used when cell values feed request parameters.
func (c Cell) Text() string {
	switch c.Kind {
	case format.KindString:
		return c.Str
	case format.KindNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case format.KindBool:
		return strconv.FormatBool(c.Bool)
	default:
		return ""
	}
}
