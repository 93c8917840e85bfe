package coltab

import "fmt"

// Table is an in-memory columnar table: ordered named columns over rows of
// cells. Rows preserve insertion order.
type Table struct {
	cols []string
	rows [][]Cell
}

// New creates a table with the given column names, in order.
// New with no columns creates the empty table.
func New(columns ...string) *Table {
	return &Table{cols: columns}
}

// Columns returns the column names in order. The slice must not be modified.
func (t *Table) Columns() []string {
	if t == nil {
		return nil
	}

	return t.cols
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}

	return len(t.cols)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if t == nil {
		return 0
	}

	return len(t.rows)
}

// IsEmpty reports whether the table holds no rows. A nil table is empty.
func (t *Table) IsEmpty() bool {
	return t == nil || len(t.rows) == 0
}

// AppendRow appends one row. The number of cells must match the column count.
func (t *Table) AppendRow(cells ...Cell) error {
	if len(cells) != len(t.cols) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(cells), len(t.cols))
	}
	t.rows = append(t.rows, cells)

	return nil
}

// Cell returns the cell at the given row and column indices.
// Out-of-range indices return a null cell.
func (t *Table) Cell(row, col int) Cell {
	if t == nil || row < 0 || row >= len(t.rows) || col < 0 || col >= len(t.cols) {
		return NullCell()
	}

	return t.rows[row][col]
}

// ColumnIndex returns the index of the named column, or -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.cols {
		if c == name {
			return i
		}
	}

	return -1
}
