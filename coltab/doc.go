// Package coltab implements the columnar table format used for harvested
// SIDRA data.
//
// A Table is an ordered set of named columns over rows of tagged cells; a
// cell holds one JSON scalar (string, number, boolean) or is null. Encode
// serializes a table into a self-describing binary file: a fixed header
// (see package section), a fixed-size column index, the column names, and a
// compressed data section holding one payload per column. Column order,
// names, and cell values round-trip exactly.
//
// Each column payload starts with a presence bitmap (one bit per row,
// set = value present) followed by the present cells in row order, each as
// a kind tag plus its payload. Missing values therefore have an explicit
// on-disk representation instead of relying on a sentinel value.
//
// WriteFile persists a table atomically (write to a temp file in the target
// directory, then rename), so an interrupted run never corrupts a
// previously complete file.
package coltab
