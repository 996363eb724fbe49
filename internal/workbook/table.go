package workbook

import (
	"strings"

	"github.com/tealeg/xlsx/v2"
)

// Row maps a column name to the cell's text. Cells past the header width are
// dropped; a short row simply has no entry for the trailing columns.
type Row map[string]string

// Get returns the trimmed cell value and whether the cell holds anything.
// Absent columns and blank cells both read as missing, which mirrors how the
// source treats empty cells as nulls.
func (r Row) Get(column string) (string, bool) {
	v, ok := r[column]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Table is an in-memory tabular sheet: a header row plus data rows keyed by
// header name.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// tableFromSheet converts a sheet into a Table. The first row is the header;
// header names are trimmed. All cells are read as text so formatted values
// like zero-padded year-week codes survive intact.
func tableFromSheet(sheet *xlsx.Sheet) *Table {
	t := &Table{Name: sheet.Name}
	if len(sheet.Rows) == 0 {
		return t
	}

	for _, cell := range sheet.Rows[0].Cells {
		t.Columns = append(t.Columns, strings.TrimSpace(cell.String()))
	}

	for _, row := range sheet.Rows[1:] {
		data := make(Row, len(t.Columns))
		for j, cell := range row.Cells {
			if j >= len(t.Columns) {
				break
			}
			data[t.Columns[j]] = strings.TrimSpace(cell.String())
		}
		t.Rows = append(t.Rows, data)
	}

	return t
}

// emptyTable builds a zero-row table with the given column set.
func emptyTable(name string, columns []string) *Table {
	return &Table{Name: name, Columns: columns}
}
