package domain

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// Row is one tabular record, keyed by column name. Values stay as the raw
// strings from the file; only the date column is ever interpreted.
type Row map[string]string

// Date parses the row's "date" column. ok is false when the column is
// missing or will not parse, which excludes the row from any date window.
func (r Row) Date() (time.Time, bool) {
	raw, present := r["date"]
	if !present {
		return time.Time{}, false
	}
	t, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Location returns the row's "location" column, empty when absent.
func (r Row) Location() string {
	return r["location"]
}

// Table is a parsed tabular dataset. Columns preserves the file's header
// order so callers can render rows the way the file laid them out.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Filter returns a copy of the table keeping only rows the predicate accepts.
func (t Table) Filter(keep func(Row) bool) Table {
	filtered := Table{Columns: t.Columns, Rows: make([]Row, 0, len(t.Rows))}
	for _, row := range t.Rows {
		if keep(row) {
			filtered.Rows = append(filtered.Rows, row)
		}
	}
	return filtered
}

// ParseTable reads a CSV dataset into a Table. The first record is the
// header. Short rows keep whatever columns they have; rows with more fields
// than the header are counted as skipped. Returns the table, the skipped
// row count, and an error only when the header itself is unreadable.
func ParseTable(r io.Reader) (Table, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Table{}, 0, fmt.Errorf("parse table header: %w", err)
	}
	columns := make([]string, len(header))
	for i, c := range header {
		columns[i] = strings.TrimSpace(c)
	}

	tbl := Table{Columns: columns}
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		if len(record) > len(columns) {
			skipped++
			continue
		}
		row := make(Row, len(columns))
		for i, value := range record {
			row[columns[i]] = strings.TrimSpace(value)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	return tbl, skipped, nil
}
