package feed

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// Row is one parsed feed record. Column order is preserved from the header so
// callers that scan columns positionally (the image locator) see them in the
// order the vendor emitted them.
type Row struct {
	columns []string
	values  map[string]string
}

// Columns returns the column names in feed order.
func (r Row) Columns() []string {
	return r.columns
}

// Get returns the trimmed cell value for an exact column name.
func (r Row) Get(name string) string {
	return strings.TrimSpace(r.values[name])
}

// Lookup returns the first non-empty value among the given column name
// variants, matched against normalized column names. Vendor feeds disagree on
// naming ("Current Stock" vs "Qty" vs "Available"), so absent columns simply
// yield "".
func (r Row) Lookup(names ...string) string {
	index := make(map[string]string, len(r.columns))
	for _, col := range r.columns {
		key := NormalizeKey(col)
		if _, ok := index[key]; !ok {
			index[key] = col
		}
	}
	for _, name := range names {
		if col, ok := index[NormalizeKey(name)]; ok {
			if v := r.Get(col); v != "" {
				return v
			}
		}
	}
	return ""
}

// NormalizeKey lowercases a column name and strips separator characters so
// "Image URL", "image_url" and "ImageURL" all compare equal.
func NormalizeKey(name string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(strings.TrimSpace(name)) {
		switch c {
		case ' ', '\t', '_', '-':
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// ParseRows parses CSV feed text into rows keyed by the header record.
// Ragged records are tolerated: short records leave trailing columns empty,
// extra cells are dropped.
func ParseRows(text string) ([]Row, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	for i, col := range header {
		header[i] = strings.TrimPrefix(strings.TrimSpace(col), "\ufeff")
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		empty := true
		values := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				values[col] = record[i]
				if strings.TrimSpace(record[i]) != "" {
					empty = false
				}
			} else {
				values[col] = ""
			}
		}
		if empty {
			continue
		}
		rows = append(rows, Row{columns: header, values: values})
	}

	return rows, nil
}

// NewRow builds a row directly from ordered column/value pairs. Used by tests
// and callers that synthesize rows outside the CSV path.
func NewRow(columns []string, values map[string]string) Row {
	return Row{columns: columns, values: values}
}
