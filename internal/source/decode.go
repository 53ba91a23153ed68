// Package source reads the raw flat-file extracts: semicolon-separated
// CSV exported in code page 850 and the xlsx newsletter list. The
// package only adapts formats; all decision logic lives behind it.
package source

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
)

// newCSVReader wraps a cp850 byte stream into a semicolon CSV reader.
func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(charmap.CodePage850.NewDecoder().Reader(r))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// headerIndex maps column names to their positions. Lookups are by
// exact name; the extracts are stable in naming but not in order.
type headerIndex map[string]int

func indexHeader(header []string) headerIndex {
	idx := make(headerIndex, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func (h headerIndex) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseDate parses the extract date format. Missing or unparseable
// values come back nil: absence is data, not an error, and downstream
// rules (recency score 0, lifecycle overrides) handle it explicitly.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", "02.01.2006", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &t
		}
	}
	return nil
}

// parseAmount parses a decimal value, accepting both dot and comma
// separators. Unparseable values count as zero.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
