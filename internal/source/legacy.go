package source

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
	"github.com/maralthesage/RFM-Pipeline/internal/pipeline"
)

// ReadLegacyGroups parses the historical customer-group extract. Each
// column named Z<n> carries the raw group code for half-year period n.
func ReadLegacyGroups(r io.Reader) ([]pipeline.LegacyGroupRecord, error) {
	cr := newCSVReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read group header: %w", err)
	}
	idx := indexHeader(header)

	periodCols := make(map[int]int) // period number -> column index
	for name, i := range idx {
		if !strings.HasPrefix(name, "Z") {
			continue
		}
		if n, err := strconv.Atoi(name[1:]); err == nil {
			periodCols[n] = i
		}
	}

	var out []pipeline.LegacyGroupRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// The historical extracts contain the occasional mangled
			// row; skip rather than abort.
			continue
		}
		id := idx.get(row, colCustomerID)
		if id == "" {
			continue
		}
		codes := make(map[int]string, len(periodCols))
		for n, col := range periodCols {
			if col < len(row) {
				if code := strings.TrimSpace(row[col]); code != "" {
					codes[n] = code
				}
			}
		}
		out = append(out, pipeline.LegacyGroupRecord{
			CustomerID:    model.NormalizeCustomerID(id),
			CodesByPeriod: codes,
		})
	}
	return out, nil
}

// ReadFirstPurchases parses the statistics extract (NUMMER, ERSTKAUF)
// into a first-purchase date per customer. Customers without a parseable
// date are absent from the map.
func ReadFirstPurchases(r io.Reader) (map[string]time.Time, error) {
	cr := newCSVReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read statistics header: %w", err)
	}
	idx := indexHeader(header)

	out := make(map[string]time.Time)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		id := idx.get(row, colCustomerID)
		if id == "" {
			continue
		}
		if d := parseDate(idx.get(row, "ERSTKAUF")); d != nil {
			id = model.NormalizeCustomerID(id)
			if _, dup := out[id]; !dup {
				out[id] = *d
			}
		}
	}
	return out, nil
}

// ReadCodeNames reads the segment-code dictionary workbook mapping raw
// legacy codes (column "Alt") to display names (column "Neu").
func ReadCodeNames(r io.Reader) (map[string]string, error) {
	return readTwoColumnWorkbook(r, "Alt", "Neu")
}

func readTwoColumnWorkbook(r io.Reader, keyCol, valueCol string) (map[string]string, error) {
	f, err := openWorkbook(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	if len(rows) == 0 {
		return map[string]string{}, nil
	}

	ki, vi := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case keyCol:
			ki = i
		case valueCol:
			vi = i
		}
	}
	if ki < 0 || vi < 0 {
		return nil, fmt.Errorf("workbook missing %s/%s columns", keyCol, valueCol)
	}

	out := make(map[string]string, len(rows)-1)
	for _, row := range rows[1:] {
		if ki >= len(row) || vi >= len(row) {
			continue
		}
		key := strings.TrimSpace(row[ki])
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(row[vi])
	}
	return out, nil
}
