package source

import (
	"fmt"
	"io"
	"strings"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
)

// ReadNewsletterTypes reads the mailing-tool xlsx export and returns
// newsletter type by customer id. Only the first sheet is read; the
// expected columns are NUMMER and NL_TYPE.
func ReadNewsletterTypes(r io.Reader) (map[string]string, error) {
	f, err := openWorkbook(r)
	if err != nil {
		return nil, fmt.Errorf("open newsletter workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("newsletter workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read newsletter sheet: %w", err)
	}
	if len(rows) == 0 {
		return map[string]string{}, nil
	}

	idCol, typeCol := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case "NUMMER":
			idCol = i
		case "NL_TYPE":
			typeCol = i
		}
	}
	if idCol < 0 || typeCol < 0 {
		return nil, fmt.Errorf("newsletter sheet missing NUMMER/NL_TYPE columns")
	}

	types := make(map[string]string, len(rows)-1)
	for _, row := range rows[1:] {
		if idCol >= len(row) {
			continue
		}
		id := strings.TrimSpace(row[idCol])
		if id == "" {
			continue
		}
		// Trailing empty cells are trimmed by excelize; an absent type
		// cell still counts as a subscriber row with no type.
		nlType := ""
		if typeCol < len(row) {
			nlType = strings.TrimSpace(row[typeCol])
		}
		types[model.NormalizeCustomerID(id)] = nlType
	}
	return types, nil
}
