package source

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

func openWorkbook(r io.Reader) (*excelize.File, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return f, nil
}
