package source

import (
	"fmt"
	"io"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
)

// Invoice extract columns. The customer id is embedded in the VERWEIS
// reference field rather than carried directly.
const (
	colReference = "VERWEIS"
	colOrderID   = "AUFTRAG_NR"
	colOrderDate = "AUF_ANLAGE"
	colGross     = "BEST_WERT"
	colTax1      = "MWST1"
	colTax2      = "MWST2"
	colTax3      = "MWST3"
)

// ReadOrders parses the invoice extract into order rows. Order dates
// that fail to parse stay nil; such rows still contribute to order
// counts and revenue but not to recency or seasonality.
func ReadOrders(r io.Reader) ([]model.OrderRecord, error) {
	cr := newCSVReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read invoice header: %w", err)
	}
	idx := indexHeader(header)

	var out []model.OrderRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read invoice row: %w", err)
		}
		ref := idx.get(row, colReference)
		if ref == "" {
			continue
		}
		out = append(out, model.OrderRecord{
			CustomerID: model.CustomerIDFromReference(ref),
			OrderID:    idx.get(row, colOrderID),
			OrderDate:  parseDate(idx.get(row, colOrderDate)),
			GrossValue: parseAmount(idx.get(row, colGross)),
			Tax1:       parseAmount(idx.get(row, colTax1)),
			Tax2:       parseAmount(idx.get(row, colTax2)),
			Tax3:       parseAmount(idx.get(row, colTax3)),
		})
	}
	return out, nil
}
