package source

import (
	"fmt"
	"io"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
)

// Address extract columns.
const (
	colCustomerID = "NUMMER"
	colRegistered = "SYS_ANLAGE"
	colSource     = "QUELLE"
	colBirth      = "GEBURT"
	colPostal     = "PLZ"
	colSalutation = "ANREDE"
)

// ReadCustomers parses the address extract. Customer ids are normalized
// to the padded 10-digit form; rows without an id are skipped.
func ReadCustomers(r io.Reader) ([]model.RawCustomerRecord, error) {
	cr := newCSVReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read address header: %w", err)
	}
	idx := indexHeader(header)

	var out []model.RawCustomerRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read address row: %w", err)
		}
		id := idx.get(row, colCustomerID)
		if id == "" {
			continue
		}
		out = append(out, model.RawCustomerRecord{
			CustomerID:     model.NormalizeCustomerID(id),
			RegisteredAt:   parseDate(idx.get(row, colRegistered)),
			BirthDate:      parseDate(idx.get(row, colBirth)),
			PostalCode:     idx.get(row, colPostal),
			SalutationCode: idx.get(row, colSalutation),
			SourceCode:     idx.get(row, colSource),
		})
	}
	return out, nil
}
