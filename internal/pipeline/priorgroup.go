package pipeline

import (
	"time"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
	"github.com/maralthesage/RFM-Pipeline/internal/period"
)

// Legacy customer-group labels that only exist in the prior-period
// derivation, not in the RFM vocabulary.
const (
	priorProspect    = "Interessenten"
	priorNewCustomer = "Neukunden-1"
)

// LegacyGroupRecord is one row of the historical customer-group export:
// per customer, the raw group code for each half-year period number.
type LegacyGroupRecord struct {
	CustomerID    string
	CodesByPeriod map[int]string
}

// PriorGroupInput bundles the sources the prior-group derivation joins.
type PriorGroupInput struct {
	// Customers supplies registration dates.
	Customers []model.RawCustomerRecord
	// FirstPurchase maps customer id to the first purchase date from
	// the statistics extract; absent ids never purchased.
	FirstPurchase map[string]time.Time
	// Legacy holds the historical group codes.
	Legacy []LegacyGroupRecord
	// CodeNames maps raw legacy group codes to display names.
	CodeNames map[string]string
}

// DerivePriorGroups reproduces the previous half-year's customer-group
// label per customer, used downstream only for the cross-tab:
//
//   - customers registered up to the end of the previous half-year get
//     the mapped legacy label of that period; without a first purchase
//     they are prospects instead
//   - customers registered in the current half-year are new customers
//     when they purchased, prospects otherwise
//   - prospects whose first purchase falls in the current half-year are
//     promoted to new customers
//
// The result is deterministic: one label per customer id, first write
// wins on duplicate ids.
func DerivePriorGroups(in PriorGroupInput, info period.Info) map[string]string {
	currentStart := info.CurrentStart()

	legacyByCustomer := make(map[string]map[int]string, len(in.Legacy))
	for _, rec := range in.Legacy {
		id := model.NormalizeCustomerID(rec.CustomerID)
		if _, dup := legacyByCustomer[id]; dup {
			continue
		}
		legacyByCustomer[id] = rec.CodesByPeriod
	}

	groups := make(map[string]string, len(in.Customers))
	for _, c := range in.Customers {
		id := model.NormalizeCustomerID(c.CustomerID)
		if _, dup := groups[id]; dup {
			continue
		}

		_, purchased := in.FirstPurchase[id]
		registered := c.RegisteredAt

		switch {
		case registered != nil && registered.After(info.PrevEnd):
			// Registered in the current half-year.
			if purchased {
				groups[id] = priorNewCustomer
			} else {
				groups[id] = priorProspect
			}
		default:
			label := ""
			if codes, ok := legacyByCustomer[id]; ok {
				label = in.CodeNames[codes[info.Number]]
			}
			if !purchased {
				label = priorProspect
			}
			groups[id] = label
		}
	}

	// Prospects with a first purchase in the current half-year are new
	// customers regardless of which branch labeled them.
	for id, label := range groups {
		if label != priorProspect {
			continue
		}
		if first, ok := in.FirstPurchase[id]; ok && !first.Before(currentStart) {
			groups[id] = priorNewCustomer
		}
	}

	return groups
}
