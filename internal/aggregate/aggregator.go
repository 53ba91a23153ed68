// Package aggregate reduces raw order and address rows into one profile
// per customer.
package aggregate

import (
	"math"
	"sort"
	"time"

	"github.com/maralthesage/RFM-Pipeline/internal/channel"
	"github.com/maralthesage/RFM-Pipeline/internal/model"
	"github.com/maralthesage/RFM-Pipeline/internal/period"
)

// easterMonths and christmasMonths are the fixed 3-month seasonality
// windows.
var (
	easterMonths    = map[time.Month]struct{}{time.February: {}, time.March: {}, time.April: {}}
	christmasMonths = map[time.Month]struct{}{time.October: {}, time.November: {}, time.December: {}}
)

// Options controls the aggregation pass.
type Options struct {
	// Reference is the "today" of the run. It bounds the last-2-years
	// window and anchors the 3-5-years-ago split.
	Reference time.Time
}

// Build joins customers with their orders and produces one profile per
// distinct customer id. Demographic attributes are taken keep-first
// after a stable sort of each customer's orders by date ascending, so
// repeated runs over the same snapshot yield identical profiles.
func Build(customers []model.RawCustomerRecord, orders []model.OrderRecord, opts Options) []*model.CustomerProfile {
	fiveYearsAgo, twoYearsAgo := period.ReferenceWindows(opts.Reference)

	byCustomer := make(map[string][]model.OrderRecord, len(customers))
	for _, o := range orders {
		id := model.NormalizeCustomerID(o.CustomerID)
		byCustomer[id] = append(byCustomer[id], o)
	}

	seen := make(map[string]struct{}, len(customers))
	profiles := make([]*model.CustomerProfile, 0, len(customers))

	for _, c := range customers {
		id := model.NormalizeCustomerID(c.CustomerID)
		if _, dup := seen[id]; dup {
			// Duplicate address rows are resolved keep-first. The
			// input is pre-sorted, so the kept row is stable across
			// runs.
			continue
		}
		seen[id] = struct{}{}

		p := &model.CustomerProfile{
			CustomerID:     id,
			Salutation:     model.SalutationLabel(c.SalutationCode),
			AgeGroup:       model.AgeGroup(c.BirthDate, opts.Reference),
			PostalCode:     c.PostalCode,
			NewsletterType: c.NewsletterType,
			RegisteredAt:   c.RegisteredAt,
		}
		p.Channel, p.ChannelTag = channel.Classify(c.SourceCode)

		accumulate(p, byCustomer[id], fiveYearsAgo, twoYearsAgo, opts.Reference)
		profiles = append(profiles, p)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CustomerID < profiles[j].CustomerID
	})
	return profiles
}

func accumulate(p *model.CustomerProfile, orders []model.OrderRecord, fiveYearsAgo, twoYearsAgo, reference time.Time) {
	// Stable date-ascending order; undated orders sort last.
	sort.SliceStable(orders, func(i, j int) bool {
		a, b := orders[i].OrderDate, orders[j].OrderDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})

	distinct := make(map[string]struct{})
	months := make(map[time.Month]struct{})
	years := make(map[int]struct{})
	undated := false

	for _, o := range orders {
		// Rows without an order number carry revenue but cannot be
		// counted as orders.
		if o.OrderID != "" {
			distinct[o.OrderID] = struct{}{}
		}
		p.Revenue += o.NetRevenue()

		if o.OrderDate == nil {
			undated = true
			continue
		}
		d := *o.OrderDate
		months[d.Month()] = struct{}{}
		years[d.Year()] = struct{}{}

		if p.FirstPurchase == nil || d.Before(*p.FirstPurchase) {
			p.FirstPurchase = &d
		}
		if p.LastPurchase == nil || d.After(*p.LastPurchase) {
			p.LastPurchase = &d
		}

		switch {
		case !d.Before(fiveYearsAgo) && d.Before(twoYearsAgo):
			p.OrdersOld++
			p.RevenueOld += o.NetRevenue()
		case !d.Before(twoYearsAgo) && d.Before(reference):
			p.OrdersRecent++
			p.RevenueRecent += o.NetRevenue()
		}
	}

	p.OrderCount = len(distinct)

	// Returns can push revenue sums negative; clamp rather than reject.
	if p.Revenue < 0 {
		p.Revenue = 0
	}
	if p.RevenueOld < 0 {
		p.RevenueOld = 0
	}
	if p.RevenueRecent < 0 {
		p.RevenueRecent = 0
	}

	p.WeightedOrders = weighted5Year(float64(p.OrdersOld), float64(p.OrdersRecent))
	p.WeightedRevenue = weighted5Year(p.RevenueOld, p.RevenueRecent)
	if p.WeightedRevenue < 0 {
		p.WeightedRevenue = 0
	}

	p.SeasonalEaster = seasonal(months, years, easterMonths, p.OrderCount, undated)
	p.SeasonalChristmas = seasonal(months, years, christmasMonths, p.OrderCount, undated)
}

// weighted5Year blends the 3-5-years-ago figure at half weight with the
// last-2-years figure and rounds to the nearest integer, halves up.
func weighted5Year(old, recent float64) float64 {
	v := 0.5*old + recent
	if v < 0 {
		return 0
	}
	return math.Round(v)
}

// seasonal reports whether every order falls inside the window months
// and the orders span at least two calendar years. Customers with a
// single lifetime order are never seasonal: one purchase plus a return
// can masquerade as two in-window "orders" of the same transaction.
func seasonal(months map[time.Month]struct{}, years map[int]struct{}, window map[time.Month]struct{}, orderCount int, undated bool) bool {
	if orderCount <= 1 || undated || len(months) == 0 || len(years) < 2 {
		return false
	}
	for m := range months {
		if _, ok := window[m]; !ok {
			return false
		}
	}
	return true
}
