package pipeline

import (
	"sort"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
)

// SummaryRow is one cell of the (segment, prior group) cross-tab.
type SummaryRow struct {
	Segment               string `json:"segment"`
	PriorGroup            string `json:"priorGroup"`
	Customers             int    `json:"customers"`
	NewsletterSubscribers int    `json:"newsletterSubscribers"`
}

// TotalRow is the per-segment rollup of the cross-tab.
type TotalRow struct {
	Segment               string `json:"segment"`
	Customers             int    `json:"customers"`
	NewsletterSubscribers int    `json:"newsletterSubscribers"`
}

// Summarize groups the scored profiles by (segment, prior group) and
// counts customers and newsletter subscribers. Rows come back in the
// canonical segment order, prior groups alphabetical within a segment.
func Summarize(profiles []*model.CustomerProfile) []SummaryRow {
	type key struct{ segment, prior string }
	cells := make(map[key]*SummaryRow)

	for _, p := range profiles {
		k := key{p.Segment, p.PriorGroup}
		row, ok := cells[k]
		if !ok {
			row = &SummaryRow{Segment: p.Segment, PriorGroup: p.PriorGroup}
			cells[k] = row
		}
		row.Customers++
		if p.NewsletterType != "" {
			row.NewsletterSubscribers++
		}
	}

	rows := make([]SummaryRow, 0, len(cells))
	for _, row := range cells {
		rows = append(rows, *row)
	}
	SortSummary(rows)
	return rows
}

// SortSummary orders cross-tab rows by canonical segment order, prior
// groups alphabetical within a segment.
func SortSummary(rows []SummaryRow) {
	sort.Slice(rows, func(i, j int) bool {
		ri, rj := model.SegmentRank(rows[i].Segment), model.SegmentRank(rows[j].Segment)
		if ri != rj {
			return ri < rj
		}
		return rows[i].PriorGroup < rows[j].PriorGroup
	})
}

// Totals rolls the cross-tab up to one row per segment, preserving the
// canonical order.
func Totals(rows []SummaryRow) []TotalRow {
	bySegment := make(map[string]*TotalRow)
	var order []string
	for _, r := range rows {
		total, ok := bySegment[r.Segment]
		if !ok {
			total = &TotalRow{Segment: r.Segment}
			bySegment[r.Segment] = total
			order = append(order, r.Segment)
		}
		total.Customers += r.Customers
		total.NewsletterSubscribers += r.NewsletterSubscribers
	}
	out := make([]TotalRow, 0, len(order))
	for _, s := range order {
		out = append(out, *bySegment[s])
	}
	return out
}
