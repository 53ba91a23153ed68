package scoring

import (
	"time"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
	"github.com/maralthesage/RFM-Pipeline/internal/period"
)

// segmentRule is one row of the decision table over (combined, recency).
type segmentRule struct {
	combined []int
	recency  []int
	label    string
}

// segmentTable is evaluated top to bottom, first match wins. The rows
// are mutually exclusive by construction, so order does not change the
// result, but the tests pin it anyway.
var segmentTable = []segmentRule{
	{[]int{4, 5}, []int{9, 10}, model.SegmentChampions},
	{[]int{4, 5}, []int{5, 6, 7, 8}, model.SegmentLoyal},
	{[]int{5}, []int{1, 2, 3, 4}, model.SegmentCantLose},
	{[]int{2, 3, 4}, []int{7, 8, 9, 10}, model.SegmentPotentialLoyal},
	{[]int{3}, []int{5, 6}, model.SegmentNeedAttention},
	{[]int{3, 4}, []int{1, 2, 3, 4}, model.SegmentAtRisk},
	{[]int{1}, []int{9, 10}, model.SegmentReactivated},
	{[]int{1}, []int{7, 8}, model.SegmentPromising},
	{[]int{1, 2}, []int{5, 6}, model.SegmentChurning},
	{[]int{2}, []int{1, 2, 3, 4}, model.SegmentSleeping},
	{[]int{1}, []int{1, 2, 3, 4}, model.SegmentLost},
}

// TableLabel resolves the decision table for a (combined, recency) pair.
// Combinations outside the table fall through to "Nicht klassifiziert".
func TableLabel(combined, recency int) string {
	for _, r := range segmentTable {
		if containsInt(r.combined, combined) && containsInt(r.recency, recency) {
			return r.label
		}
	}
	return model.SegmentUnclassified
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// Classify assigns the final segment label. The decision table only
// means anything for customers with an established purchase history, so
// prospects and brand-new buyers bypass it via the overrides, applied
// in priority order with the last writer winning.
func Classify(p *model.CustomerProfile, info period.Info, reference time.Time) {
	p.Segment = TableLabel(p.CombinedScore, p.RecencyScore)

	if p.Revenue == 0 {
		p.Segment = model.SegmentProspect
	}
	if !p.HasPurchased() && p.RegisteredAt != nil {
		if p.RegisteredAt.Year() >= reference.Year()-1 {
			// Newly registered prospect.
			p.Segment = model.SegmentProspect
		} else if p.Revenue == 0 {
			p.Segment = model.SegmentProspect
		}
	}
	if p.FirstPurchase != nil && p.FirstPurchase.After(info.PrevStart) {
		p.Segment = model.SegmentNew
	}
}
