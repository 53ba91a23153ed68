package scoring

import (
	"testing"
	"time"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
	"github.com/maralthesage/RFM-Pipeline/internal/period"
)

func TestTableLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		combined, recency int
		want              string
	}{
		{5, 10, model.SegmentChampions},
		{4, 9, model.SegmentChampions},
		{4, 8, model.SegmentLoyal},
		{5, 5, model.SegmentLoyal},
		{5, 3, model.SegmentCantLose},
		{2, 10, model.SegmentPotentialLoyal},
		{3, 7, model.SegmentPotentialLoyal},
		{3, 6, model.SegmentNeedAttention},
		{3, 5, model.SegmentNeedAttention},
		{3, 2, model.SegmentAtRisk},
		{4, 4, model.SegmentAtRisk},
		{1, 10, model.SegmentReactivated},
		{1, 9, model.SegmentReactivated},
		{1, 7, model.SegmentPromising},
		{1, 8, model.SegmentPromising},
		{1, 5, model.SegmentChurning},
		{2, 6, model.SegmentChurning},
		{2, 1, model.SegmentSleeping},
		{1, 4, model.SegmentLost},
		{1, 1, model.SegmentLost},
		{3, 0, model.SegmentUnclassified},
		{2, 0, model.SegmentUnclassified},
		{5, 0, model.SegmentUnclassified},
	}
	for _, tt := range tests {
		if got := TableLabel(tt.combined, tt.recency); got != tt.want {
			t.Fatalf("TableLabel(%d,%d) want=%q got=%q", tt.combined, tt.recency, tt.want, got)
		}
	}
}

func TestTableLabel_ClosedVocabulary(t *testing.T) {
	t.Parallel()

	for combined := 1; combined <= 5; combined++ {
		for recency := 0; recency <= 10; recency++ {
			label := TableLabel(combined, recency)
			if !model.IsValidSegment(label) {
				t.Fatalf("TableLabel(%d,%d) = %q outside vocabulary", combined, recency, label)
			}
		}
	}
}

func classify(p *model.CustomerProfile) string {
	reference := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	info, err := period.ForCountry(reference, "DE")
	if err != nil {
		panic(err)
	}
	Classify(p, info, reference)
	return p.Segment
}

func TestClassify_ZeroRevenueIsProspect(t *testing.T) {
	t.Parallel()

	last := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	first := time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC)
	p := &model.CustomerProfile{
		FirstPurchase: &first,
		LastPurchase:  &last,
		CombinedScore: 5,
		RecencyScore:  10,
		Revenue:       0,
	}
	if got := classify(p); got != model.SegmentProspect {
		t.Fatalf("want=%q got=%q", model.SegmentProspect, got)
	}
}

func TestClassify_FreshRegistrationIsProspect(t *testing.T) {
	t.Parallel()

	// Registered two months before the reference date, no purchases:
	// Interessenten regardless of any score.
	reg := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	p := &model.CustomerProfile{
		RegisteredAt:  &reg,
		CombinedScore: 4,
		RecencyScore:  9,
		Revenue:       120, // scores are meaningless without purchases, override still applies
	}
	if got := classify(p); got != model.SegmentProspect {
		t.Fatalf("want=%q got=%q", model.SegmentProspect, got)
	}
}

func TestClassify_StaleRegistrationZeroRevenueIsProspect(t *testing.T) {
	t.Parallel()

	reg := time.Date(2019, time.January, 10, 0, 0, 0, 0, time.UTC)
	p := &model.CustomerProfile{
		RegisteredAt: &reg,
		Revenue:      0,
	}
	if got := classify(p); got != model.SegmentProspect {
		t.Fatalf("want=%q got=%q", model.SegmentProspect, got)
	}
}

func TestClassify_FirstPurchaseInCurrentPeriodIsNeukunde(t *testing.T) {
	t.Parallel()

	// Reference 2026-09-01 (H2): previous half-year starts 2026-01-01.
	// A first purchase after that start overrides the table result.
	first := time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC)
	p := &model.CustomerProfile{
		FirstPurchase: &first,
		LastPurchase:  &first,
		CombinedScore: 1,
		RecencyScore:  9,
		Revenue:       80,
	}
	if got := classify(p); got != model.SegmentNew {
		t.Fatalf("want=%q got=%q", model.SegmentNew, got)
	}
}

func TestClassify_NeukundeWinsOverZeroRevenue(t *testing.T) {
	t.Parallel()

	// Overrides apply in priority order with last writer wins: the
	// Neukunden rule is last.
	first := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	p := &model.CustomerProfile{
		FirstPurchase: &first,
		LastPurchase:  &first,
		Revenue:       0,
	}
	if got := classify(p); got != model.SegmentNew {
		t.Fatalf("want=%q got=%q", model.SegmentNew, got)
	}
}

func TestClassify_EstablishedCustomerUsesTable(t *testing.T) {
	t.Parallel()

	first := time.Date(2019, time.October, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	p := &model.CustomerProfile{
		FirstPurchase: &first,
		LastPurchase:  &last,
		CombinedScore: 5,
		RecencyScore:  10,
		Revenue:       900,
	}
	if got := classify(p); got != model.SegmentChampions {
		t.Fatalf("want=%q got=%q", model.SegmentChampions, got)
	}
}
