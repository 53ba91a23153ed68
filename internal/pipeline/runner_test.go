package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
	"github.com/maralthesage/RFM-Pipeline/internal/period"
)

var reference = time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestRun_UnsupportedCountry(t *testing.T) {
	t.Parallel()

	_, err := Run(Input{}, Options{Reference: reference, Country: "US"})
	if !errors.Is(err, period.ErrUnsupportedCountry) {
		t.Fatalf("want ErrUnsupportedCountry, got %v", err)
	}
}

func TestRun_FullPass(t *testing.T) {
	t.Parallel()

	customers := []model.RawCustomerRecord{
		{CustomerID: "1", RegisteredAt: date(2018, time.April, 1), SourceCode: "XX3925fb", NewsletterType: "WEEKLY"},
		{CustomerID: "2", RegisteredAt: date(2026, time.July, 20), SourceCode: "ZZZ999"},
		{CustomerID: "3", RegisteredAt: date(2019, time.May, 5), SourceCode: "XX3014"},
	}
	orders := []model.OrderRecord{
		{CustomerID: "1", OrderID: "A-1", OrderDate: date(2025, time.December, 1), GrossValue: 250},
		{CustomerID: "1", OrderID: "A-2", OrderDate: date(2026, time.August, 10), GrossValue: 400},
		{CustomerID: "3", OrderID: "B-1", OrderDate: date(2026, time.February, 2), GrossValue: 99},
	}
	res, err := Run(Input{
		Customers:   customers,
		Orders:      orders,
		PriorGroups: map[string]string{"0000000001": "Champions"},
	}, Options{Reference: reference, Country: "DE", Workers: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.PeriodNumber != 52 { // H2 2026 for DE
		t.Fatalf("period number want=52 got=%d", res.PeriodNumber)
	}
	if len(res.Profiles) != 3 {
		t.Fatalf("profiles want=3 got=%d", len(res.Profiles))
	}

	byID := make(map[string]*model.CustomerProfile)
	for _, p := range res.Profiles {
		byID[p.CustomerID] = p
		if !model.IsValidSegment(p.Segment) {
			t.Fatalf("segment %q outside vocabulary", p.Segment)
		}
		if p.MonetaryScore < 1 || p.MonetaryScore > 5 {
			t.Fatalf("monetary score out of range: %d", p.MonetaryScore)
		}
		if p.FrequencyScore < 1 || p.FrequencyScore > 5 {
			t.Fatalf("frequency score out of range: %d", p.FrequencyScore)
		}
		if p.RecencyScore < 0 || p.RecencyScore > 10 {
			t.Fatalf("recency score out of range: %d", p.RecencyScore)
		}
		if p.Revenue < 0 {
			t.Fatalf("negative revenue: %v", p.Revenue)
		}
	}

	if byID["0000000001"].PriorGroup != "Champions" {
		t.Fatalf("prior group not attached: %+v", byID["0000000001"])
	}
	// Registered 2026-07, never purchased: prospect.
	if byID["0000000002"].Segment != model.SegmentProspect {
		t.Fatalf("customer 2 want prospect, got %q", byID["0000000002"].Segment)
	}
	// First purchase 2026-02 is after the previous half-year start
	// (2026-01-01): Neukunde.
	if byID["0000000003"].Segment != model.SegmentNew {
		t.Fatalf("customer 3 want Neukunden, got %q", byID["0000000003"].Segment)
	}
}

func TestRun_ProgressAndWorkerShardingAgree(t *testing.T) {
	t.Parallel()

	customers := make([]model.RawCustomerRecord, 0, 50)
	orders := make([]model.OrderRecord, 0, 50)
	for i := 0; i < 50; i++ {
		id := string(rune('A'+i%26)) + "x"
		customers = append(customers, model.RawCustomerRecord{CustomerID: id})
	}

	run := func(workers int) *Result {
		res, err := Run(Input{Customers: customers, Orders: orders},
			Options{Reference: reference, Country: "AT", Workers: workers})
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		return res
	}

	serial := run(1)
	parallel := run(8)
	if len(serial.Profiles) != len(parallel.Profiles) {
		t.Fatalf("profile counts differ: %d vs %d", len(serial.Profiles), len(parallel.Profiles))
	}
	for i := range serial.Profiles {
		if serial.Profiles[i].CustomerID != parallel.Profiles[i].CustomerID ||
			serial.Profiles[i].Segment != parallel.Profiles[i].Segment {
			t.Fatalf("sharded run diverges at %d: %+v vs %+v",
				i, serial.Profiles[i], parallel.Profiles[i])
		}
	}

	calls := 0
	last := 0
	_, err := Run(Input{Customers: customers}, Options{
		Reference: reference,
		Country:   "AT",
		Workers:   1,
		Progress: func(done, total int) {
			calls++
			last = done
			if total != len(serial.Profiles) {
				t.Fatalf("progress total want=%d got=%d", len(serial.Profiles), total)
			}
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != len(serial.Profiles) || last != len(serial.Profiles) {
		t.Fatalf("progress calls=%d last=%d", calls, last)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	profiles := []*model.CustomerProfile{
		{Segment: model.SegmentChampions, PriorGroup: "Treue Kunden", NewsletterType: "WEEKLY"},
		{Segment: model.SegmentChampions, PriorGroup: "Treue Kunden"},
		{Segment: model.SegmentChampions, PriorGroup: ""},
		{Segment: model.SegmentLost, PriorGroup: "Champions", NewsletterType: "MONTHLY"},
	}
	rows := Summarize(profiles)
	if len(rows) != 3 {
		t.Fatalf("rows want=3 got=%d", len(rows))
	}
	// Canonical segment order: Champions rows first, Lost last.
	if rows[0].Segment != model.SegmentChampions || rows[2].Segment != model.SegmentLost {
		t.Fatalf("unexpected order: %+v", rows)
	}
	for _, r := range rows {
		if r.Segment == model.SegmentChampions && r.PriorGroup == "Treue Kunden" {
			if r.Customers != 2 || r.NewsletterSubscribers != 1 {
				t.Fatalf("cross-tab counts wrong: %+v", r)
			}
		}
	}

	totals := Totals(rows)
	if len(totals) != 2 {
		t.Fatalf("totals want=2 got=%d", len(totals))
	}
	if totals[0].Segment != model.SegmentChampions || totals[0].Customers != 3 {
		t.Fatalf("champions total wrong: %+v", totals[0])
	}
	if totals[1].Customers != 1 || totals[1].NewsletterSubscribers != 1 {
		t.Fatalf("lost total wrong: %+v", totals[1])
	}
}
