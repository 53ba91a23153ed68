package exporter

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
	"github.com/maralthesage/RFM-Pipeline/internal/pipeline"
)

func reopen(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	out, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	t.Cleanup(func() { _ = out.Close() })
	return out
}

func TestWriteSegments(t *testing.T) {
	t.Parallel()

	last := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
	result := &pipeline.Result{
		Profiles: []*model.CustomerProfile{
			{CustomerID: "0000004711", Segment: model.SegmentChampions, LastPurchase: &last, Revenue: 512.5, OrderCount: 7},
			{CustomerID: "0000000012", Segment: model.SegmentProspect},
		},
	}

	f, err := WriteSegments(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := reopen(t, f)

	sheets := out.GetSheetList()
	if len(sheets) != 2 {
		t.Fatalf("sheets want=2 got=%v", sheets)
	}
	// Canonical order: Champions before Interessenten.
	if sheets[0] != model.SegmentChampions || sheets[1] != model.SegmentProspect {
		t.Fatalf("sheet order got=%v", sheets)
	}

	id, err := out.GetCellValue(model.SegmentChampions, "A2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if id != "0000004711" {
		t.Fatalf("customer id cell got=%q", id)
	}
	date, err := out.GetCellValue(model.SegmentChampions, "J2")
	if err != nil {
		t.Fatalf("read date cell: %v", err)
	}
	if date != "2026-05-02" {
		t.Fatalf("last purchase cell got=%q", date)
	}
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()

	result := &pipeline.Result{
		Summary: []pipeline.SummaryRow{
			{Segment: model.SegmentChampions, PriorGroup: "Neukunden-1", Customers: 3, NewsletterSubscribers: 2},
		},
		Totals: []pipeline.TotalRow{
			{Segment: model.SegmentChampions, Customers: 3, NewsletterSubscribers: 2},
		},
	}

	f, err := WriteSummary(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := reopen(t, f)

	sheets := out.GetSheetList()
	if len(sheets) != 2 || sheets[0] != sheetTotals || sheets[1] != sheetCrossTab {
		t.Fatalf("sheets got=%v", sheets)
	}
	prior, err := out.GetCellValue(sheetCrossTab, "B2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if prior != "Neukunden-1" {
		t.Fatalf("prior group cell got=%q", prior)
	}
}
