// Package exporter renders scored runs as xlsx workbooks for the
// marketing teams.
package exporter

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/maralthesage/RFM-Pipeline/internal/model"
	"github.com/maralthesage/RFM-Pipeline/internal/pipeline"
)

const (
	dateFormat = "yyyy-mm-dd"
	euroFormat = "#,##0.00 [$€-1];[Red]-#,##0.00 [$€-1]"
)

var segmentHeader = []interface{}{
	"Kundennummer", "Anrede", "Altersgruppe", "PLZ",
	"Werbeweg", "Kanal", "Newsletter",
	"Anlagedatum", "Erstkauf", "Letzter Kauf",
	"Bestellungen", "Umsatz",
	"Bestellungen 3-5 Jahre", "Umsatz 3-5 Jahre",
	"Bestellungen 2 Jahre", "Umsatz 2 Jahre",
	"Bestellungen gewichtet", "Umsatz gewichtet",
	"Ostern", "Weihnachten",
	"R", "F", "M", "RFM",
	"Segment", "Alt Kundengruppe",
}

// WriteSegments builds the per-segment workbook: one sheet per segment
// label in canonical order, skipping segments with no customers.
func WriteSegments(result *pipeline.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	bySegment := make(map[string][]*model.CustomerProfile)
	for _, p := range result.Profiles {
		bySegment[p.Segment] = append(bySegment[p.Segment], p)
	}

	dateStyle, euroStyle, headerStyle, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	for _, segment := range model.SegmentOrder {
		profiles := bySegment[segment]
		if len(profiles) == 0 {
			continue
		}
		if _, err := f.NewSheet(segment); err != nil {
			return nil, fmt.Errorf("create sheet %q: %w", segment, err)
		}
		if err := fillSegmentSheet(f, segment, profiles, dateStyle, euroStyle, headerStyle); err != nil {
			return nil, fmt.Errorf("fill sheet %q: %w", segment, err)
		}
	}

	if err := f.DeleteSheet(f.GetSheetName(0)); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	f.SetActiveSheet(0)
	return f, nil
}

func fillSegmentSheet(f *excelize.File, sheet string, profiles []*model.CustomerProfile, dateStyle, euroStyle, headerStyle int) error {
	if err := f.SetColWidth(sheet, "A", "Z", 22); err != nil {
		return err
	}
	if err := f.SetColStyle(sheet, "H:J", dateStyle); err != nil {
		return err
	}
	for _, col := range []string{"L", "N", "P", "R"} {
		if err := f.SetColStyle(sheet, col, euroStyle); err != nil {
			return err
		}
	}
	// Weighted figures feed the reporting formulas only.
	if err := f.SetColVisible(sheet, "Q:R", false); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &segmentHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return err
	}

	for i, p := range profiles {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			p.CustomerID, p.Salutation, p.AgeGroup, p.PostalCode,
			p.Channel, p.ChannelTag, p.NewsletterType,
			cellDate(p.RegisteredAt), cellDate(p.FirstPurchase), cellDate(p.LastPurchase),
			p.OrderCount, p.Revenue,
			p.OrdersOld, p.RevenueOld,
			p.OrdersRecent, p.RevenueRecent,
			p.WeightedOrders, p.WeightedRevenue,
			jaNein(p.SeasonalEaster), jaNein(p.SeasonalChristmas),
			p.RecencyScore, p.FrequencyScore, p.MonetaryScore, p.CombinedScore,
			p.Segment, p.PriorGroup,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

const (
	sheetTotals   = "RFM Gesamt Analytik"
	sheetCrossTab = "RFM - Alt Kundengruppe Analytik"
)

// WriteSummary builds the analytics workbook: segment totals on the
// first sheet, the segment by prior-group cross-tab on the second.
func WriteSummary(result *pipeline.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}

	if _, err := f.NewSheet(sheetTotals); err != nil {
		return nil, fmt.Errorf("create totals sheet: %w", err)
	}
	if err := f.SetColWidth(sheetTotals, "A", "C", 28); err != nil {
		return nil, err
	}
	header := []interface{}{"Segment", "Kunden", "Newsletter-Abonnenten"}
	if err := f.SetSheetRow(sheetTotals, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheetTotals, 1, 1, headerStyle); err != nil {
		return nil, err
	}
	for i, r := range result.Totals {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{r.Segment, r.Customers, r.NewsletterSubscribers}
		if err := f.SetSheetRow(sheetTotals, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(sheetCrossTab); err != nil {
		return nil, fmt.Errorf("create cross-tab sheet: %w", err)
	}
	if err := f.SetColWidth(sheetCrossTab, "A", "D", 28); err != nil {
		return nil, err
	}
	crossHeader := []interface{}{"Segment", "Alt Kundengruppe", "Kunden", "Newsletter-Abonnenten"}
	if err := f.SetSheetRow(sheetCrossTab, "A1", &crossHeader); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(sheetCrossTab, 1, 1, headerStyle); err != nil {
		return nil, err
	}
	for i, r := range result.Summary {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{r.Segment, r.PriorGroup, r.Customers, r.NewsletterSubscribers}
		if err := f.SetSheetRow(sheetCrossTab, cell, &row); err != nil {
			return nil, err
		}
	}

	if err := f.DeleteSheet(f.GetSheetName(0)); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}
	f.SetActiveSheet(0)
	return f, nil
}

func newStyles(f *excelize.File) (dateStyle, euroStyle, headerStyle int, err error) {
	dateFmt := dateFormat
	dateStyle, err = f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("date style: %w", err)
	}
	euroFmt := euroFormat
	euroStyle, err = f.NewStyle(&excelize.Style{CustomNumFmt: &euroFmt})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("euro style: %w", err)
	}
	headerStyle, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return 0, 0, 0, fmt.Errorf("header style: %w", err)
	}
	return dateStyle, euroStyle, headerStyle, nil
}

func cellDate(t *time.Time) interface{} {
	if t == nil {
		return ""
	}
	return *t
}

func jaNein(b bool) string {
	if b {
		return "Ja"
	}
	return "Nein"
}
