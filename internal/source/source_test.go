package source

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// cp850 encodes a CSV fixture the way the upstream export does.
func cp850(t *testing.T, s string) *bytes.Reader {
	t.Helper()
	out, err := charmap.CodePage850.NewEncoder().String(s)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	return bytes.NewReader([]byte(out))
}

func TestReadCustomers(t *testing.T) {
	t.Parallel()

	csvData := "NUMMER;SYS_ANLAGE;QUELLE;GEBURT;PLZ;ANREDE\n" +
		"4711;2020-05-04;XX3925fb;1980-12-24;50667;2\n" +
		"12;;ZZZ999;;;\n" +
		";2020-01-01;;;;\n" // no id: skipped

	customers, err := ReadCustomers(cp850(t, csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("customers want=2 got=%d", len(customers))
	}

	c := customers[0]
	if c.CustomerID != "0000004711" {
		t.Fatalf("id not padded: %q", c.CustomerID)
	}
	if c.RegisteredAt == nil || !c.RegisteredAt.Equal(time.Date(2020, 5, 4, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("registered got=%v", c.RegisteredAt)
	}
	if c.BirthDate == nil || c.SalutationCode != "2" || c.PostalCode != "50667" {
		t.Fatalf("unexpected record: %+v", c)
	}

	// Missing dates are absent, not errors.
	if customers[1].RegisteredAt != nil || customers[1].BirthDate != nil {
		t.Fatalf("empty dates must stay nil: %+v", customers[1])
	}
}

func TestReadOrders(t *testing.T) {
	t.Parallel()

	csvData := "VERWEIS;AUFTRAG_NR;AUF_ANLAGE;BEST_WERT;MWST1;MWST2;MWST3\n" +
		"AB0000004711;A-100;2025-03-02;119,00;19,00;0;0\n" +
		"AB0000004711;A-101;not-a-date;50;0;0;0\n"

	orders, err := ReadOrders(cp850(t, csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders want=2 got=%d", len(orders))
	}

	o := orders[0]
	if o.CustomerID != "0000004711" {
		t.Fatalf("id from reference got=%q", o.CustomerID)
	}
	if o.GrossValue != 119 || o.Tax1 != 19 {
		t.Fatalf("amounts got gross=%v tax1=%v", o.GrossValue, o.Tax1)
	}
	if o.NetRevenue() != 100 {
		t.Fatalf("net revenue want=100 got=%v", o.NetRevenue())
	}
	// Unparseable date: nil, row still present.
	if orders[1].OrderDate != nil {
		t.Fatalf("unparseable date must be nil, got %v", orders[1].OrderDate)
	}
}

func TestReadCustomers_Umlauts(t *testing.T) {
	t.Parallel()

	csvData := "NUMMER;SYS_ANLAGE;QUELLE;GEBURT;PLZ;ANREDE\n" +
		"1;2020-01-01;XX3938;;Köln;1\n"
	customers, err := ReadCustomers(cp850(t, csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if customers[0].PostalCode != "Köln" {
		t.Fatalf("cp850 decoding broken: %q", customers[0].PostalCode)
	}
}

func TestReadNewsletterTypes(t *testing.T) {
	t.Parallel()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]interface{}{"NUMMER", "NL_TYPE"})
	_ = f.SetSheetRow(sheet, "A2", &[]interface{}{"4711", "WEEKLY"})
	_ = f.SetSheetRow(sheet, "A3", &[]interface{}{"12", ""})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	types, err := ReadNewsletterTypes(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if types["0000004711"] != "WEEKLY" {
		t.Fatalf("newsletter type got=%q", types["0000004711"])
	}
	if _, ok := types["0000000012"]; !ok {
		t.Fatalf("empty type row must still be present")
	}
}

func TestReadFirstPurchases(t *testing.T) {
	t.Parallel()

	csvData := "NUMMER;ERSTKAUF\n" +
		"4711;2019-10-01\n" +
		"12;\n" + // never purchased: absent from the map
		"4711;2025-01-01\n" // duplicate id: first row wins

	first, err := ReadFirstPurchases(cp850(t, csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("entries want=1 got=%d", len(first))
	}
	if got := first["0000004711"]; !got.Equal(time.Date(2019, 10, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("first purchase got=%v", got)
	}
}

func TestReadLegacyGroups(t *testing.T) {
	t.Parallel()

	csvData := "NUMMER;Z51;Z52\n" +
		"4711;K1;K2\n" +
		"12;;K3\n"

	groups, err := ReadLegacyGroups(cp850(t, csvData))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("records want=2 got=%d", len(groups))
	}
	if groups[0].CodesByPeriod[51] != "K1" || groups[0].CodesByPeriod[52] != "K2" {
		t.Fatalf("period codes got=%v", groups[0].CodesByPeriod)
	}
	if _, ok := groups[1].CodesByPeriod[51]; ok {
		t.Fatalf("empty code must be absent")
	}
}
