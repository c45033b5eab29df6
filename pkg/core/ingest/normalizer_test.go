package ingest

import (
	"testing"

	"finrag/pkg/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestNormalizeAnnualStatement(t *testing.T) {
	raw := &RawFinancials{
		Statements: []RawStatement{{
			StatementType: models.StatementIncome,
			PeriodType:    models.PeriodAnnual,
			PeriodDate:    "2023-03-31",
			LineItems: []RawLineItem{
				{Name: "Total Revenue", Value: floatPtr(1000)},
				{Name: "Net Income", Value: floatPtr(200)},
			},
		}},
	}

	var n Normalizer
	got := n.Normalize(raw)
	if len(got) != 1 {
		t.Fatalf("got %d statements, want 1", len(got))
	}

	s := got[0]
	if s.FiscalYear != 2023 {
		t.Errorf("FiscalYear = %d, want 2023", s.FiscalYear)
	}
	if s.FiscalQuarter != 0 {
		t.Errorf("FiscalQuarter = %d for annual period, want 0", s.FiscalQuarter)
	}
	if len(s.LineItems) != 2 {
		t.Errorf("got %d line items, want 2", len(s.LineItems))
	}
	if s.RawData["Total Revenue"] != 1000 {
		t.Errorf("RawData[Total Revenue] = %v, want 1000", s.RawData["Total Revenue"])
	}
}

func TestNormalizeDerivesFiscalQuarter(t *testing.T) {
	tests := []struct {
		date    string
		quarter int
	}{
		{"2023-03-31", 1},
		{"2023-06-30", 2},
		{"2023-09-30", 3},
		{"2023-12-31", 4},
	}
	var n Normalizer
	for _, tt := range tests {
		raw := &RawFinancials{Statements: []RawStatement{{
			StatementType: models.StatementBalance,
			PeriodType:    models.PeriodQuarterly,
			PeriodDate:    tt.date,
			LineItems:     []RawLineItem{{Name: "Total Assets", Value: floatPtr(500)}},
		}}}
		got := n.Normalize(raw)
		if len(got) != 1 || got[0].FiscalQuarter != tt.quarter {
			t.Errorf("date %s: quarter = %d, want %d", tt.date, got[0].FiscalQuarter, tt.quarter)
		}
	}
}

func TestNormalizeSkipsNilValuesAndEmptyStatements(t *testing.T) {
	raw := &RawFinancials{
		Statements: []RawStatement{
			{
				StatementType: models.StatementIncome,
				PeriodType:    models.PeriodAnnual,
				PeriodDate:    "2023-03-31",
				LineItems: []RawLineItem{
					{Name: "Total Revenue", Value: floatPtr(1000)},
					{Name: "Pretax Income", Value: nil},
				},
			},
			{
				// Only nil values, must be dropped entirely.
				StatementType: models.StatementBalance,
				PeriodType:    models.PeriodAnnual,
				PeriodDate:    "2023-03-31",
				LineItems:     []RawLineItem{{Name: "Total Assets", Value: nil}},
			},
		},
	}

	var n Normalizer
	got := n.Normalize(raw)
	if len(got) != 1 {
		t.Fatalf("got %d statements, want 1", len(got))
	}
	if len(got[0].LineItems) != 1 || got[0].LineItems[0].Name != "Total Revenue" {
		t.Errorf("unexpected line items: %+v", got[0].LineItems)
	}
}

func TestNormalizeSkipsUnparseableDate(t *testing.T) {
	raw := &RawFinancials{Statements: []RawStatement{{
		StatementType: models.StatementIncome,
		PeriodType:    models.PeriodAnnual,
		PeriodDate:    "fiscal year end",
		LineItems:     []RawLineItem{{Name: "Total Revenue", Value: floatPtr(1000)}},
	}}}

	var n Normalizer
	if got := n.Normalize(raw); len(got) != 0 {
		t.Errorf("got %d statements from unparseable date, want 0", len(got))
	}
}

func TestNormalizePreservesLineItemOrder(t *testing.T) {
	raw := &RawFinancials{Statements: []RawStatement{{
		StatementType: models.StatementIncome,
		PeriodType:    models.PeriodAnnual,
		PeriodDate:    "2023-03-31",
		LineItems: []RawLineItem{
			{Name: "Revenue", Value: floatPtr(100)},
			{Name: "Total Revenue", Value: floatPtr(999)},
		},
	}}}

	var n Normalizer
	got := n.Normalize(raw)
	if got[0].LineItems[0].Name != "Revenue" || got[0].LineItems[1].Name != "Total Revenue" {
		t.Errorf("source order not preserved: %+v", got[0].LineItems)
	}
}
