package validate

import (
	"testing"
	"time"

	"finrag/pkg/models"
)

func balanceSheet(items []models.LineItem) *models.StandardizedStatement {
	return &models.StandardizedStatement{
		StatementType: models.StatementBalance,
		PeriodType:    models.PeriodAnnual,
		PeriodDate:    time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC),
		FiscalYear:    2023,
		LineItems:     items,
	}
}

func TestCheckArticulationBalanced(t *testing.T) {
	s := balanceSheet([]models.LineItem{
		{Name: "Total Assets", Value: 2000},
		{Name: "Total Liabilities", Value: 500},
		{Name: "Total Equity", Value: 1500},
	})

	result := CheckArticulation(s)
	if !result.Checked {
		t.Fatal("identity not checked despite all totals present")
	}
	if !result.IsBalanced {
		t.Errorf("balanced sheet reported unbalanced, difference = %v", result.Difference)
	}
}

func TestCheckArticulationToleratesRoundingNoise(t *testing.T) {
	// 0.5% off, inside the 1% tolerance.
	s := balanceSheet([]models.LineItem{
		{Name: "Total Assets", Value: 2000},
		{Name: "Total Liabilities", Value: 500},
		{Name: "Total Equity", Value: 1490},
	})

	if result := CheckArticulation(s); !result.IsBalanced {
		t.Errorf("rounding-level mismatch flagged, difference = %v", result.Difference)
	}
}

func TestCheckArticulationUnbalanced(t *testing.T) {
	s := balanceSheet([]models.LineItem{
		{Name: "Total Assets", Value: 2000},
		{Name: "Total Liabilities", Value: 500},
		{Name: "Total Equity", Value: 1000},
	})

	result := CheckArticulation(s)
	if !result.Checked || result.IsBalanced {
		t.Errorf("unbalanced sheet not flagged: %+v", result)
	}
	if result.Difference != 500 {
		t.Errorf("Difference = %v, want 500", result.Difference)
	}
}

func TestCheckArticulationSkipsIncompleteSheets(t *testing.T) {
	s := balanceSheet([]models.LineItem{
		{Name: "Total Assets", Value: 2000},
	})
	if result := CheckArticulation(s); result.Checked {
		t.Error("incomplete balance sheet must be unchecked, not failed")
	}

	income := &models.StandardizedStatement{StatementType: models.StatementIncome}
	if result := CheckArticulation(income); result.Checked {
		t.Error("non balance-sheet statement must be unchecked")
	}
}

func TestValidateCompanyDataReportsArticulationWarning(t *testing.T) {
	statements := []models.StandardizedStatement{*balanceSheet([]models.LineItem{
		{Name: "Total Assets", Value: 2000},
		{Name: "Total Liabilities", Value: 500},
		{Name: "Total Equity", Value: 1000},
	})}

	summary := ValidateCompanyData("ACME", statements)
	found := false
	for _, w := range summary.Warnings {
		if w == "balance sheet for 2023-03-31 does not articulate: assets 2000.00 vs liabilities+equity 1500.00" {
			found = true
		}
	}
	if !found {
		t.Errorf("articulation warning missing from: %v", summary.Warnings)
	}
}
