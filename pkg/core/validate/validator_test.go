package validate

import (
	"strings"
	"testing"
	"time"

	"finrag/pkg/models"
)

func annualStmt(stype string, year int, items ...models.LineItem) models.StandardizedStatement {
	return models.StandardizedStatement{
		StatementType: stype,
		PeriodType:    models.PeriodAnnual,
		PeriodDate:    time.Date(year, 3, 31, 0, 0, 0, 0, time.UTC),
		FiscalYear:    year,
		LineItems:     items,
	}
}

func hasWarningContaining(warnings []string, substr string) bool {
	for _, w := range warnings {
		if strings.Contains(w, substr) {
			return true
		}
	}
	return false
}

func TestEmptyStatementIsInvalid(t *testing.T) {
	s := annualStmt(models.StatementIncome, 2023)
	result := ValidateStatement(&s)

	if result.IsValid {
		t.Error("statement without line items must be invalid")
	}
	if !hasWarningContaining(result.Warnings, "No line items") {
		t.Errorf("expected a no-line-items warning, got %v", result.Warnings)
	}
}

func TestMissingRequiredItemsWarnOnly(t *testing.T) {
	// An income statement without any profit metric stays valid but warns.
	s := annualStmt(models.StatementIncome, 2023,
		models.LineItem{Name: "Total Revenue", Value: 1000},
		models.LineItem{Name: "Cost of Goods Sold", Value: 600},
		models.LineItem{Name: "Gross Profit", Value: 400},
		models.LineItem{Name: "SG&A", Value: 100},
		models.LineItem{Name: "Interest Expense", Value: 20},
	)

	result := ValidateStatement(&s)
	if !result.IsValid {
		t.Error("missing recommended items must not invalidate a statement")
	}
	if !hasWarningContaining(result.Warnings, "Missing recommended items") {
		t.Errorf("expected a missing-items warning, got %v", result.Warnings)
	}
}

func TestFewLineItemsWarns(t *testing.T) {
	s := annualStmt(models.StatementIncome, 2023,
		models.LineItem{Name: "Total Revenue", Value: 1000},
		models.LineItem{Name: "Net Income", Value: 100},
	)
	result := ValidateStatement(&s)
	if !hasWarningContaining(result.Warnings, "expected at least 5") {
		t.Errorf("expected a sparse-statement warning, got %v", result.Warnings)
	}
}

func TestAllZeroValuesWarns(t *testing.T) {
	s := annualStmt(models.StatementBalance, 2023,
		models.LineItem{Name: "Total Assets", Value: 0},
		models.LineItem{Name: "Total Liabilities", Value: 0},
		models.LineItem{Name: "Total Equity", Value: 0},
		models.LineItem{Name: "Cash", Value: 0},
		models.LineItem{Name: "Inventory", Value: 0},
	)
	result := ValidateStatement(&s)
	if !hasWarningContaining(result.Warnings, "All line items have zero values") {
		t.Errorf("expected an all-zero warning, got %v", result.Warnings)
	}
}

func TestMostlyZeroValuesWarns(t *testing.T) {
	// 1 of 10 non-zero is below the 30% threshold.
	items := make([]models.LineItem, 10)
	for i := range items {
		items[i] = models.LineItem{Name: "Item", Value: 0}
	}
	items[0] = models.LineItem{Name: "Total Assets", Value: 100}

	s := annualStmt(models.StatementBalance, 2023, items...)
	result := ValidateStatement(&s)
	if !hasWarningContaining(result.Warnings, "High percentage of zero values") {
		t.Errorf("expected a zero-heavy warning, got %v", result.Warnings)
	}
}

func TestCompanySummaryAggregation(t *testing.T) {
	statements := []models.StandardizedStatement{
		annualStmt(models.StatementIncome, 2022,
			models.LineItem{Name: "Total Revenue", Value: 900},
			models.LineItem{Name: "Net Income", Value: 90},
			models.LineItem{Name: "Operating Income", Value: 150},
			models.LineItem{Name: "Gross Profit", Value: 400},
			models.LineItem{Name: "Tax", Value: 30},
		),
		annualStmt(models.StatementIncome, 2023,
			models.LineItem{Name: "Total Revenue", Value: 1000},
			models.LineItem{Name: "Net Income", Value: 100},
			models.LineItem{Name: "Operating Income", Value: 170},
			models.LineItem{Name: "Gross Profit", Value: 450},
			models.LineItem{Name: "Tax", Value: 35},
		),
		annualStmt(models.StatementBalance, 2023), // invalid: empty
	}

	summary := ValidateCompanyData("TCS.NS", statements)

	if summary.TotalStatements != 3 {
		t.Errorf("expected 3 total statements, got %d", summary.TotalStatements)
	}
	if summary.ValidStatements != 2 {
		t.Errorf("expected 2 valid statements, got %d", summary.ValidStatements)
	}
	if b := summary.StatementsByType[models.StatementIncome]; b == nil || b.Annual != 2 {
		t.Errorf("expected 2 annual income statements in bucket, got %+v", b)
	}
	if summary.DateRange == nil {
		t.Fatal("expected a date range")
	}
	if summary.DateRange.Earliest.Year() != 2022 || summary.DateRange.Latest.Year() != 2023 {
		t.Errorf("unexpected date range: %+v", summary.DateRange)
	}
	// Cash flow is entirely absent.
	if !hasWarningContaining(summary.Warnings, "No cash_flow data found") {
		t.Errorf("expected a missing cash_flow warning, got %v", summary.Warnings)
	}
}

func TestCompanySummarySingleYearWarns(t *testing.T) {
	statements := []models.StandardizedStatement{
		annualStmt(models.StatementIncome, 2023,
			models.LineItem{Name: "Total Revenue", Value: 1000},
			models.LineItem{Name: "Net Income", Value: 100},
			models.LineItem{Name: "Operating Income", Value: 170},
			models.LineItem{Name: "Gross Profit", Value: 450},
			models.LineItem{Name: "Tax", Value: 35},
		),
	}
	summary := ValidateCompanyData("ACME", statements)
	if !hasWarningContaining(summary.Warnings, "only 1 year(s) available") {
		t.Errorf("expected a limited-history warning, got %v", summary.Warnings)
	}
}

func TestCompanySummaryNoStatements(t *testing.T) {
	summary := ValidateCompanyData("ACME", nil)
	if !hasWarningContaining(summary.Warnings, "No financial statements found") {
		t.Errorf("expected a no-data warning, got %v", summary.Warnings)
	}
}

func TestDetailWarningsTruncatedAtFive(t *testing.T) {
	// Six empty statements produce six detail warnings; only five surface.
	var statements []models.StandardizedStatement
	for i := 0; i < 6; i++ {
		statements = append(statements, annualStmt(models.StatementIncome, 2020+i))
	}

	summary := ValidateCompanyData("ACME", statements)
	if len(summary.DetailWarnings) != 5 {
		t.Errorf("expected 5 surfaced detail warnings, got %d", len(summary.DetailWarnings))
	}
	if !hasWarningContaining(summary.Warnings, "...and 1 more warnings") {
		t.Errorf("expected a truncation note, got %v", summary.Warnings)
	}
}
