// Package validate runs advisory completeness and quality checks over
// normalized statements. Its output is attached to the ingestion response
// for observability; it never blocks or alters ingestion.
package validate

import (
	"fmt"
	"log"
	"strings"
	"time"

	"finrag/pkg/models"
)

// Required-item variants per statement type. A statement only warns when no
// variant of a required item matches any of its line-item names.
var (
	requiredIncomeItems = []string{
		"Total Revenue", "Revenue", "Net Sales",
		"Net Income", "Net Profit", "PAT",
	}
	requiredBalanceItems = []string{
		"Total Assets",
		"Total Liabilities",
		"Total Equity", "Stockholders Equity",
	}
	requiredCashFlowItems = []string{
		"Operating Cash Flow", "Free Cash Flow", "Cash From Operating Activities",
	}
)

const minExpectedLineItems = 5

// StatementResult is the validation outcome for a single statement.
type StatementResult struct {
	StatementType string    `json:"statement_type"`
	PeriodType    string    `json:"period_type"`
	PeriodDate    time.Time `json:"period_date"`
	IsValid       bool      `json:"is_valid"`
	Warnings      []string  `json:"warnings"`
	LineItemCount int       `json:"line_item_count"`
}

// TypeBucket counts statements of one type by period granularity.
type TypeBucket struct {
	Count     int `json:"count"`
	Annual    int `json:"annual"`
	Quarterly int `json:"quarterly"`
}

// DateRange spans the earliest and latest period dates seen for a company.
type DateRange struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// CompanySummary aggregates validation across all of a company's statements.
type CompanySummary struct {
	Ticker           string                 `json:"ticker"`
	TotalStatements  int                    `json:"total_statements"`
	ValidStatements  int                    `json:"valid_statements"`
	Warnings         []string               `json:"warnings"`
	StatementsByType map[string]*TypeBucket `json:"statements_by_type"`
	DateRange        *DateRange             `json:"date_range,omitempty"`
	DetailWarnings   []string               `json:"detail_warnings,omitempty"`
}

// ValidateStatement checks one statement. Only a statement with zero line
// items is invalid; everything else is at most a warning.
func ValidateStatement(s *models.StandardizedStatement) StatementResult {
	result := StatementResult{
		StatementType: s.StatementType,
		PeriodType:    s.PeriodType,
		PeriodDate:    s.PeriodDate,
		IsValid:       true,
		LineItemCount: len(s.LineItems),
	}

	if len(s.LineItems) == 0 {
		result.IsValid = false
		result.Warnings = append(result.Warnings, "No line items found in statement")
		return result
	}

	names := make([]string, len(s.LineItems))
	for i, item := range s.LineItems {
		names[i] = strings.ToLower(item.Name)
	}

	var required []string
	switch s.StatementType {
	case models.StatementIncome:
		required = requiredIncomeItems
	case models.StatementBalance:
		required = requiredBalanceItems
	case models.StatementCashFlow:
		required = requiredCashFlowItems
	default:
		result.Warnings = append(result.Warnings, fmt.Sprintf("Unknown statement type: %s", s.StatementType))
		return result
	}

	var missing []string
	for _, want := range required {
		found := false
		lower := strings.ToLower(want)
		for _, name := range names {
			if strings.Contains(name, lower) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	if len(missing) > 0 {
		msg := fmt.Sprintf("Missing recommended items: %s", strings.Join(firstN(missing, 3), ", "))
		if len(missing) > 3 {
			msg += fmt.Sprintf(" and %d more", len(missing)-3)
		}
		result.Warnings = append(result.Warnings, msg)
	}

	if len(s.LineItems) < minExpectedLineItems {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Only %d line items found, expected at least %d", len(s.LineItems), minExpectedLineItems))
	}

	nonZero := 0
	for _, item := range s.LineItems {
		if item.Value != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		result.Warnings = append(result.Warnings, "All line items have zero values")
	} else if float64(nonZero) < float64(len(s.LineItems))*0.3 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"High percentage of zero values: %d/%d", nonZero, len(s.LineItems)))
	}

	return result
}

// ValidateCompanyData validates all statements for one ticker and aggregates
// the results. It never returns an error; a company with no data at all is
// just a summary carrying a warning.
func ValidateCompanyData(ticker string, statements []models.StandardizedStatement) CompanySummary {
	summary := CompanySummary{
		Ticker:           ticker,
		TotalStatements:  len(statements),
		StatementsByType: make(map[string]*TypeBucket),
	}

	if len(statements) == 0 {
		summary.Warnings = append(summary.Warnings, "No financial statements found")
		return summary
	}

	var allDetails []string
	for i := range statements {
		s := &statements[i]
		result := ValidateStatement(s)
		if result.IsValid {
			summary.ValidStatements++
		}

		bucket, ok := summary.StatementsByType[s.StatementType]
		if !ok {
			bucket = &TypeBucket{}
			summary.StatementsByType[s.StatementType] = bucket
		}
		bucket.Count++
		if s.PeriodType == models.PeriodAnnual {
			bucket.Annual++
		} else {
			bucket.Quarterly++
		}

		for _, w := range result.Warnings {
			allDetails = append(allDetails, fmt.Sprintf(
				"%s (%s): %s", s.StatementType, s.PeriodDate.Format("2006-01-02"), w))
		}
	}

	earliest, latest := statements[0].PeriodDate, statements[0].PeriodDate
	for _, s := range statements[1:] {
		if s.PeriodDate.Before(earliest) {
			earliest = s.PeriodDate
		}
		if s.PeriodDate.After(latest) {
			latest = s.PeriodDate
		}
	}
	summary.DateRange = &DateRange{Earliest: earliest, Latest: latest}

	for _, stype := range []string{models.StatementIncome, models.StatementBalance, models.StatementCashFlow} {
		if _, ok := summary.StatementsByType[stype]; !ok {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("No %s data found", stype))
		}
	}

	summary.Warnings = append(summary.Warnings, articulationWarnings(statements)...)

	years := make(map[int]struct{})
	for _, s := range statements {
		years[s.FiscalYear] = struct{}{}
	}
	if len(years) < 2 {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf(
			"Limited historical data: only %d year(s) available", len(years)))
	}

	if len(allDetails) > 0 {
		summary.DetailWarnings = firstN(allDetails, 5)
		if len(allDetails) > 5 {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf(
				"...and %d more warnings", len(allDetails)-5))
		}
	}

	log.Printf("[VALIDATE] %s: %d/%d valid statements, %d warnings",
		ticker, summary.ValidStatements, summary.TotalStatements, len(summary.Warnings))

	return summary
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
