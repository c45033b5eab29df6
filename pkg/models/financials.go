package models

import (
	"time"
)

// Statement types as stored in the database.
const (
	StatementIncome   = "income_statement"
	StatementBalance  = "balance_sheet"
	StatementCashFlow = "cash_flow"
)

// Period types.
const (
	PeriodAnnual    = "annual"
	PeriodQuarterly = "quarterly"
)

// LineItem is a single named value inside a financial statement.
// Derived metrics (ratios, growth rates) are stored as ordinary line items
// with descriptive names like "Return on Equity (ROE) (%)".
type LineItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// StandardizedStatement is the normalized form of one financial statement
// for one reporting period. Produced once by ingestion and treated as
// immutable afterwards.
//
// LineItems preserve the original source order. Alias resolution is
// first-match-wins over that order, so the order is semantically meaningful.
type StandardizedStatement struct {
	StatementType string             `json:"statement_type"`
	PeriodType    string             `json:"period_type"`
	PeriodDate    time.Time          `json:"period_date"`
	FiscalYear    int                `json:"fiscal_year"`
	FiscalQuarter int                `json:"fiscal_quarter,omitempty"` // 0 = annual / unknown
	LineItems     []LineItem         `json:"line_items"`
	RawData       map[string]float64 `json:"raw_data,omitempty"`
}

// PeriodKey groups statements of different types that belong to the same
// reporting period.
type PeriodKey struct {
	FiscalYear int
	PeriodType string
	PeriodDate time.Time
}

// Key returns the PeriodKey for this statement.
func (s *StandardizedStatement) Key() PeriodKey {
	return PeriodKey{
		FiscalYear: s.FiscalYear,
		PeriodType: s.PeriodType,
		PeriodDate: s.PeriodDate,
	}
}
