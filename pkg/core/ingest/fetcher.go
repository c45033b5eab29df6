// Package ingest pulls raw financial statements from upstream sources,
// normalizes them, derives ratios and growth rates, and lands everything in
// the structured and semantic stores.
package ingest

import "context"

// CompanyInfo is the descriptive metadata an upstream source knows about a
// company.
type CompanyInfo struct {
	Name     string `json:"name"`
	Sector   string `json:"sector"`
	Industry string `json:"industry"`
}

// RawLineItem is one named figure as reported by the source. A nil value
// means the source reported the item but had no number for it; the
// normalizer drops those.
type RawLineItem struct {
	Name  string   `json:"name"`
	Value *float64 `json:"value"`
}

// RawStatement is one statement for one period exactly as fetched. Line
// items keep source order, which downstream alias resolution depends on.
type RawStatement struct {
	StatementType string        `json:"statement_type"`
	PeriodType    string        `json:"period_type"`
	PeriodDate    string        `json:"period_date"` // YYYY-MM-DD
	LineItems     []RawLineItem `json:"line_items"`
}

// RawFinancials is a complete fetch result for one ticker.
type RawFinancials struct {
	Info       CompanyInfo    `json:"info"`
	Statements []RawStatement `json:"statements"`
}

// Fetcher pulls raw financials for a ticker from some upstream source.
type Fetcher interface {
	FetchFinancials(ctx context.Context, ticker string) (*RawFinancials, error)
}
