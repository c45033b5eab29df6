package ingest

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"finrag/pkg/core/metrics"
	"finrag/pkg/core/store"
	"finrag/pkg/core/validate"
	"finrag/pkg/core/vector"
	"finrag/pkg/models"
)

// ErrNoData means the upstream source had nothing usable for the ticker.
var ErrNoData = errors.New("no financial data found")

// Result summarizes one completed ingestion.
type Result struct {
	Company        string                   `json:"company"`
	Statements     int                      `json:"statements"`
	DerivedMetrics int                      `json:"calculated_ratios"`
	Chunks         int                      `json:"chunks"`
	Validation     *validate.CompanySummary `json:"validation,omitempty"`
}

// CompanyStore is the slice of the database ingestion needs for company
// metadata.
type CompanyStore interface {
	Upsert(ctx context.Context, ticker, name, sector, industry string) (int, error)
}

// StatementStore persists the enriched statements transactionally.
type StatementStore interface {
	SaveAll(ctx context.Context, companyID int, source string, statements []models.StandardizedStatement) error
}

// Service runs the full ingestion pipeline for one company: fetch,
// normalize, derive metrics, persist, index.
type Service struct {
	fetcher    Fetcher
	companies  CompanyStore
	statements StatementStore
	vectors    vector.Store
	normalizer Normalizer
	source     string
}

// NewService wires the pipeline against the repository bundle. The source
// label is recorded on every persisted statement so provenance survives
// re-ingestion.
func NewService(fetcher Fetcher, repos *store.Repos, vectors vector.Store, source string) *Service {
	return &Service{
		fetcher:    fetcher,
		companies:  repos.Companies,
		statements: repos.Statements,
		vectors:    vectors,
		source:     source,
	}
}

// IngestCompany fetches, normalizes, enriches and persists one ticker.
//
// Derived metrics are appended to the statements before the transactional
// save, so either the full enriched set lands or nothing does. Vector
// indexing happens after the database commit; its failure is logged, not
// fatal, since the structured store already holds the truth.
func (s *Service) IngestCompany(ctx context.Context, ticker string) (*Result, error) {
	raw, err := s.fetcher.FetchFinancials(ctx, ticker)
	if err != nil {
		return nil, err
	}

	statements := s.normalizer.Normalize(raw)
	if len(statements) == 0 {
		return nil, fmt.Errorf("%w for ticker %s", ErrNoData, ticker)
	}

	derived := enrichWithDerivedMetrics(statements)
	log.Printf("[INGEST] %s: %d statements, %d derived metrics", ticker, len(statements), derived)

	companyID, err := s.companies.Upsert(ctx, ticker, raw.Info.Name, raw.Info.Sector, raw.Info.Industry)
	if err != nil {
		return nil, err
	}

	if err := s.statements.SaveAll(ctx, companyID, s.source, statements); err != nil {
		return nil, err
	}

	summary := validate.ValidateCompanyData(ticker, statements)

	chunks := 0
	if s.vectors != nil {
		texts, metadatas := buildChunks(ticker, raw.Info.Name, statements)
		if len(texts) > 0 {
			if err := s.vectors.Add(ctx, texts, metadatas); err != nil {
				log.Printf("[WARNING] vector indexing failed for %s, structured data still saved: %v", ticker, err)
			} else {
				chunks = len(texts)
			}
		}
	}

	return &Result{
		Company:        raw.Info.Name,
		Statements:     len(statements),
		DerivedMetrics: derived,
		Chunks:         chunks,
		Validation:     &summary,
	}, nil
}

// enrichWithDerivedMetrics computes ratios per reporting period and YoY
// growth rates across consecutive annual periods, appending both as ordinary
// line items. Returns how many metrics were added.
//
// Ratios attach to the period's income statement when it exists, otherwise
// to its first statement. Growth rates attach to the current-year statement
// they were derived from.
func enrichWithDerivedMetrics(statements []models.StandardizedStatement) int {
	added := 0

	// Group by period using pointers so appends land in the caller's slice.
	groups := make(map[models.PeriodKey][]*models.StandardizedStatement)
	for i := range statements {
		k := statements[i].Key()
		groups[k] = append(groups[k], &statements[i])
	}

	for _, group := range groups {
		values := make([]models.StandardizedStatement, len(group))
		for i, p := range group {
			values[i] = *p
		}
		ratios := metrics.CalculateRatios(values)
		if len(ratios) == 0 {
			continue
		}

		target := group[0]
		for _, p := range group {
			if p.StatementType == models.StatementIncome {
				target = p
				break
			}
		}
		target.LineItems = append(target.LineItems, ratios...)
		added += len(ratios)
	}

	// Growth rates: consecutive annual periods per statement type.
	byType := make(map[string][]*models.StandardizedStatement)
	for i := range statements {
		s := &statements[i]
		if s.PeriodType != models.PeriodAnnual {
			continue
		}
		byType[s.StatementType] = append(byType[s.StatementType], s)
	}
	for _, series := range byType {
		sort.Slice(series, func(i, j int) bool {
			return series[i].FiscalYear < series[j].FiscalYear
		})
		for i := 1; i < len(series); i++ {
			if series[i].FiscalYear != series[i-1].FiscalYear+1 {
				continue
			}
			rates := metrics.CalculateGrowthRates(series[i], series[i-1])
			series[i].LineItems = append(series[i].LineItems, rates...)
			added += len(rates)
		}
	}

	return added
}

// buildChunks renders one embeddable text per line item, carrying enough
// context for a fragment to stand alone when retrieved.
func buildChunks(ticker, companyName string, statements []models.StandardizedStatement) ([]string, []map[string]string) {
	var texts []string
	var metadatas []map[string]string

	for _, s := range statements {
		periodDate := s.PeriodDate.Format("2006-01-02")
		for _, item := range s.LineItems {
			text := fmt.Sprintf(
				"Company: %s (%s)\nPeriod: %s (%s)\nStatement: %s\nLine Item: %s\nValue: %.2f",
				companyName, ticker, periodDate, s.PeriodType, s.StatementType, item.Name, item.Value,
			)
			texts = append(texts, text)
			metadatas = append(metadatas, map[string]string{
				"ticker":         ticker,
				"statement_type": s.StatementType,
				"period_type":    s.PeriodType,
				"period_date":    periodDate,
				"line_item":      item.Name,
				"numeric_value":  fmt.Sprintf("%.2f", item.Value),
			})
		}
	}
	return texts, metadatas
}
