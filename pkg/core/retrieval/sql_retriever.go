package retrieval

import (
	"context"
	"fmt"
	"log"

	"finrag/pkg/core/store"
	"finrag/pkg/models"
)

// StructuredStore is the slice of the database the structured retriever
// needs. *store.Repos satisfies it; tests substitute fakes.
type StructuredStore interface {
	FindCompany(ctx context.Context, ticker string) (id int, found bool, err error)
	SearchLineItems(ctx context.Context, companyID int, keywords []string, fiscalYear int, limit int) ([]store.LineItemRecord, error)
}

// DefaultSQLLimit caps how many structured facts one retrieval returns.
const DefaultSQLLimit = 20

// SQLRetriever turns a question into a keyword search over the structured
// store and formats the hits as cited facts.
type SQLRetriever struct {
	store StructuredStore
}

// NewSQLRetriever wires the retriever to a structured store.
func NewSQLRetriever(s StructuredStore) *SQLRetriever {
	return &SQLRetriever{store: s}
}

// Retrieve resolves the ticker, extracts keywords and an optional fiscal
// year from the question, and queries the store.
//
// An unknown ticker or a question with no usable keywords yields an empty
// result, not an error. A store failure is returned as an error so the
// orchestrator can degrade to an empty-but-labeled context.
func (r *SQLRetriever) Retrieve(ctx context.Context, ticker, question string, limit int) ([]models.Fact, error) {
	if limit <= 0 {
		limit = DefaultSQLLimit
	}

	companyID, found, err := r.store.FindCompany(ctx, ticker)
	if err != nil {
		return nil, fmt.Errorf("structured retrieval unavailable: %w", err)
	}
	if !found {
		log.Printf("[RETRIEVAL] unknown ticker %s, returning no structured facts", ticker)
		return nil, nil
	}

	keywords := ExtractKeywords(question)
	if len(keywords) == 0 {
		return nil, nil
	}

	fiscalYear, _ := ExtractFiscalYear(question)

	records, err := r.store.SearchLineItems(ctx, companyID, keywords, fiscalYear, limit)
	if err != nil {
		return nil, fmt.Errorf("structured retrieval unavailable: %w", err)
	}

	facts := make([]models.Fact, 0, len(records))
	for _, rec := range records {
		facts = append(facts, models.Fact{
			Source:        "sql",
			LineItem:      rec.Name,
			Value:         rec.Value,
			Period:        formatPeriod(rec),
			Statement:     rec.StatementType,
			FiscalYear:    rec.FiscalYear,
			FiscalQuarter: rec.FiscalQuarter,
		})
	}
	return facts, nil
}

// formatPeriod renders the human period label used in citations:
// "FY2023 (Annual)" for annual periods, "FY2023 Q2" for quarterly ones.
func formatPeriod(rec store.LineItemRecord) string {
	if rec.PeriodType == models.PeriodQuarterly && rec.FiscalQuarter > 0 {
		return fmt.Sprintf("FY%d Q%d", rec.FiscalYear, rec.FiscalQuarter)
	}
	return fmt.Sprintf("FY%d (Annual)", rec.FiscalYear)
}
