package retrieval

import (
	"context"
	"errors"
	"testing"

	"finrag/pkg/core/store"
	"finrag/pkg/models"
)

func TestSQLRetrieverFormatsFacts(t *testing.T) {
	s := &fakeStore{records: []store.LineItemRecord{
		{
			Name:          "Total Revenue",
			Value:         1000,
			PeriodType:    models.PeriodAnnual,
			FiscalYear:    2023,
			StatementType: models.StatementIncome,
		},
		{
			Name:          "Total Revenue",
			Value:         240,
			PeriodType:    models.PeriodQuarterly,
			FiscalYear:    2023,
			FiscalQuarter: 2,
			StatementType: models.StatementIncome,
		},
	}}

	facts, err := NewSQLRetriever(s).Retrieve(context.Background(), "ACME", "total revenue", 0)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(facts) != 2 {
		t.Fatalf("got %d facts, want 2", len(facts))
	}
	if facts[0].Period != "FY2023 (Annual)" {
		t.Errorf("annual period = %q, want FY2023 (Annual)", facts[0].Period)
	}
	if facts[1].Period != "FY2023 Q2" {
		t.Errorf("quarterly period = %q, want FY2023 Q2", facts[1].Period)
	}
	if facts[0].Source != "sql" {
		t.Errorf("Source = %q, want sql", facts[0].Source)
	}
}

func TestSQLRetrieverUnknownTicker(t *testing.T) {
	s := &fakeStore{unknown: true}

	facts, err := NewSQLRetriever(s).Retrieve(context.Background(), "NOPE", "revenue", 0)
	if err != nil {
		t.Fatalf("unknown ticker must not error, got %v", err)
	}
	if facts != nil {
		t.Errorf("got %d facts for unknown ticker, want none", len(facts))
	}
	if s.searches != 0 {
		t.Errorf("search ran %d times for unknown ticker, want 0", s.searches)
	}
}

func TestSQLRetrieverNoKeywords(t *testing.T) {
	s := &fakeStore{}

	facts, err := NewSQLRetriever(s).Retrieve(context.Background(), "ACME", "what did they do?", 0)
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if facts != nil || s.searches != 0 {
		t.Errorf("keywordless question must skip the search, got %d facts, %d searches", len(facts), s.searches)
	}
}

func TestSQLRetrieverWrapsStoreErrors(t *testing.T) {
	base := errors.New("connection refused")

	_, err := NewSQLRetriever(&fakeStore{findErr: base}).Retrieve(context.Background(), "ACME", "revenue", 0)
	if !errors.Is(err, base) {
		t.Errorf("lookup error not wrapped: %v", err)
	}

	_, err = NewSQLRetriever(&fakeStore{err: base}).Retrieve(context.Background(), "ACME", "revenue", 0)
	if !errors.Is(err, base) {
		t.Errorf("search error not wrapped: %v", err)
	}
}
