package store

import (
	"context"
)

// Repos bundles the repositories behind the single facade the retrieval and
// ingestion paths consume.
type Repos struct {
	Companies  *CompanyRepo
	Statements *StatementRepo
}

// NewRepos creates the repository bundle.
func NewRepos() *Repos {
	return &Repos{
		Companies:  NewCompanyRepo(),
		Statements: NewStatementRepo(),
	}
}

// FindCompany resolves a ticker to its company id.
func (r *Repos) FindCompany(ctx context.Context, ticker string) (int, bool, error) {
	return r.Companies.Find(ctx, ticker)
}

// SearchLineItems delegates to the statement repository.
func (r *Repos) SearchLineItems(ctx context.Context, companyID int, keywords []string, fiscalYear int, limit int) ([]LineItemRecord, error) {
	return r.Statements.SearchLineItems(ctx, companyID, keywords, fiscalYear, limit)
}
