package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// CompanyRepo handles company metadata rows.
type CompanyRepo struct{}

// NewCompanyRepo creates a repository instance.
func NewCompanyRepo() *CompanyRepo {
	return &CompanyRepo{}
}

// Company is one row of the companies table.
type Company struct {
	ID       int
	Ticker   string
	Name     string
	Sector   string
	Industry string
}

// Upsert inserts or refreshes company metadata, returning the row id.
func (r *CompanyRepo) Upsert(ctx context.Context, ticker, name, sector, industry string) (int, error) {
	p := GetPool()
	if p == nil {
		return 0, fmt.Errorf("database pool not initialized")
	}
	if name == "" {
		name = ticker
	}

	query := `
		INSERT INTO companies (ticker, name, sector, industry, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ticker)
		DO UPDATE SET
			name = EXCLUDED.name,
			sector = EXCLUDED.sector,
			industry = EXCLUDED.industry,
			updated_at = EXCLUDED.updated_at
		RETURNING id;
	`

	var id int
	if err := p.QueryRow(ctx, query, ticker, name, sector, industry, time.Now()).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to upsert company %s: %w", ticker, err)
	}
	return id, nil
}

// Find resolves a ticker to its company id. An unknown ticker is reported
// via found=false, not an error.
func (r *CompanyRepo) Find(ctx context.Context, ticker string) (id int, found bool, err error) {
	p := GetPool()
	if p == nil {
		return 0, false, fmt.Errorf("database pool not initialized")
	}

	err = p.QueryRow(ctx, `SELECT id FROM companies WHERE ticker = $1`, ticker).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to look up company %s: %w", ticker, err)
	}
	return id, true, nil
}
