package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finrag/pkg/models"
)

// StatementRepo persists and searches financial statements and their line
// items.
type StatementRepo struct{}

// NewStatementRepo creates a repository instance.
func NewStatementRepo() *StatementRepo {
	return &StatementRepo{}
}

// LineItemRecord is one structured-search hit, joined across the statement
// and line-item tables. It carries the metadata a citation needs.
type LineItemRecord struct {
	Name          string
	Value         float64
	PeriodType    string
	FiscalYear    int
	FiscalQuarter int // 0 when NULL (annual)
	StatementType string
}

// SaveAll writes every statement and line item for one company inside a
// single transaction. Either the whole ticker lands or nothing does; a
// failed ingestion never leaves a half-written company behind.
func (r *StatementRepo) SaveAll(ctx context.Context, companyID int, source string, statements []models.StandardizedStatement) error {
	p := GetPool()
	if p == nil {
		return fmt.Errorf("database pool not initialized")
	}

	tx, err := p.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	upsertStatement := `
		INSERT INTO financial_statements
			(company_id, statement_type, period_type, period_date, fiscal_year, fiscal_quarter, source, raw_data, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT ON CONSTRAINT uq_company_statement_period
		DO UPDATE SET raw_data = EXCLUDED.raw_data, updated_at = EXCLUDED.updated_at
		RETURNING id;
	`
	upsertLineItem := `
		INSERT INTO financial_line_items (statement_id, line_item_name, line_item_value)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT uq_statement_line_item
		DO UPDATE SET line_item_value = EXCLUDED.line_item_value;
	`

	for i := range statements {
		s := &statements[i]

		var rawJSON []byte
		if s.RawData != nil {
			rawJSON, err = json.Marshal(s.RawData)
			if err != nil {
				return fmt.Errorf("failed to marshal raw data: %w", err)
			}
		}

		var quarter interface{}
		if s.FiscalQuarter > 0 {
			quarter = s.FiscalQuarter
		}

		var statementID int
		err = tx.QueryRow(ctx, upsertStatement,
			companyID, s.StatementType, s.PeriodType, s.PeriodDate,
			s.FiscalYear, quarter, source, rawJSON, time.Now(),
		).Scan(&statementID)
		if err != nil {
			return fmt.Errorf("failed to upsert %s statement for %s: %w",
				s.StatementType, s.PeriodDate.Format("2006-01-02"), err)
		}

		for _, item := range s.LineItems {
			if _, err := tx.Exec(ctx, upsertLineItem, statementID, item.Name, item.Value); err != nil {
				return fmt.Errorf("failed to upsert line item %q: %w", item.Name, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit statements: %w", err)
	}
	return nil
}

// SearchLineItems finds line items whose name contains any of the keywords
// (case-insensitive), scoped to a company, optionally filtered to one fiscal
// year, ordered by period recency descending and capped at limit.
func (r *StatementRepo) SearchLineItems(ctx context.Context, companyID int, keywords []string, fiscalYear int, limit int) ([]LineItemRecord, error) {
	p := GetPool()
	if p == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if len(keywords) == 0 {
		return nil, nil
	}

	patterns := make([]string, len(keywords))
	for i, kw := range keywords {
		patterns[i] = "%" + kw + "%"
	}

	query := `
		SELECT li.line_item_name, li.line_item_value,
		       fs.period_type, fs.fiscal_year, COALESCE(fs.fiscal_quarter, 0), fs.statement_type
		FROM financial_line_items li
		JOIN financial_statements fs ON li.statement_id = fs.id
		WHERE fs.company_id = $1
		  AND li.line_item_name ILIKE ANY($2)
	`
	args := []interface{}{companyID, patterns}
	if fiscalYear > 0 {
		query += ` AND fs.fiscal_year = $3`
		args = append(args, fiscalYear)
	}
	query += fmt.Sprintf(` ORDER BY fs.period_date DESC LIMIT %d`, limit)

	rows, err := p.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("line item search failed: %w", err)
	}
	defer rows.Close()

	var records []LineItemRecord
	for rows.Next() {
		var rec LineItemRecord
		if err := rows.Scan(&rec.Name, &rec.Value, &rec.PeriodType,
			&rec.FiscalYear, &rec.FiscalQuarter, &rec.StatementType); err != nil {
			return nil, fmt.Errorf("failed to scan line item row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("line item search failed: %w", err)
	}

	return records, nil
}
