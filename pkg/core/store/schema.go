package store

import (
	"context"
	"fmt"
)

// schema holds the three tables of the structured store. Statement
// uniqueness is (company_id, statement_type, period_type, period_date) and
// line-item uniqueness is (statement_id, line_item_name), so re-ingestion
// upserts instead of duplicating.
const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id         SERIAL PRIMARY KEY,
	ticker     VARCHAR(20) UNIQUE NOT NULL,
	name       VARCHAR(255) NOT NULL,
	sector     VARCHAR(100),
	industry   VARCHAR(100),
	created_at TIMESTAMPTZ DEFAULT now(),
	updated_at TIMESTAMPTZ DEFAULT now()
);

CREATE TABLE IF NOT EXISTS financial_statements (
	id             SERIAL PRIMARY KEY,
	company_id     INTEGER REFERENCES companies(id) ON DELETE CASCADE,
	statement_type VARCHAR(50) NOT NULL,
	period_type    VARCHAR(20) NOT NULL,
	period_date    DATE NOT NULL,
	fiscal_year    INTEGER,
	fiscal_quarter INTEGER,
	source         VARCHAR(50),
	raw_data       JSONB,
	created_at     TIMESTAMPTZ DEFAULT now(),
	updated_at     TIMESTAMPTZ DEFAULT now(),
	CONSTRAINT uq_company_statement_period
		UNIQUE (company_id, statement_type, period_type, period_date)
);

CREATE TABLE IF NOT EXISTS financial_line_items (
	id              SERIAL PRIMARY KEY,
	statement_id    INTEGER REFERENCES financial_statements(id) ON DELETE CASCADE,
	line_item_name  VARCHAR(255) NOT NULL,
	line_item_value NUMERIC(20, 2),
	currency        VARCHAR(10) DEFAULT 'USD',
	created_at      TIMESTAMPTZ DEFAULT now(),
	CONSTRAINT uq_statement_line_item UNIQUE (statement_id, line_item_name)
);

CREATE INDEX IF NOT EXISTS idx_line_items_name
	ON financial_line_items (line_item_name);
CREATE INDEX IF NOT EXISTS idx_statements_company
	ON financial_statements (company_id, period_date DESC);
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context) error {
	p := GetPool()
	if p == nil {
		return fmt.Errorf("database pool not initialized")
	}
	if _, err := p.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
