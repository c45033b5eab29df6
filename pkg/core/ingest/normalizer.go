package ingest

import (
	"log"
	"time"

	"finrag/pkg/models"
)

// dateLayouts are the period date formats upstream sources emit.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// Normalizer converts raw fetched statements into the standardized form the
// rest of the pipeline consumes.
type Normalizer struct{}

// Normalize converts every parseable raw statement. A statement with a bad
// date or no usable line items is logged and skipped, never fatal: one
// malformed period must not sink the rest of the ticker.
func (n *Normalizer) Normalize(raw *RawFinancials) []models.StandardizedStatement {
	if raw == nil {
		return nil
	}

	var normalized []models.StandardizedStatement
	for _, rs := range raw.Statements {
		s, ok := n.normalizeOne(rs)
		if !ok {
			continue
		}
		normalized = append(normalized, s)
	}
	return normalized
}

func (n *Normalizer) normalizeOne(rs RawStatement) (models.StandardizedStatement, bool) {
	periodDate, err := parseDate(rs.PeriodDate)
	if err != nil {
		log.Printf("[WARNING] skipping %s statement with unparseable date %q", rs.StatementType, rs.PeriodDate)
		return models.StandardizedStatement{}, false
	}

	var items []models.LineItem
	rawData := make(map[string]float64)
	for _, ri := range rs.LineItems {
		if ri.Value == nil || ri.Name == "" {
			continue
		}
		items = append(items, models.LineItem{Name: ri.Name, Value: *ri.Value})
		rawData[ri.Name] = *ri.Value
	}
	if len(items) == 0 {
		return models.StandardizedStatement{}, false
	}

	s := models.StandardizedStatement{
		StatementType: rs.StatementType,
		PeriodType:    rs.PeriodType,
		PeriodDate:    periodDate,
		FiscalYear:    periodDate.Year(),
		LineItems:     items,
		RawData:       rawData,
	}
	if rs.PeriodType == models.PeriodQuarterly {
		s.FiscalQuarter = (int(periodDate.Month())-1)/3 + 1
	}
	return s, true
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
