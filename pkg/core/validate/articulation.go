package validate

import (
	"fmt"
	"math"

	"finrag/pkg/core/metrics"
	"finrag/pkg/models"
)

// articulationTolerance is the allowed relative mismatch between the two
// sides of the accounting identity. Real filings carry rounding noise, so an
// exact comparison would flag nearly everything.
const articulationTolerance = 0.01

// ArticulationResult reports whether a balance sheet balances:
// Total Assets == Total Liabilities + Total Equity.
type ArticulationResult struct {
	TotalAssets      float64 `json:"total_assets"`
	TotalLiabilities float64 `json:"total_liabilities"`
	TotalEquity      float64 `json:"total_equity"`
	Difference       float64 `json:"difference"`
	IsBalanced       bool    `json:"is_balanced"`
	Checked          bool    `json:"checked"`
}

// CheckArticulation verifies the accounting identity on one balance sheet.
// A statement that is not a balance sheet, or is missing any of the three
// totals, is reported as unchecked rather than failed.
func CheckArticulation(s *models.StandardizedStatement) ArticulationResult {
	var result ArticulationResult

	if s == nil || s.StatementType != models.StatementBalance {
		return result
	}

	assets, hasAssets := metrics.FindLineItemValue(s.LineItems, "total_assets")
	liabilities, hasLiabilities := metrics.FindLineItemValue(s.LineItems, "total_liabilities")
	equity, hasEquity := metrics.FindLineItemValue(s.LineItems, "total_equity")
	if !hasAssets || !hasLiabilities || !hasEquity {
		return result
	}

	result.Checked = true
	result.TotalAssets = assets
	result.TotalLiabilities = liabilities
	result.TotalEquity = equity
	result.Difference = assets - (liabilities + equity)

	tolerance := math.Abs(assets) * articulationTolerance
	result.IsBalanced = math.Abs(result.Difference) <= tolerance

	return result
}

// articulationWarnings runs the identity check over every balance sheet and
// returns a warning line per unbalanced period.
func articulationWarnings(statements []models.StandardizedStatement) []string {
	var warnings []string
	for i := range statements {
		result := CheckArticulation(&statements[i])
		if result.Checked && !result.IsBalanced {
			warnings = append(warnings, fmt.Sprintf(
				"balance sheet for %s does not articulate: assets %.2f vs liabilities+equity %.2f",
				statements[i].PeriodDate.Format("2006-01-02"),
				result.TotalAssets, result.TotalLiabilities+result.TotalEquity))
		}
	}
	return warnings
}
