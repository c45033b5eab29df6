// Package metrics derives financial ratios and growth rates from normalized
// statements. All arithmetic happens here, outside the LLM, so every number
// the model cites is deterministic.
package metrics

import (
	"fmt"
	"log"
	"math"

	"finrag/pkg/models"
)

// round2 rounds to two decimal places, the precision all derived metrics
// are stored with.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CalculateRatios computes profitability, return, leverage and liquidity
// ratios for the statements of one reporting period (all sharing a PeriodKey).
//
// Every division is guarded: a missing or zero denominator silently omits
// that ratio, it never produces an error. Any panic during computation is
// recovered and logged; ratios computed before the failure are still
// returned. The caller never sees an error from this function.
func CalculateRatios(statements []models.StandardizedStatement) (ratios []models.LineItem) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARNING] ratio computation aborted mid-period: %v (returning %d partial results)", r, len(ratios))
		}
	}()

	byType := make(map[string]*models.StandardizedStatement)
	for i := range statements {
		s := &statements[i]
		if _, seen := byType[s.StatementType]; !seen {
			byType[s.StatementType] = s
		}
	}

	income := byType[models.StatementIncome]
	balance := byType[models.StatementBalance]

	if income == nil && balance == nil {
		log.Printf("[WARNING] no income statement or balance sheet in period group, skipping ratios")
		return ratios
	}

	add := func(name string, value float64) {
		ratios = append(ratios, models.LineItem{Name: name, Value: round2(value)})
	}

	// Profitability: margins need the income statement only.
	if income != nil {
		revenue, hasRevenue := FindLineItemValue(income.LineItems, "total_revenue")
		netIncome, hasNetIncome := FindLineItemValue(income.LineItems, "net_income")
		operating, hasOperating := FindLineItemValue(income.LineItems, "operating_income")

		if hasRevenue && hasNetIncome && revenue != 0 {
			add("Net Profit Margin (%)", netIncome/revenue*100)
		}
		if hasRevenue && hasOperating && revenue != 0 {
			add("Operating Profit Margin (%)", operating/revenue*100)
		}
	}

	// Return ratios need both statement types of the period.
	if income != nil && balance != nil {
		netIncome, hasNetIncome := FindLineItemValue(income.LineItems, "net_income")
		totalAssets, hasAssets := FindLineItemValue(balance.LineItems, "total_assets")
		totalEquity, hasEquity := FindLineItemValue(balance.LineItems, "total_equity")

		if hasNetIncome && hasAssets && totalAssets != 0 {
			add("Return on Assets (ROA) (%)", netIncome/totalAssets*100)
		}
		if hasNetIncome && hasEquity && totalEquity != 0 {
			add("Return on Equity (ROE) (%)", netIncome/totalEquity*100)
		}
	}

	// Leverage and liquidity: balance sheet only.
	if balance != nil {
		totalDebt, hasDebt := FindLineItemValue(balance.LineItems, "total_debt")
		totalEquity, hasEquity := FindLineItemValue(balance.LineItems, "total_equity")
		totalAssets, hasAssets := FindLineItemValue(balance.LineItems, "total_assets")

		if hasDebt && hasEquity && totalEquity != 0 {
			add("Debt-to-Equity Ratio", totalDebt/totalEquity)
		}
		if hasDebt && hasAssets && totalAssets != 0 {
			add("Debt-to-Assets Ratio (%)", totalDebt/totalAssets*100)
		}
		if hasEquity && hasAssets && totalAssets != 0 {
			add("Equity Ratio (%)", totalEquity/totalAssets*100)
		}

		currentAssets, hasCA := FindLineItemValue(balance.LineItems, "current_assets")
		currentLiabs, hasCL := FindLineItemValue(balance.LineItems, "current_liabilities")
		if hasCA && hasCL && currentLiabs != 0 {
			add("Current Ratio", currentAssets/currentLiabs)
		}
	}

	return ratios
}

// growthMetrics are the canonical keys tracked for year-over-year growth.
var growthMetrics = []string{"total_revenue", "net_income", "total_assets", "total_equity"}

// CalculateGrowthRates computes YoY growth for key metrics between two
// statements of the same statement type.
//
// growth% = (current - prior) / |prior| * 100
//
// Mismatched statement types are rejected with a logged warning and an empty
// result. A missing or zero prior value omits that metric.
func CalculateGrowthRates(current, prior *models.StandardizedStatement) []models.LineItem {
	var rates []models.LineItem

	if current == nil || prior == nil {
		return rates
	}
	if current.StatementType != prior.StatementType {
		log.Printf("[WARNING] cannot compare different statement types: %s vs %s",
			current.StatementType, prior.StatementType)
		return rates
	}

	for _, key := range growthMetrics {
		currentValue, hasCurrent := FindLineItemValue(current.LineItems, key)
		priorValue, hasPrior := FindLineItemValue(prior.LineItems, key)

		if !hasCurrent || !hasPrior || priorValue == 0 {
			continue
		}

		growth := (currentValue - priorValue) / math.Abs(priorValue) * 100
		name, _ := CanonicalName(key)
		rates = append(rates, models.LineItem{
			Name:  fmt.Sprintf("%s Growth Rate (YoY) (%%)", name),
			Value: round2(growth),
		})
	}

	return rates
}
