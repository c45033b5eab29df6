package metrics

import (
	"strings"

	"finrag/pkg/models"
)

// lineItemAliases maps canonical metric keys to the vendor labels we have seen
// for them. The alias lists are ordered from most to least specific, but the
// scan order that decides a hit is the statement's own line-item order.
var lineItemAliases = map[string][]string{
	"total_revenue":       {"Total Revenue", "Revenue", "Net Sales", "Total Sales", "Turnover"},
	"net_income":          {"Net Income", "Net Profit", "Profit After Tax", "PAT", "Net Earnings"},
	"operating_income":    {"Operating Income", "Operating Profit", "EBIT"},
	"total_assets":        {"Total Assets", "Total Asset"},
	"current_assets":      {"Current Assets", "Total Current Assets"},
	"total_liabilities":   {"Total Liabilities", "Total Liability"},
	"current_liabilities": {"Current Liabilities", "Total Current Liabilities"},
	"total_equity": {"Total Equity", "Stockholders Equity", "Shareholders Equity",
		"Total Stockholders Equity", "Total Shareholders Equity"},
	"total_debt": {"Total Debt", "Long Term Debt", "Total Long Term Debt"},
}

// CanonicalName returns the display name for a canonical key (the first,
// most specific alias). Ok is false for unknown keys.
func CanonicalName(key string) (string, bool) {
	aliases, ok := lineItemAliases[key]
	if !ok || len(aliases) == 0 {
		return "", false
	}
	return aliases[0], true
}

// FindLineItemValue resolves a canonical metric key against a statement's
// line items and returns the first matching value.
//
// A line item matches when its name contains an alias or the alias contains
// the name, case-insensitively. Line items are scanned in their given order
// and the first match wins, so resolution is only as deterministic as the
// source order of the statement.
func FindLineItemValue(items []models.LineItem, key string) (float64, bool) {
	aliases, ok := lineItemAliases[key]
	if !ok {
		return 0, false
	}

	for _, item := range items {
		name := strings.ToLower(item.Name)
		for _, alias := range aliases {
			a := strings.ToLower(alias)
			if strings.Contains(name, a) || strings.Contains(a, name) {
				return item.Value, true
			}
		}
	}

	return 0, false
}
