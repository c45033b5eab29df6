package retrieval

import (
	"regexp"
	"strings"
)

// financialSynonyms expands recognized financial terms into the line-item
// vocabulary the structured store actually uses.
var financialSynonyms = map[string][]string{
	"revenue":     {"revenue", "sales", "turnover"},
	"sales":       {"revenue", "sales", "turnover"},
	"turnover":    {"revenue", "sales", "turnover"},
	"profit":      {"profit", "income", "earnings"},
	"income":      {"income", "profit", "earnings"},
	"earnings":    {"earnings", "income", "profit"},
	"margin":      {"margin"},
	"assets":      {"assets"},
	"asset":       {"assets"},
	"liabilities": {"liabilities"},
	"liability":   {"liabilities"},
	"equity":      {"equity"},
	"debt":        {"debt"},
	"capex":       {"capital expenditure", "capex"},
	"cash":        {"cash"},
	"ebitda":      {"ebitda"},
	"roe":         {"return on equity", "roe"},
	"roa":         {"return on assets", "roa"},
	"ratio":       {"ratio"},
	"growth":      {"growth"},
}

// stopwords are generic tokens that would match half the database.
var stopwords = map[string]struct{}{
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "whom": {},
	"how": {}, "did": {}, "does": {}, "was": {}, "were": {}, "will": {},
	"the": {}, "and": {}, "for": {}, "from": {}, "with": {}, "about": {},
	"this": {}, "that": {}, "these": {}, "those": {}, "their": {}, "they": {},
	"company": {}, "companies": {}, "much": {}, "many": {}, "year": {}, "years": {},
	"last": {}, "latest": {}, "recent": {}, "have": {}, "has": {}, "had": {},
	"show": {}, "tell": {}, "give": {}, "between": {}, "over": {}, "during": {},
}

var (
	tokenRe    = regexp.MustCompile(`[a-zA-Z]+`)
	fyRe       = regexp.MustCompile(`(?i)\bFY\s*(\d{4}|\d{2})\b`)
	bareYearRe = regexp.MustCompile(`\b(20\d{2})\b`)
)

// ExtractKeywords pulls search keywords out of a question: recognized
// financial terms expand through the synonym table, then generic tokens
// longer than three characters that are not stopwords are added. Duplicates
// are dropped preserving first-seen order.
func ExtractKeywords(question string) []string {
	tokens := tokenRe.FindAllString(strings.ToLower(question), -1)

	var keywords []string
	seen := make(map[string]struct{})
	add := func(kw string) {
		if _, dup := seen[kw]; dup {
			return
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}

	for _, token := range tokens {
		if synonyms, ok := financialSynonyms[token]; ok {
			for _, syn := range synonyms {
				add(syn)
			}
			continue
		}
		if len(token) <= 3 {
			continue
		}
		if _, stop := stopwords[token]; stop {
			continue
		}
		add(token)
	}

	return keywords
}

// ExtractFiscalYear finds an optional fiscal-year hint: "FY23"/"FY 2022"
// first (two-digit years are assumed 2000s), otherwise the first bare
// four-digit token starting with "20". Found=false means no year filter.
func ExtractFiscalYear(question string) (int, bool) {
	if m := fyRe.FindStringSubmatch(question); m != nil {
		year := 0
		for _, ch := range m[1] {
			year = year*10 + int(ch-'0')
		}
		if len(m[1]) == 2 {
			year += 2000
		}
		return year, true
	}

	if m := bareYearRe.FindStringSubmatch(question); m != nil {
		year := 0
		for _, ch := range m[1] {
			year = year*10 + int(ch-'0')
		}
		return year, true
	}

	return 0, false
}
