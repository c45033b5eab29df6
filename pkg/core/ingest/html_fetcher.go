package ingest

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"finrag/pkg/models"
)

// HTMLFetcher scrapes statement tables from an investor-relations style
// page. Each statement type lives at
// GET {base}/stocks/{ticker}/financials/{statement}: a table whose header
// row carries period dates and whose body rows carry one line item each.
//
// It is the fallback for tickers the JSON API does not cover.
type HTMLFetcher struct {
	baseURL string
	client  *http.Client
}

// NewHTMLFetcher creates a scraper against the given base URL.
func NewHTMLFetcher(baseURL string) *HTMLFetcher {
	return &HTMLFetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// statementPaths maps the statement type to its page path segment.
var statementPaths = map[string]string{
	models.StatementIncome:   "income-statement",
	models.StatementBalance:  "balance-sheet",
	models.StatementCashFlow: "cash-flow",
}

// FetchFinancials scrapes all three statement pages. A page that is missing
// or has no parseable table is skipped; the fetch only fails when every page
// fails.
func (f *HTMLFetcher) FetchFinancials(ctx context.Context, ticker string) (*RawFinancials, error) {
	raw := &RawFinancials{Info: CompanyInfo{Name: ticker}}

	var lastErr error
	for _, statementType := range []string{models.StatementIncome, models.StatementBalance, models.StatementCashFlow} {
		statements, err := f.fetchStatementPage(ctx, ticker, statementType)
		if err != nil {
			lastErr = err
			continue
		}
		raw.Statements = append(raw.Statements, statements...)
	}

	if len(raw.Statements) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("scraping financials for %s failed: %w", ticker, lastErr)
		}
		return nil, fmt.Errorf("no statement tables found for %s", ticker)
	}
	return raw, nil
}

func (f *HTMLFetcher) fetchStatementPage(ctx context.Context, ticker, statementType string) ([]RawStatement, error) {
	endpoint := fmt.Sprintf("%s/stocks/%s/financials/%s", f.baseURL, ticker, statementPaths[statementType])
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", fetcherUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d for %s", resp.StatusCode, endpoint)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", endpoint, err)
	}

	return parseStatementTable(doc, statementType), nil
}

var dateCellRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// parseStatementTable extracts one RawStatement per period column from the
// first table whose header cells look like dates.
func parseStatementTable(doc *goquery.Document, statementType string) []RawStatement {
	var statements []RawStatement

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		header := table.Find("thead th")
		if header.Length() == 0 {
			header = table.Find("tr").First().Find("th")
		}
		var periods []string
		header.Each(func(_ int, th *goquery.Selection) {
			if d := dateCellRe.FindString(th.Text()); d != "" {
				periods = append(periods, d)
			}
		})
		if len(periods) == 0 {
			return true // keep looking
		}

		// One accumulating statement per period column.
		for _, date := range periods {
			statements = append(statements, RawStatement{
				StatementType: statementType,
				PeriodType:    models.PeriodAnnual,
				PeriodDate:    date,
			})
		}

		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			cells := row.Find("td")
			if cells.Length() < 2 {
				return
			}
			name := strings.TrimSpace(cells.First().Text())
			if name == "" {
				return
			}
			cells.Slice(1, cells.Length()).Each(func(col int, cell *goquery.Selection) {
				if col >= len(periods) {
					return
				}
				value, ok := parseNumericCell(cell.Text())
				item := RawLineItem{Name: name}
				if ok {
					item.Value = &value
				}
				statements[col].LineItems = append(statements[col].LineItems, item)
			})
		})

		return false // first dated table wins
	})

	// Drop period columns that yielded nothing.
	kept := statements[:0]
	for _, s := range statements {
		if len(s.LineItems) > 0 {
			kept = append(kept, s)
		}
	}
	return kept
}

// parseNumericCell handles the formats statement tables use: thousands
// separators, parentheses for negatives, and dash placeholders for missing
// values.
func parseNumericCell(text string) (float64, bool) {
	s := strings.TrimSpace(text)
	if s == "" || s == "-" || s == "--" || s == "—" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimPrefix(s, "$")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}
