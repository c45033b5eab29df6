package retrieval

import (
	"reflect"
	"testing"
)

func TestExtractKeywordsSynonymExpansion(t *testing.T) {
	got := ExtractKeywords("revenue for 2023")
	want := []string{"revenue", "sales", "turnover"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractKeywords = %v, want %v", got, want)
	}
}

func TestExtractKeywordsDropsStopwordsAndShortTokens(t *testing.T) {
	got := ExtractKeywords("What did the company do in Q2?")
	if len(got) != 0 {
		t.Errorf("ExtractKeywords = %v, want empty", got)
	}
}

func TestExtractKeywordsDedupPreservesOrder(t *testing.T) {
	got := ExtractKeywords("profit and income and earnings")
	want := []string{"profit", "income", "earnings"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractKeywords = %v, want %v", got, want)
	}
}

func TestExtractKeywordsKeepsGenericLongTokens(t *testing.T) {
	got := ExtractKeywords("segment breakdown")
	want := []string{"segment", "breakdown"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractKeywords = %v, want %v", got, want)
	}
}

func TestExtractFiscalYear(t *testing.T) {
	tests := []struct {
		question string
		year     int
		found    bool
	}{
		{"revenue in FY23", 2023, true},
		{"revenue in FY 2022", 2022, true},
		{"growth in 2021", 2021, true},
		{"latest revenue", 0, false},
		{"fy24 margin", 2024, true},
		// Three digits are neither a short nor a full year.
		{"results for FY123", 0, false},
	}
	for _, tt := range tests {
		year, found := ExtractFiscalYear(tt.question)
		if year != tt.year || found != tt.found {
			t.Errorf("ExtractFiscalYear(%q) = (%d, %v), want (%d, %v)",
				tt.question, year, found, tt.year, tt.found)
		}
	}
}

func TestExtractFiscalYearPrefersFYOverBareYear(t *testing.T) {
	year, found := ExtractFiscalYear("compare 2020 against FY23")
	if !found || year != 2023 {
		t.Errorf("got (%d, %v), want (2023, true)", year, found)
	}
}
