// Package retrieval classifies questions and fuses structured and semantic
// retrieval into one cited context.
package retrieval

import (
	"context"
	"strings"

	"finrag/pkg/models"
)

// Classifier maps a question to the intent deciding which retrieval
// branches run.
type Classifier interface {
	Classify(ctx context.Context, question string) models.QueryType
}

// Keyword sets for the heuristic baseline. Membership is substring-based
// over the lower-cased question.
var (
	numericKeywords = []string{
		"growth", "increase", "decrease", "margin", "ratio", "profit",
		"revenue", "earnings", "net income", "sales", "turnover",
		"ebitda", "debt", "liability", "asset", "equity", "percent", "%",
		"yoy", "qoq", "compare", "difference", "total", "sum",
	}
	factualKeywords = []string{
		"what is", "who is", "describe", "explain", "summary", "summarize",
		"management", "risk", "competitor", "strategy", "outlook", "guidance",
		"segment", "product", "service", "history", "founded", "ceo", "board",
	}
)

// HeuristicClassifier is the keyword baseline. It needs no external call and
// cannot fail.
type HeuristicClassifier struct{}

var _ Classifier = (*HeuristicClassifier)(nil)

// Classify tests the question against both keyword sets. Both hit means
// Hybrid; neither hitting also defaults to Hybrid, since under-classifying
// risks missing data while over-retrieving only costs latency.
func (c *HeuristicClassifier) Classify(_ context.Context, question string) models.QueryType {
	lower := strings.ToLower(question)

	hasNumeric := containsAny(lower, numericKeywords)
	hasFactual := containsAny(lower, factualKeywords)

	switch {
	case hasNumeric && hasFactual:
		return models.QueryHybrid
	case hasNumeric:
		return models.QueryNumeric
	case hasFactual:
		return models.QueryFactual
	default:
		return models.QueryHybrid
	}
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
