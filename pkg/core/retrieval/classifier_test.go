package retrieval

import (
	"context"
	"testing"

	"finrag/pkg/models"
)

func TestHeuristicClassifierNumeric(t *testing.T) {
	c := &HeuristicClassifier{}

	// Numeric keywords only, no factual phrasing.
	questions := []string{
		"Show me the revenue growth rate",
		"How much did net income increase?",
		"Compare the debt ratio across 2022 and 2023",
	}
	for _, q := range questions {
		if got := c.Classify(context.Background(), q); got != models.QueryNumeric {
			t.Errorf("Classify(%q) = %s, want %s", q, got, models.QueryNumeric)
		}
	}
}

func TestHeuristicClassifierFactual(t *testing.T) {
	c := &HeuristicClassifier{}

	questions := []string{
		"Describe the management team",
		"When was the business founded?",
		"Describe the main risks",
	}
	for _, q := range questions {
		if got := c.Classify(context.Background(), q); got != models.QueryFactual {
			t.Errorf("Classify(%q) = %s, want %s", q, got, models.QueryFactual)
		}
	}
}

func TestHeuristicClassifierHybridWhenBothHit(t *testing.T) {
	c := &HeuristicClassifier{}

	questions := []string{
		// "what is" is factual, "revenue growth" is numeric.
		"What is the revenue growth?",
		// "summarize" is factual and also carries the "sum" substring, so
		// membership is substring-based on both sides.
		"Summarize the main risks",
	}
	for _, q := range questions {
		if got := c.Classify(context.Background(), q); got != models.QueryHybrid {
			t.Errorf("Classify(%q) = %s, want %s", q, got, models.QueryHybrid)
		}
	}
}

func TestHeuristicClassifierDefaultsToHybrid(t *testing.T) {
	c := &HeuristicClassifier{}

	got := c.Classify(context.Background(), "Tell me something interesting")
	if got != models.QueryHybrid {
		t.Errorf("Classify = %s, want %s", got, models.QueryHybrid)
	}
}
