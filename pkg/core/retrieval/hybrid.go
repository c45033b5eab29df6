package retrieval

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"finrag/pkg/core/vector"
	"finrag/pkg/models"
)

const (
	// DefaultVectorTopK is how many text fragments the semantic branch asks for.
	DefaultVectorTopK = 5
	// DefaultRetrievalTimeout bounds the whole fan-out. A branch that blows
	// the budget is dropped; the other branch's results still count.
	DefaultRetrievalTimeout = 20 * time.Second
)

// HybridRetriever classifies the question, dispatches the structured and
// semantic branches per intent, and fuses the results into one context
// string.
type HybridRetriever struct {
	classifier Classifier
	sql        *SQLRetriever
	vectors    vector.Store
	topK       int
	timeout    time.Duration
}

// NewHybridRetriever wires the orchestrator. A nil classifier falls back to
// the heuristic baseline.
func NewHybridRetriever(classifier Classifier, sql *SQLRetriever, vectors vector.Store) *HybridRetriever {
	if classifier == nil {
		classifier = &HeuristicClassifier{}
	}
	return &HybridRetriever{
		classifier: classifier,
		sql:        sql,
		vectors:    vectors,
		topK:       DefaultVectorTopK,
		timeout:    DefaultRetrievalTimeout,
	}
}

// SetTimeout overrides the fan-out budget.
func (h *HybridRetriever) SetTimeout(d time.Duration) {
	h.timeout = d
}

// Retrieve runs the retrieval pipeline for one question.
//
// Numeric and Hybrid run the structured branch; Factual and Hybrid run the
// semantic branch; General deliberately runs neither (no grounding needed,
// and skipping is the cheapest correct behavior). The two branches have no
// data dependency and run concurrently under one timeout. Either branch's
// failure degrades to an empty sub-result instead of aborting the whole
// retrieval.
func (h *HybridRetriever) Retrieve(ctx context.Context, ticker, question string) models.RetrievalResult {
	queryType := h.classifier.Classify(ctx, question)

	result := models.RetrievalResult{QueryType: queryType}

	runSQL := queryType == models.QueryNumeric || queryType == models.QueryHybrid
	runVector := queryType == models.QueryFactual || queryType == models.QueryHybrid

	if runSQL || runVector {
		fanCtx, cancel := context.WithTimeout(ctx, h.timeout)
		defer cancel()

		var wg sync.WaitGroup
		var mu sync.Mutex

		if runSQL {
			wg.Add(1)
			go func() {
				defer wg.Done()
				facts, err := h.sql.Retrieve(fanCtx, ticker, question, DefaultSQLLimit)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					log.Printf("[WARNING] structured branch degraded to empty: %v", err)
					return
				}
				result.SQLResults = facts
			}()
		}

		if runVector {
			wg.Add(1)
			go func() {
				defer wg.Done()
				fragments, err := h.vectors.Search(fanCtx, question, h.topK, map[string]string{"ticker": ticker})
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					log.Printf("[WARNING] semantic branch degraded to empty: %v", err)
					return
				}
				result.VectorResults = fragments
			}()
		}

		wg.Wait()
	}

	result.ContextStr = BuildContext(result.SQLResults, result.VectorResults)
	return result
}

// BuildContext fuses facts and fragments into the single string handed to
// the model. Structured facts come first: exact, citable numbers should
// dominate the model's attention over fuzzy prose. An empty section is
// omitted entirely.
func BuildContext(facts []models.Fact, fragments []models.Fragment) string {
	var parts []string

	if len(facts) > 0 {
		parts = append(parts, "=== STRUCTURED FINANCIAL DATA (High Confidence) ===")
		for _, fact := range facts {
			parts = append(parts, fmt.Sprintf("- %s: %v (%s, %s)",
				fact.LineItem, fact.Value, fact.Period, fact.Statement))
		}
		parts = append(parts, "")
	}

	if len(fragments) > 0 {
		parts = append(parts, "=== TEXTUAL CONTEXT FRAGMENTS ===")
		for _, frag := range fragments {
			text := strings.ReplaceAll(frag.Text, "\n", " | ")
			parts = append(parts, "- "+text)
		}
	}

	return strings.Join(parts, "\n")
}
