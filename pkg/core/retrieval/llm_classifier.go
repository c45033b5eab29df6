package retrieval

import (
	"context"
	"log"
	"time"

	"finrag/pkg/core/llm"
	"finrag/pkg/core/utils"
	"finrag/pkg/models"
)

const classifierSystemPrompt = `You are a query classifier for a financial question-answering system.
Classify the user's question into exactly one category:
- "numeric": asks for specific figures, ratios, growth rates or comparisons of numbers
- "factual": asks for descriptions, strategy, management, risks or other textual information
- "hybrid": needs both numbers and textual context
- "general": needs no company data at all (greetings, meta questions)

Respond with JSON only: {"query_type": "<category>"}`

// LLMClassifier asks a model to classify the question. It shares the
// Classifier contract with the heuristic and is interchangeable with it.
//
// On any terminal failure (retries exhausted, unparseable output) it fails
// open to Hybrid: availability over precision, since the broad retrieval
// path only costs latency.
type LLMClassifier struct {
	provider llm.Provider
	policy   llm.RetryPolicy
	model    string
	timeout  time.Duration
}

var _ Classifier = (*LLMClassifier)(nil)

// NewLLMClassifier wraps a provider with the default bounded retry policy.
func NewLLMClassifier(provider llm.Provider, model string) *LLMClassifier {
	return &LLMClassifier{
		provider: provider,
		policy:   llm.DefaultRetryPolicy(),
		model:    model,
		timeout:  15 * time.Second,
	}
}

// SetRetryPolicy overrides the retry policy (tests shrink the backoff).
func (c *LLMClassifier) SetRetryPolicy(policy llm.RetryPolicy) {
	c.policy = policy
}

type classification struct {
	QueryType string `json:"query_type"`
}

// Classify sends the question to the model under bounded retry.
func (c *LLMClassifier) Classify(ctx context.Context, question string) models.QueryType {
	options := map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	}
	if c.model != "" {
		options["model"] = c.model
	}

	var raw string
	err := c.policy.Do(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		response, err := c.provider.GenerateResponse(callCtx, question, classifierSystemPrompt, options)
		if err != nil {
			return err
		}
		raw = response
		return nil
	})
	if err != nil {
		log.Printf("[WARNING] query classification failed, failing open to hybrid: %v", err)
		return models.QueryHybrid
	}

	var parsed classification
	if err := utils.DecodeModelJSON(raw, &parsed); err != nil {
		log.Printf("[WARNING] unparseable classification %q, failing open to hybrid: %v", raw, err)
		return models.QueryHybrid
	}

	switch models.QueryType(parsed.QueryType) {
	case models.QueryNumeric, models.QueryFactual, models.QueryHybrid, models.QueryGeneral:
		return models.QueryType(parsed.QueryType)
	default:
		log.Printf("[WARNING] unknown classification %q, failing open to hybrid", parsed.QueryType)
		return models.QueryHybrid
	}
}
