package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"finrag/pkg/core/llm"
	"finrag/pkg/models"
)

// stubProvider returns a fixed response or error for every call.
type stubProvider struct {
	response string
	err      error
	calls    int
}

func (p *stubProvider) GenerateResponse(_ context.Context, _, _ string, _ map[string]interface{}) (string, error) {
	p.calls++
	return p.response, p.err
}

func fastPolicy() llm.RetryPolicy {
	policy := llm.DefaultRetryPolicy()
	policy.BaseDelay = time.Millisecond
	policy.MaxDelay = time.Millisecond
	policy.Jitter = false
	return policy
}

func TestLLMClassifierParsesResponse(t *testing.T) {
	provider := &stubProvider{response: `{"query_type": "numeric"}`}
	c := NewLLMClassifier(provider, "")
	c.SetRetryPolicy(fastPolicy())

	if got := c.Classify(context.Background(), "revenue in FY23?"); got != models.QueryNumeric {
		t.Errorf("Classify = %s, want %s", got, models.QueryNumeric)
	}
}

func TestLLMClassifierRepairsSloppyJSON(t *testing.T) {
	provider := &stubProvider{response: "```json\n{\"query_type\": \"factual\"}\n```"}
	c := NewLLMClassifier(provider, "")
	c.SetRetryPolicy(fastPolicy())

	if got := c.Classify(context.Background(), "describe the strategy"); got != models.QueryFactual {
		t.Errorf("Classify = %s, want %s", got, models.QueryFactual)
	}
}

func TestLLMClassifierFailsOpenOnError(t *testing.T) {
	provider := &stubProvider{err: errors.New("rate limit exceeded (429)")}
	c := NewLLMClassifier(provider, "")
	c.SetRetryPolicy(fastPolicy())

	if got := c.Classify(context.Background(), "anything"); got != models.QueryHybrid {
		t.Errorf("Classify = %s, want %s after exhausted retries", got, models.QueryHybrid)
	}
	if provider.calls != 3 {
		t.Errorf("provider called %d times, want 3", provider.calls)
	}
}

func TestLLMClassifierFailsOpenOnUnknownCategory(t *testing.T) {
	provider := &stubProvider{response: `{"query_type": "philosophical"}`}
	c := NewLLMClassifier(provider, "")
	c.SetRetryPolicy(fastPolicy())

	if got := c.Classify(context.Background(), "anything"); got != models.QueryHybrid {
		t.Errorf("Classify = %s, want %s for unknown category", got, models.QueryHybrid)
	}
}
