package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"finrag/pkg/core/utils"
)

// Fixed user-safe responses. The answer boundary always returns a string,
// never an error value.
const (
	// NoDataAnswer short-circuits blank contexts without touching the cache
	// or the provider.
	NoDataAnswer = "I cannot answer this question as no relevant financial data was found in my database for this company."
	// BusyAnswer is returned once every retry attempt is exhausted.
	BusyAnswer = "The analysis service is currently busy or rate limited. Please try again in a moment."
)

// defaultCallTimeout bounds a single provider attempt.
const defaultCallTimeout = 60 * time.Second

// AnswerService wraps the external LLM call with a response cache and a
// bounded retry policy.
type AnswerService struct {
	provider Provider
	cache    *ResponseCache
	policy   RetryPolicy
	timeout  time.Duration
}

// NewAnswerService builds the service with the default cache bounds and
// retry policy.
func NewAnswerService(provider Provider) *AnswerService {
	return &AnswerService{
		provider: provider,
		cache:    NewResponseCache(DefaultCacheTTL, DefaultCacheCapacity),
		policy:   DefaultRetryPolicy(),
		timeout:  defaultCallTimeout,
	}
}

// SetRetryPolicy overrides the retry policy (tests shrink the backoff).
func (s *AnswerService) SetRetryPolicy(policy RetryPolicy) {
	s.policy = policy
}

// SetCache overrides the response cache.
func (s *AnswerService) SetCache(cache *ResponseCache) {
	s.cache = cache
}

// GenerateAnswer produces a grounded answer for the question given the fused
// retrieval context. The caller always receives a usable string:
//
//   - blank context returns NoDataAnswer without any external call
//   - a cache hit returns the cached answer
//   - exhausted retries return BusyAnswer (which is never cached)
func (s *AnswerService) GenerateAnswer(ctx context.Context, question, contextStr string) string {
	if strings.TrimSpace(contextStr) == "" {
		return NoDataAnswer
	}

	key := CacheKey(question, contextStr)
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	prompt := fmt.Sprintf(financialQATemplate, contextStr, question)

	var answer string
	err := s.policy.Do(ctx, func() error {
		callCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		response, err := s.provider.GenerateResponse(callCtx, prompt, FinancialQASystemPrompt, nil)
		if err != nil {
			return err
		}
		answer = response
		return nil
	})
	if err != nil {
		log.Printf("[WARNING] answer generation failed after retries: %v", err)
		return BusyAnswer
	}

	answer = utils.CleanMarkdown(answer)
	if !utils.ValidateMarkdown(answer) {
		log.Printf("[WARNING] answer did not parse as markdown, serving it uncached")
		return answer
	}
	s.cache.Put(key, answer)
	return answer
}
