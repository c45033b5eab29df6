package llm

import (
	"context"
)

// Provider is the interface for all LLM providers.
//
// Options carry provider-specific knobs (model override, api_key,
// response_format) without widening the signature per provider.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}
