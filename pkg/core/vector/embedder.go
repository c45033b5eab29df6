package vector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ollama/ollama/api"
)

// defaultEmbeddingModel must match between indexing and querying or the
// vector space is meaningless.
const defaultEmbeddingModel = "nomic-embed-text"

// OllamaEmbedder produces embeddings through a local Ollama server.
type OllamaEmbedder struct {
	client *api.Client
	model  string
}

// NewOllamaEmbedder connects to the Ollama server at baseURL
// (default http://localhost:11434).
func NewOllamaEmbedder(baseURL, model string) (*OllamaEmbedder, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = defaultEmbeddingModel
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", baseURL, err)
	}

	return &OllamaEmbedder{
		client: api.NewClient(u, &http.Client{Timeout: 60 * time.Second}),
		model:  model,
	}, nil
}

// Embed returns the embedding vector for one text. Each request carries its
// own timeout so a stuck inference cannot stall the whole pipeline.
func (e *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	reqCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := e.client.Embeddings(reqCtx, &api.EmbeddingRequest{
		Model:  e.model,
		Prompt: text,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}

	vec := make([]float32, len(resp.Embedding))
	for i, v := range resp.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
