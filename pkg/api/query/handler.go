package query

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"finrag/pkg/core/llm"
	"finrag/pkg/core/retrieval"
)

// Handler serves the question-answering endpoint.
type Handler struct {
	retriever *retrieval.HybridRetriever
	answers   *llm.AnswerService
}

// NewHandler wires the query handler.
func NewHandler(retriever *retrieval.HybridRetriever, answers *llm.AnswerService) *Handler {
	return &Handler{retriever: retriever, answers: answers}
}

type QueryRequest struct {
	Ticker string `json:"ticker"`
	Query  string `json:"query"`
}

type QueryResponse struct {
	Answer     string        `json:"answer"`
	QueryType  string        `json:"query_type"`
	Sources    []interface{} `json:"sources"`
	Confidence string        `json:"confidence"`
}

// HandleQuery answers a natural-language question about one company's
// financials: hybrid retrieval for grounding, then the cached LLM call.
func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	fmt.Printf("[QUERY] %s: %q\n", ticker, req.Query)

	result := h.retriever.Retrieve(r.Context(), ticker, req.Query)

	answer := h.answers.GenerateAnswer(r.Context(), req.Query, result.ContextStr)

	sources := make([]interface{}, 0, len(result.SQLResults)+len(result.VectorResults))
	for _, fact := range result.SQLResults {
		sources = append(sources, fact)
	}
	for _, frag := range result.VectorResults {
		sources = append(sources, map[string]interface{}{
			"source": "vector",
			"text":   frag.Text,
		})
	}

	confidence := "low"
	if len(sources) > 0 {
		confidence = "high"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(QueryResponse{
		Answer:     answer,
		QueryType:  string(result.QueryType),
		Sources:    sources,
		Confidence: confidence,
	})
}
