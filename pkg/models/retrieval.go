package models

// QueryType is the classified intent of a user question. It decides which
// retrieval branches run.
type QueryType string

const (
	QueryNumeric QueryType = "numeric"
	QueryFactual QueryType = "factual"
	QueryHybrid  QueryType = "hybrid"
	// QueryGeneral means no grounding is needed; the orchestrator runs no
	// retrieval branch at all for it.
	QueryGeneral QueryType = "general"
)

// Fact is one cited numeric result from the structured store.
type Fact struct {
	Source        string  `json:"source"` // always "sql"
	LineItem      string  `json:"line_item"`
	Value         float64 `json:"value"`
	Period        string  `json:"period"` // e.g. "FY2023 (Annual)" or "FY2023 Q2"
	Statement     string  `json:"statement"`
	FiscalYear    int     `json:"fiscal_year"`
	FiscalQuarter int     `json:"fiscal_quarter,omitempty"`
}

// Fragment is one ranked text hit from the semantic store.
type Fragment struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
	Distance float32           `json:"distance"`
}

// RetrievalResult is the fused output of one hybrid retrieval.
type RetrievalResult struct {
	QueryType     QueryType  `json:"query_type"`
	SQLResults    []Fact     `json:"sql_results"`
	VectorResults []Fragment `json:"vector_results"`
	ContextStr    string     `json:"context_str"`
}
