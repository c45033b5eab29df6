package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	coreIngest "finrag/pkg/core/ingest"
)

// Handler serves the company ingestion endpoint.
type Handler struct {
	service *coreIngest.Service
}

// NewHandler wires the ingestion handler.
func NewHandler(service *coreIngest.Service) *Handler {
	return &Handler{service: service}
}

type IngestRequest struct {
	Ticker string `json:"ticker"`
}

type IngestResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	coreIngest.Result
}

// HandleIngestCompany fetches, stores and indexes financials for one ticker.
func (h *Handler) HandleIngestCompany(w http.ResponseWriter, r *http.Request) {
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

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		http.Error(w, "ticker is required", http.StatusBadRequest)
		return
	}

	fmt.Printf("[INGEST] Request: %s\n", ticker)

	result, err := h.service.IngestCompany(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, coreIngest.ErrNoData) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("ingestion failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(IngestResponse{
		Status:  "success",
		Message: "Successfully ingested financial data",
		Result:  *result,
	})
}
