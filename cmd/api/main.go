package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"finrag/pkg/api/health"
	apiIngest "finrag/pkg/api/ingest"
	"finrag/pkg/api/query"
	"finrag/pkg/core/agent"
	coreIngest "finrag/pkg/core/ingest"
	"finrag/pkg/core/llm"
	"finrag/pkg/core/retrieval"
	"finrag/pkg/core/store"
	"finrag/pkg/core/vector"
)

const embeddingDimension = 768 // nomic-embed-text

func main() {
	// Load environment variables
	godotenv.Load()

	ctx := context.Background()

	// Provider roles from config
	configData, _ := ioutil.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr := agent.NewManager(agentCfg)

	// Database
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[FATAL] Database init failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	if err := store.EnsureSchema(ctx); err != nil {
		fmt.Printf("[FATAL] Schema setup failed: %v\n", err)
		os.Exit(1)
	}
	repos := store.NewRepos()

	// Vector store (Ollama embeddings + Qdrant index)
	embedder, err := vector.NewOllamaEmbedder(os.Getenv("OLLAMA_URL"), os.Getenv("EMBEDDING_MODEL"))
	if err != nil {
		fmt.Printf("[FATAL] Ollama init failed: %v\n", err)
		os.Exit(1)
	}
	vectors, err := vector.NewQdrantStore(os.Getenv("QDRANT_ADDR"), "financial_chunks", embeddingDimension, embedder)
	if err != nil {
		fmt.Printf("[FATAL] Qdrant init failed: %v\n", err)
		os.Exit(1)
	}
	if err := vectors.EnsureCollection(ctx); err != nil {
		fmt.Printf("[WARNING] Could not ensure vector collection: %v\n", err)
		fmt.Println("  Semantic retrieval may fail until Qdrant is reachable")
	}

	// Retrieval pipeline
	classifier := retrieval.NewLLMClassifier(
		agentMgr.GetProvider("classification"),
		agentMgr.ModelFor("classification"),
	)
	sqlRetriever := retrieval.NewSQLRetriever(repos)
	retriever := retrieval.NewHybridRetriever(classifier, sqlRetriever, vectors)

	// Answer generation
	answers := llm.NewAnswerService(agentMgr.GetProvider("answering"))

	// Ingestion
	ingestService := coreIngest.NewService(
		coreIngest.NewAPIFetcher(""), repos, vectors, "financials_api",
	)

	// Routes
	queryHandler := query.NewHandler(retriever, answers)
	http.HandleFunc("/api/query", queryHandler.HandleQuery)

	ingestHandler := apiIngest.NewHandler(ingestService)
	http.HandleFunc("/api/ingest/company", ingestHandler.HandleIngestCompany)

	http.HandleFunc("/api/health", health.HandleHealth)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("API server starting on :%s...\n", port)
	fmt.Println("  - POST /api/query")
	fmt.Println("  - POST /api/ingest/company")
	fmt.Println("  - GET  /api/health")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		fmt.Printf("[FATAL] Server failed: %v\n", err)
		os.Exit(1)
	}
}
