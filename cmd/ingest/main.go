package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"

	coreIngest "finrag/pkg/core/ingest"
	"finrag/pkg/core/store"
	"finrag/pkg/core/vector"
)

const embeddingDimension = 768 // nomic-embed-text

func main() {
	godotenv.Load()

	sourceFlag := flag.String("source", "api", "data source: api or html")
	htmlBase := flag.String("html-base", "", "base URL for the html source")
	skipVectors := flag.Bool("skip-vectors", false, "skip vector indexing")
	flag.Parse()

	tickers := flag.Args()
	if len(tickers) == 0 {
		fmt.Println("usage: ingest [-source=api|html] [-skip-vectors] TICKER [TICKER...]")
		os.Exit(1)
	}

	ctx := context.Background()

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

	var vectors vector.Store
	if !*skipVectors {
		embedder, err := vector.NewOllamaEmbedder(os.Getenv("OLLAMA_URL"), os.Getenv("EMBEDDING_MODEL"))
		if err != nil {
			fmt.Printf("[FATAL] Ollama init failed: %v\n", err)
			os.Exit(1)
		}
		qdrant, err := vector.NewQdrantStore(os.Getenv("QDRANT_ADDR"), "financial_chunks", embeddingDimension, embedder)
		if err != nil {
			fmt.Printf("[FATAL] Qdrant init failed: %v\n", err)
			os.Exit(1)
		}
		if err := qdrant.EnsureCollection(ctx); err != nil {
			fmt.Printf("[FATAL] Could not ensure vector collection: %v\n", err)
			os.Exit(1)
		}
		vectors = qdrant
	}

	var fetcher coreIngest.Fetcher
	var source string
	switch *sourceFlag {
	case "html":
		fetcher = coreIngest.NewHTMLFetcher(*htmlBase)
		source = "html_scrape"
	default:
		fetcher = coreIngest.NewAPIFetcher("")
		source = "financials_api"
	}

	service := coreIngest.NewService(fetcher, repos, vectors, source)

	// Fan out across tickers; the database upserts keep concurrent runs safe.
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0

	for _, ticker := range tickers {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			result, err := service.IngestCompany(ctx, ticker)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures++
				fmt.Printf("[ERROR] %s: %v\n", ticker, err)
				return
			}
			fmt.Printf("[OK] %s (%s): %d statements, %d derived metrics, %d chunks\n",
				ticker, result.Company, result.Statements, result.DerivedMetrics, result.Chunks)
			if result.Validation != nil {
				for _, warning := range result.Validation.Warnings {
					fmt.Printf("     [WARNING] %s\n", warning)
				}
			}
		}(ticker)
	}
	wg.Wait()

	if failures > 0 {
		fmt.Printf("%d of %d tickers failed\n", failures, len(tickers))
		os.Exit(1)
	}
	fmt.Printf("Ingested %d tickers\n", len(tickers))
}
