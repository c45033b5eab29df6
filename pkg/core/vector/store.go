// Package vector provides the semantic text index. The core treats the
// ranking as given; embedding and indexing internals live behind the Store
// interface.
package vector

import (
	"context"

	"finrag/pkg/models"
)

// Store is the semantic-store capability the retrieval path consumes.
type Store interface {
	// Add embeds and indexes texts with their metadata. Called at
	// ingestion time only.
	Add(ctx context.Context, texts []string, metadatas []map[string]string) error

	// Search returns the k nearest fragments for the query, restricted to
	// entries whose metadata matches every filter key/value pair.
	Search(ctx context.Context, query string, k int, filter map[string]string) ([]models.Fragment, error)
}
