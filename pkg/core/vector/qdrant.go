package vector

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"finrag/pkg/models"
)

// Embedder turns text into a vector. Satisfied by OllamaEmbedder.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// QdrantStore implements Store against a Qdrant collection over gRPC.
type QdrantStore struct {
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	embedder    Embedder
	collection  string
	dimension   uint64
}

var _ Store = (*QdrantStore)(nil)

// NewQdrantStore dials the Qdrant gRPC endpoint (host:port) and wires the
// embedder. Dimension must match the embedding model's output size.
func NewQdrantStore(addr, collection string, dimension int, embedder Embedder) (*QdrantStore, error) {
	if addr == "" {
		addr = "localhost:6334"
	}

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to qdrant at %s: %w", addr, err)
	}

	return &QdrantStore{
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		embedder:    embedder,
		collection:  collection,
		dimension:   uint64(dimension),
	}, nil
}

// EnsureCollection creates the collection when it does not exist yet.
func (s *QdrantStore) EnsureCollection(ctx context.Context) error {
	list, err := s.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, col := range list.GetCollections() {
		if col.GetName() == s.collection {
			return nil
		}
	}

	_, err = s.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     s.dimension,
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create collection %s: %w", s.collection, err)
	}

	log.Printf("[VECTOR] created collection %s (dim=%d)", s.collection, s.dimension)
	return nil
}

// Add embeds each text and upserts it with its metadata as payload.
func (s *QdrantStore) Add(ctx context.Context, texts []string, metadatas []map[string]string) error {
	if len(texts) == 0 {
		return nil
	}
	if len(texts) != len(metadatas) {
		return fmt.Errorf("texts and metadatas length mismatch: %d vs %d", len(texts), len(metadatas))
	}

	points := make([]*qdrantclient.PointStruct, 0, len(texts))
	for i, text := range texts {
		embedding, err := s.embedder.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}

		payload := map[string]*qdrantclient.Value{
			"text": {Kind: &qdrantclient.Value_StringValue{StringValue: text}},
		}
		for k, v := range metadatas[i] {
			payload[k] = &qdrantclient.Value{Kind: &qdrantclient.Value_StringValue{StringValue: v}}
		}

		points = append(points, &qdrantclient.PointStruct{
			Id: &qdrantclient.PointId{
				PointIdOptions: &qdrantclient.PointId_Uuid{Uuid: uuid.NewString()},
			},
			Vectors: &qdrantclient.Vectors{
				VectorsOptions: &qdrantclient.Vectors_Vector{
					Vector: &qdrantclient.Vector{Data: embedding},
				},
			},
			Payload: payload,
		})

		// Batch in slices of 100 so a large ingestion cannot build one
		// giant request.
		if len(points) >= 100 {
			if err := s.upsert(ctx, points); err != nil {
				return err
			}
			points = points[:0]
		}
	}

	if len(points) > 0 {
		return s.upsert(ctx, points)
	}
	return nil
}

func (s *QdrantStore) upsert(ctx context.Context, points []*qdrantclient.PointStruct) error {
	_, err := s.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: s.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	return nil
}

// Search embeds the query and returns the k nearest fragments, restricted by
// metadata filter (exact match on every key/value pair).
func (s *QdrantStore) Search(ctx context.Context, query string, k int, filter map[string]string) ([]models.Fragment, error) {
	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	req := &qdrantclient.SearchPoints{
		CollectionName: s.collection,
		Vector:         embedding,
		Limit:          uint64(k),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Enable{Enable: true},
		},
	}

	if len(filter) > 0 {
		var must []*qdrantclient.Condition
		for key, value := range filter {
			must = append(must, &qdrantclient.Condition{
				ConditionOneOf: &qdrantclient.Condition_Field{
					Field: &qdrantclient.FieldCondition{
						Key: key,
						Match: &qdrantclient.Match{
							MatchValue: &qdrantclient.Match_Keyword{Keyword: value},
						},
					},
				},
			})
		}
		req.Filter = &qdrantclient.Filter{Must: must}
	}

	resp, err := s.points.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vector search failed: %w", err)
	}

	fragments := make([]models.Fragment, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		frag := models.Fragment{
			Metadata: make(map[string]string),
			Distance: point.GetScore(),
		}
		for key, value := range point.GetPayload() {
			if key == "text" {
				frag.Text = value.GetStringValue()
				continue
			}
			frag.Metadata[key] = value.GetStringValue()
		}
		fragments = append(fragments, frag)
	}

	return fragments, nil
}
