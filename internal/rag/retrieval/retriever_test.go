package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/internal/domain/commonModels"
)

type fakeStore struct {
	counts  map[string]uint64
	hits    map[string][]commonModels.RetrievalHit
	queried []string
	failOn  string
}

func (f *fakeStore) EnsureCollection(ctx context.Context, name string) error { return nil }
func (f *fakeStore) DropCollection(ctx context.Context, name string) error   { return nil }
func (f *fakeStore) UpsertBatch(ctx context.Context, name string, chunks []commonModels.DocChunk, vectors [][]float32) error {
	return nil
}

func (f *fakeStore) Count(ctx context.Context, name string) (uint64, error) {
	return f.counts[name], nil
}

func (f *fakeStore) Query(ctx context.Context, name string, vector []float32, k int) ([]commonModels.RetrievalHit, error) {
	if name == f.failOn {
		return nil, errors.New("collection offline")
	}
	f.queried = append(f.queried, name)
	return f.hits[name], nil
}

type fakeEmbedder struct{}

func (fakeEmbedder) GetEmbedding(ctx context.Context, q string) ([]float32, error) {
	return []float32{0.1, 0.2}, nil
}
func (fakeEmbedder) BatchEmbedding(ctx context.Context, c []string) ([][]float32, error) {
	return make([][]float32, len(c)), nil
}

func userHit(text string) commonModels.RetrievalHit {
	return commonModels.RetrievalHit{
		Text:   text,
		Source: commonModels.SourceUserDocument,
		Provenance: commonModels.Provenance{
			Source:     commonModels.SourceUserDocument,
			DocumentId: "doc-1",
		},
	}
}

func policyHit(text string) commonModels.RetrievalHit {
	return commonModels.RetrievalHit{
		Text:   text,
		Source: commonModels.SourcePolicyDocument,
		Provenance: commonModels.Provenance{
			Source:   commonModels.SourcePolicyDocument,
			FileName: "fha_handbook.pdf",
			Page:     12,
		},
	}
}

func TestRetrieve_MergesPoolsInOrder(t *testing.T) {
	store := &fakeStore{
		counts: map[string]uint64{
			config.UserCollectionName:   3,
			config.PolicyCollectionName: 7,
		},
		hits: map[string][]commonModels.RetrievalHit{
			config.UserCollectionName:   {userHit("u1"), userHit("u2")},
			config.PolicyCollectionName: {policyHit("p1")},
		},
	}

	r := NewRetriever(store, fakeEmbedder{})
	bundle, err := r.Retrieve(context.Background(), "what is on page 3?", Options{})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	if got := bundle.DocumentsFound(); got != 3 {
		t.Fatalf("DocumentsFound = %d; want 3", got)
	}
	// user pool first, then policy pool, hit order preserved
	wantTexts := []string{"u1", "u2", "p1"}
	for i, want := range wantTexts {
		if bundle.Hits[i].Text != want {
			t.Errorf("hit %d = %q; want %q", i, bundle.Hits[i].Text, want)
		}
	}
	if bundle.Hits[2].Provenance.FileName != "fha_handbook.pdf" {
		t.Errorf("policy provenance lost: %+v", bundle.Hits[2].Provenance)
	}
	if bundle.PerSource[commonModels.SourceUserDocument] != 2 ||
		bundle.PerSource[commonModels.SourcePolicyDocument] != 1 {
		t.Errorf("per-source counts wrong: %v", bundle.PerSource)
	}
}

func TestRetrieve_SkipsEmptyCollection(t *testing.T) {
	store := &fakeStore{
		counts: map[string]uint64{
			config.UserCollectionName:   0,
			config.PolicyCollectionName: 5,
		},
		hits: map[string][]commonModels.RetrievalHit{
			config.PolicyCollectionName: {policyHit("p1")},
		},
	}

	r := NewRetriever(store, fakeEmbedder{})
	bundle, err := r.Retrieve(context.Background(), "question", Options{})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}

	for _, name := range store.queried {
		if name == config.UserCollectionName {
			t.Error("empty collection should be skipped, not queried")
		}
	}
	if bundle.DocumentsFound() != 1 {
		t.Errorf("DocumentsFound = %d; want 1", bundle.DocumentsFound())
	}
}

func TestRetrieve_OnePoolFailingDoesNotAbort(t *testing.T) {
	store := &fakeStore{
		counts: map[string]uint64{
			config.UserCollectionName:   2,
			config.PolicyCollectionName: 2,
		},
		hits: map[string][]commonModels.RetrievalHit{
			config.PolicyCollectionName: {policyHit("p1")},
		},
		failOn: config.UserCollectionName,
	}

	r := NewRetriever(store, fakeEmbedder{})
	bundle, err := r.Retrieve(context.Background(), "question", Options{})
	if err != nil {
		t.Fatalf("Retrieve should tolerate one failing pool: %v", err)
	}
	if bundle.DocumentsFound() != 1 {
		t.Errorf("DocumentsFound = %d; want 1 from the surviving pool", bundle.DocumentsFound())
	}
}

func TestRetrieve_SingleCollectionOption(t *testing.T) {
	store := &fakeStore{
		counts: map[string]uint64{
			config.UserCollectionName:   2,
			config.PolicyCollectionName: 2,
		},
		hits: map[string][]commonModels.RetrievalHit{
			config.UserCollectionName:   {userHit("u1")},
			config.PolicyCollectionName: {policyHit("p1")},
		},
	}

	r := NewRetriever(store, fakeEmbedder{})
	bundle, err := r.Retrieve(context.Background(), "question", Options{
		Collections: []commonModels.SourceType{commonModels.SourcePolicyDocument},
	})
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(store.queried) != 1 || store.queried[0] != config.PolicyCollectionName {
		t.Errorf("queried collections = %v; want policy only", store.queried)
	}
	if bundle.Hits[0].Text != "p1" {
		t.Errorf("unexpected hit: %+v", bundle.Hits[0])
	}
}
