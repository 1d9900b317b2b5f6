package retrieval

import (
	"context"
	"fmt"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/internal/domain/commonModels"
	"github.com/asampath/GoRAG/internal/rag/embedding"
	"github.com/asampath/GoRAG/internal/rag/vectorDB"
	"github.com/asampath/GoRAG/pkg/logger_i"
)

// Options selects which evidence pools to query and how many hits per pool.
type Options struct {
	Collections []commonModels.SourceType
	TopK        int
}

func (o Options) normalized() Options {
	if len(o.Collections) == 0 {
		o.Collections = []commonModels.SourceType{
			commonModels.SourceUserDocument,
			commonModels.SourcePolicyDocument,
		}
	}
	if o.TopK <= 0 {
		o.TopK = config.RetrievalTopK
	}
	return o
}

// CollectionName maps an evidence pool onto its vector-store collection.
func CollectionName(source commonModels.SourceType) string {
	if source == commonModels.SourcePolicyDocument {
		return config.PolicyCollectionName
	}
	return config.UserCollectionName
}

// Retriever embeds a question once and queries the requested collections,
// concatenating hits into one bundle. Read-only; no cross-query state.
type Retriever struct {
	store    vectorDB.DataProcessor
	embedder embedding.Embedder
	logger   *logger_i.Logger
}

func NewRetriever(store vectorDB.DataProcessor, embedder embedding.Embedder) *Retriever {
	return &Retriever{
		store:    store,
		embedder: embedder,
		logger:   logger_i.NewLogger("Retriever"),
	}
}

func (r *Retriever) Retrieve(ctx context.Context, question string, opts Options) (commonModels.RetrievalBundle, error) {
	opts = opts.normalized()
	log := r.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	bundle := commonModels.RetrievalBundle{
		PerSource: make(map[commonModels.SourceType]int, len(opts.Collections)),
	}

	vector, err := r.embedder.GetEmbedding(ctx, question)
	if err != nil {
		return bundle, fmt.Errorf("embedding question: %w", err)
	}

	var queried int
	for _, source := range opts.Collections {
		collection := CollectionName(source)

		count, err := r.store.Count(ctx, collection)
		if err != nil {
			// unavailable pool: skip it, the remaining pools still count
			log.Error("Count failed, skipping collection", "collection", collection, "error", err)
			continue
		}
		if count == 0 {
			// no index yet is not an error, just nothing to consult
			log.Debug("Empty collection skipped", "collection", collection)
			continue
		}

		hits, err := r.store.Query(ctx, collection, vector, opts.TopK)
		if err != nil {
			log.Error("Query failed, skipping collection", "collection", collection, "error", err)
			continue
		}
		queried++

		for i := range hits {
			if hits[i].Source == "" {
				hits[i].Source = source
				hits[i].Provenance.Source = source
			}
		}
		bundle.Hits = append(bundle.Hits, hits...)
		bundle.PerSource[source] = len(hits)
	}

	log.Debug("Retrieval finished", "pools_queried", queried, "hits", len(bundle.Hits))
	return bundle, nil
}
