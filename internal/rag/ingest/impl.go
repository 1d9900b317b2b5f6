package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/internal/domain/commonModels"
	"github.com/asampath/GoRAG/internal/rag/embedding"
	"github.com/asampath/GoRAG/internal/rag/vectorDB"
	"github.com/asampath/GoRAG/pkg/logger_i"
)

func getDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".txt", ".rtf":
		return commonModels.DOCX
	default:
		return commonModels.ERR
	}
}

func extractText(path string, contentType commonModels.DocType) ([]rawPage, error) {
	switch contentType {
	case commonModels.PDF:
		return extractPDF(path)
	case commonModels.DOCX:
		return extractDocxTxtRtf(path)
	default:
		return nil, fmt.Errorf("unsupported content type: %s", contentType)
	}
}

// PrepareChunks splits every page and assigns each chunk a deterministic id
// keyed on the document id and a running ordinal, so re-ingesting the same
// document overwrites its previous chunks instead of duplicating them.
func PrepareChunks(pages []rawPage, doc commonModels.Document) []commonModels.DocChunk {
	var allChunks []commonModels.DocChunk

	ordinal := 0
	for _, page := range pages {
		stringChunks := SplitText(page.Content, config.ChunkSize, config.ChunkOverlap)

		for _, text := range stringChunks {
			allChunks = append(allChunks, commonModels.DocChunk{
				Doc:     doc,
				ChunkId: ChunkKey(doc.Id, ordinal),
				Chunk:   text,
				PageNum: page.Number,
				Ordinal: ordinal,
			})
			ordinal++
		}
	}

	for i := range allChunks {
		allChunks[i].TotalChunks = len(allChunks)
	}

	return allChunks
}

// BatchIngest embeds and upserts chunks in fixed-size batches. A failing
// batch is logged and skipped; retrieval simply sees the subset that made it.
// It errors only when every batch failed.
func BatchIngest(ctx context.Context, collectionName string, chunks []commonModels.DocChunk, store vectorDB.DataProcessor, embedder embedding.Embedder) error {
	logger = logger_i.NewLogger("Batch Ingestion ")
	if traceId, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		logger.With("traceId", traceId)
	}

	if len(chunks) == 0 {
		return nil
	}

	//TODO: each batch can be its own goroutine once we've watched memory under load
	succeeded := 0
	for i := 0; i < len(chunks); i += config.IngestBatchSize {
		end := i + config.IngestBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		currentBatch := chunks[i:end]

		texts := make([]string, 0, len(currentBatch))
		for _, c := range currentBatch {
			texts = append(texts, c.Chunk)
		}

		logger.Debug("Starting embedding call", "batch size", len(currentBatch))
		vectors, err := embedder.BatchEmbedding(ctx, texts)
		if err != nil {
			logger.Error("embedding batch failed, skipping batch", "offset", i, "error", err)
			continue
		}

		if err := store.UpsertBatch(ctx, collectionName, currentBatch, vectors); err != nil {
			logger.Error("upsert batch failed, skipping batch", "offset", i, "error", err)
			continue
		}
		succeeded += len(currentBatch)
	}

	if succeeded == 0 {
		return fmt.Errorf("no chunk batch could be indexed into %s", collectionName)
	}
	logger.Debug("Ingestion finished", "indexed", succeeded, "total", len(chunks))
	return nil
}
