package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/internal/domain/commonModels"
	"github.com/asampath/GoRAG/internal/rag/embedding"
	"github.com/asampath/GoRAG/internal/rag/vectorDB"
	"github.com/asampath/GoRAG/pkg/logger_i"
)

// policyDocID derives a stable document id from the filename, so reloading
// the folder overwrites existing chunks instead of duplicating them.
func policyDocID(fileName string) string {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	base = strings.ToLower(strings.ReplaceAll(base, " ", "_"))
	return "policy_" + base
}

// LoadPolicyFolder indexes every supported file in dir into the policy
// collection. An already populated collection is left alone unless force is
// set, in which case it is dropped and rebuilt. A file that fails extraction
// is skipped; the rest of the folder still loads.
func LoadPolicyFolder(ctx context.Context, dir string, e embedding.Embedder, store vectorDB.DataProcessor, force bool) error {
	logger = logger_i.NewLogger("Policy Ingestion ")

	if dir == "" {
		logger.Info("No policy folder configured, skipping policy load")
		return nil
	}

	if force {
		if err := store.DropCollection(ctx, config.PolicyCollectionName); err != nil {
			logger.Error("Error dropping policy collection", "error", err)
		}
	}
	if err := store.EnsureCollection(ctx, config.PolicyCollectionName); err != nil {
		return err
	}

	if !force {
		count, err := store.Count(ctx, config.PolicyCollectionName)
		if err == nil && count > 0 {
			logger.Info("Policy collection already populated, skipping", "chunks", count)
			return nil
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		docType := getDocType(path)
		if docType == commonModels.ERR {
			logger.Debug("Skipping unsupported policy file", "file", entry.Name())
			continue
		}

		rawPages, err := extractText(path, docType)
		if err != nil {
			logger.Error("Error extracting policy document, skipping", "file", entry.Name(), "error", err)
			continue
		}

		doc := commonModels.Document{
			Id:                  policyDocID(entry.Name()),
			Name:                entry.Name(),
			LastIngestTimestamp: time.Now(),
			ContentType:         docType,
			Source:              commonModels.SourcePolicyDocument,
		}

		chunks := PrepareChunks(rawPages, doc)
		if err := BatchIngest(ctx, config.PolicyCollectionName, chunks, store, e); err != nil {
			logger.Error("Error indexing policy document, skipping", "file", entry.Name(), "error", err)
			continue
		}
		loaded++
	}

	logger.Info("Policy folder load finished", "documents", loaded)
	return nil
}
