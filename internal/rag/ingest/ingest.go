package ingest

import (
	"context"
	"os"
	"time"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/internal/domain/commonModels"
	"github.com/asampath/GoRAG/internal/domain/jobModel"
	"github.com/asampath/GoRAG/internal/rag/embedding"
	"github.com/asampath/GoRAG/internal/rag/vectorDB"
	"github.com/asampath/GoRAG/pkg/logger_i"
)

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

var logger *logger_i.Logger

// ProcessDocumentIngestion extracts, chunks, embeds and indexes one uploaded
// document into the user collection, then removes the upload temp file.
func ProcessDocumentIngestion(ctx context.Context, job jobModel.Job, e embedding.Embedder, store vectorDB.DataProcessor) jobModel.Job {
	logger = logger_i.NewLogger("Document Ingestion ")
	if traceId, ok := ctx.Value(config.TRACE_ID_KEY).(string); ok {
		logger.With("traceId", traceId)
	}

	docName := job.JobPayload.IngestFileName
	docPath := job.JobPayload.IngestURL
	logger.Debug("Processing document", "filename", docName, "path", docPath)

	job.CurrentStep = jobModel.IngestProcessing
	if err := store.EnsureCollection(ctx, config.UserCollectionName); err != nil {
		logger.Error("Error ensuring collection", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Vector store unavailable"
		return job
	}

	docType := getDocType(docPath)
	if docType == commonModels.ERR {
		logger.Error("Unsupported document type", "path", docPath)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Unsupported document type"
		return job
	}

	doc := commonModels.Document{
		Id:                  job.Id,
		Name:                docName,
		LastIngestTimestamp: time.Now(),
		ContentType:         docType,
		Source:              commonModels.SourceUserDocument,
	}

	rawPages, err := extractText(docPath, doc.ContentType)
	if err != nil {
		logger.Error("Error processing document", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Error extracting document content"
		return job
	}

	chunks := PrepareChunks(rawPages, doc)
	logger.Debug("Processing document", "pages", len(rawPages), "chunks", len(chunks))

	if err := BatchIngest(ctx, config.UserCollectionName, chunks, store, e); err != nil {
		logger.Error("Error indexing document", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Error indexing document content"
		return job
	}

	if err := os.Remove(docPath); err != nil {
		logger.Error("Error removing upload temp file", "error", err)
	}
	job.Status = jobModel.JobStatusComplete
	job.CurrentStep = jobModel.Complete
	return job
}
