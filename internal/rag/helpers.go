package rag

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/internal/domain/commonModels"
	"github.com/asampath/GoRAG/internal/domain/jobModel"
	"github.com/asampath/GoRAG/internal/metrics"
	"github.com/asampath/GoRAG/internal/rag/classifier"
	"github.com/asampath/GoRAG/internal/rag/retrieval"
	"github.com/asampath/GoRAG/pkg/logger_i"
)

func returnOutput(job jobModel.Job, ans string) jobModel.Job {
	job.JobPayload.Answer = ans
	job.CurrentStep = jobModel.Complete
	return job
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("ProcessRequest", "Current Status", job.CurrentStep)
	return job
}

func (s *service) jobError(job jobModel.Job, err error, message string, canRetry bool) jobModel.Job {
	s.logger.Error(message, "error", err)

	code := http.StatusInternalServerError
	userMessage := "Internal Server Error"
	if message == "MALFORMED_INPUT" {
		code = http.StatusBadRequest
		userMessage = "Question text is required"
	}

	job.Error = jobModel.JobError{
		Code:    code,
		Message: userMessage,
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

func (s *service) executeClassifierStep(log *logger_i.Logger, job *jobModel.Job) classifier.Label {
	*job = logOutput(*job, jobModel.ClassifierCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("classification", time.Since(start)) }()

	label := s.classifier.Classify(job.JobPayload.Question)
	log.Debug("Question classified", "label", label)
	return label
}

func (s *service) executeRetrievalStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) commonModels.RetrievalBundle {
	*job = logOutput(*job, jobModel.RetrievalCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("retrieval", time.Since(start)) }()

	bundle, err := s.retriever.Retrieve(ctx, job.JobPayload.Question, retrieval.Options{})
	if err != nil {
		// an unavailable retriever is the same routing state as an
		// empty index: fall through the chain with no local context
		log.Error("Retrieval failed, continuing without local context", "error", err)
	}
	return bundle
}

func (s *service) executeWebSearchStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job) []string {
	*job = logOutput(*job, jobModel.WebSearchCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("web_search", time.Since(start)) }()

	searchCtx, cancel := context.WithTimeout(ctx, config.WebSearchTimeout)
	defer cancel()

	snippets := s.searcher.Search(searchCtx, job.JobPayload.Question, config.WebSnippetCount)
	log.Debug("Web search finished", "snippets", len(snippets))
	return snippets
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, prompt string) (string, error) {
	*job = logOutput(*job, jobModel.LLMCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	genCtx, cancel := context.WithTimeout(ctx, config.GenerationTimeout)
	defer cancel()

	return s.llmProvider.Generate(genCtx, prompt)
}

// buildPrompt assembles instructions, context, recent chat history and the
// question. Context pieces stay in retrieval order, never re-ranked; if their
// concatenation exceeds the character budget the tail is cut and a marker
// appended, so truncation is always visible in the prompt.
func buildPrompt(instructions string, contextParts []string, history []string, question string) string {
	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString("\n\n")

	if len(contextParts) > 0 {
		b.WriteString("Context:\n")
		b.WriteString(truncateContext(contextParts, config.MaxContextChars))
		b.WriteString("\n\n")
	}

	if len(history) > 0 {
		b.WriteString("Recent conversation:\n")
		for _, msg := range history {
			b.WriteString(msg)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Question: ")
	b.WriteString(question)
	return b.String()
}

func truncateContext(parts []string, maxChars int) string {
	joined := strings.Join(parts, "\n---\n")
	if len(joined) <= maxChars {
		return joined
	}
	return joined[:maxChars] + config.TruncationMarker
}
