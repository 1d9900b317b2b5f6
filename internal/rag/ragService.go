package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/internal/domain/commonModels"
	"github.com/asampath/GoRAG/internal/domain/jobModel"
	"github.com/asampath/GoRAG/internal/metrics"
	"github.com/asampath/GoRAG/internal/rag/classifier"
	"github.com/asampath/GoRAG/internal/rag/embedding"
	"github.com/asampath/GoRAG/internal/rag/ingest"
	"github.com/asampath/GoRAG/internal/rag/llm"
	"github.com/asampath/GoRAG/internal/rag/retrieval"
	"github.com/asampath/GoRAG/internal/rag/tts"
	"github.com/asampath/GoRAG/internal/rag/ttscache"
	"github.com/asampath/GoRAG/internal/rag/vectorDB"
	"github.com/asampath/GoRAG/internal/rag/websearch"
	"github.com/asampath/GoRAG/pkg/logger_i"
)

// Service is the contract the workers and handlers call. They never see the
// vector store, LLM clients or the audio cache behind it; swapping real
// collaborators for mocks in tests needs no worker changes.
type Service interface {
	ProcessRequest(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
	SynthesizeCached(ctx context.Context, text string, voice tts.VoiceConfig) ([]byte, error)
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	retriever   *retrieval.Retriever
	classifier  classifier.Strategy
	searcher    websearch.Searcher
	audioCache  *ttscache.Cache
	synth       tts.Producer

	// superset routing sends GENERAL questions to web search even when
	// local context exists; the reduced variant goes to the web only when
	// retrieval came back empty
	webSearchOnGeneral bool

	logger *logger_i.Logger
}

// NewService wires the fallback chain. All collaborators are injected; there
// is no package-level instance.
func NewService(
	vector vectorDB.DataProcessor,
	llmProvider llm.Provider,
	em embedding.Embedder,
	cls classifier.Strategy,
	searcher websearch.Searcher,
	audioCache *ttscache.Cache,
	synth tts.Producer,
) Service {
	return &service{
		vectorDB:           vector,
		llmProvider:        llmProvider,
		embedder:           em,
		retriever:          retrieval.NewRetriever(vector, em),
		classifier:         cls,
		searcher:           searcher,
		audioCache:         audioCache,
		synth:              synth,
		webSearchOnGeneral: config.WebSearchOnGeneral(),
		logger:             logger_i.NewLogger("RAG Service :"),
	}
}

// ProcessRequest runs one question through the fallback chain:
// classify -> retrieve -> (web search ->) generate. A failing source never
// aborts the query; the chain advances to the next fallback, and the caller
// always gets some textual answer back.
func (s *service) ProcessRequest(ctx context.Context, jobt jobModel.Job, messageHistory []string) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY), "JobId", jobt.Id)

	if jobt.JobPayload.Question == "" {
		return s.jobError(jobt, errors.New("empty question"), "MALFORMED_INPUT", false)
	}

	processContext, cancel := context.WithTimeout(ctx, config.QueryProcessTimeout)
	defer cancel()

	// Classifier
	label := s.executeClassifierStep(inMethodLogger, &jobt)

	// Retrieval across both evidence pools
	bundle := s.executeRetrievalStep(processContext, inMethodLogger, &jobt)
	jobt.JobPayload.DocumentsFound = bundle.DocumentsFound()

	// Routing decision
	var contextParts []string
	var sources []commonModels.Provenance
	instructions := localContextInstructions

	if !bundle.Empty() {
		for _, hit := range bundle.Hits {
			contextParts = append(contextParts, hit.Text)
		}
		sources = bundle.Provenances()
	}

	goWeb := bundle.Empty()
	if s.webSearchOnGeneral && label == classifier.General {
		goWeb = true
	}

	if goWeb {
		snippets := s.executeWebSearchStep(processContext, inMethodLogger, &jobt)
		if len(snippets) > 0 {
			// substitute context: live snippets replace whatever the
			// local pools returned
			contextParts = snippets
			instructions = webContextInstructions
			jobt.JobPayload.WebSearchUsed = true
			metrics.CountFallbackStage("web_search")
		} else if bundle.Empty() {
			// nothing local, nothing live: unscoped generation
			contextParts = nil
			sources = nil
			instructions = unscopedInstructions
			metrics.CountFallbackStage("unscoped")
		} else {
			// web search came back empty but local context exists
			metrics.CountFallbackStage("local_context")
		}
	} else {
		metrics.CountFallbackStage("local_context")
	}

	prompt := buildPrompt(instructions, contextParts, messageHistory, jobt.JobPayload.Question)

	// Generation
	answer, err := s.executeLLMStep(processContext, inMethodLogger, &jobt, prompt)
	if err == nil && strings.TrimSpace(answer) == "" {
		err = errors.New("generator returned empty answer")
	}
	if err != nil {
		// the generator being down is a recoverable failure: answer
		// with an apology rather than failing the job
		inMethodLogger.Error("LLM generation failed, returning fallback answer", "error", err)
		answer = generationFailureAnswer
	}

	jobt.JobPayload.Sources = sources
	return returnOutput(jobt, answer)
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Document_ingestion", time.Since(start)) }()
	j := ingest.ProcessDocumentIngestion(ctx, job, s.embedder, s.vectorDB)
	if j.Status != jobModel.JobStatusComplete {
		return s.jobError(j, errors.New("ingest Document Failed"), "INGESTION_FAILURE", true)
	}
	return j
}

// SynthesizeCached renders text to audio through the response cache; a
// repeated (text, voice) pair never reaches the synthesizer twice.
func (s *service) SynthesizeCached(ctx context.Context, text string, voice tts.VoiceConfig) ([]byte, error) {
	if text == "" {
		return nil, errors.New("empty text")
	}
	if s.synth == nil {
		return nil, fmt.Errorf("speech synthesis is not configured")
	}

	lookupStart := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(lookupStart)) }()

	return s.audioCache.GetOrCreate(ctx, text, voice.CacheParams(), func(produceCtx context.Context) ([]byte, error) {
		start := time.Now()
		defer func() { metrics.CaptureExecutionMetrics("tts", time.Since(start)) }()
		synthCtx, cancel := context.WithTimeout(produceCtx, config.SynthesisTimeout)
		defer cancel()
		return s.synth.Synthesize(synthCtx, text, voice)
	})
}
