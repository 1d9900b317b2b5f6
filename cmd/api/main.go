// @title           GoRAG Question-Answering API
// @version         1.0
// @description     Asynchronous question answering over indexed documents with web-search and unscoped-generation fallbacks, plus cached speech synthesis.
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/internal/data/redisStore"
	"github.com/asampath/GoRAG/internal/data/store"
	jobmodel "github.com/asampath/GoRAG/internal/domain/jobModel"
	"github.com/asampath/GoRAG/internal/handlers"
	"github.com/asampath/GoRAG/internal/httpclient"
	"github.com/asampath/GoRAG/internal/job"
	"github.com/asampath/GoRAG/internal/rag"
	"github.com/asampath/GoRAG/internal/rag/classifier"
	"github.com/asampath/GoRAG/internal/rag/embedding"
	"github.com/asampath/GoRAG/internal/rag/embedding/googleEmbedding"
	"github.com/asampath/GoRAG/internal/rag/embedding/openaiEmbedding"
	"github.com/asampath/GoRAG/internal/rag/ingest"
	"github.com/asampath/GoRAG/internal/rag/llm/gemini"
	"github.com/asampath/GoRAG/internal/rag/tts"
	"github.com/asampath/GoRAG/internal/rag/ttscache"
	"github.com/asampath/GoRAG/internal/rag/vectorDB/qdrantDB"
	"github.com/asampath/GoRAG/internal/rag/websearch"
	"github.com/asampath/GoRAG/internal/server"
	"github.com/asampath/GoRAG/internal/worker"
	"github.com/asampath/GoRAG/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	config.LoadDotEnv()
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
	}
	logger.Info("Starting job service")

	redisJobs := store.GetRedisJobStore(serviceContext)
	redisMessages := store.GetRedisMessageStore(serviceContext)
	if redisJobs == nil || redisMessages == nil {
		logger.Error("Redis stores are offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.MessageStore = store.InitMessageStore()
	} else {
		serviceConfig.JobStore = redisJobs
		serviceConfig.MessageStore = redisMessages
	}
	service := job.InitJobService(serviceConfig)

	//external collaborators - everything is constructed here and injected,
	//no package-level instances
	vectorDB, err := qdrantDB.NewClient(serviceContext)
	if err != nil {
		logger.Error("Vector store failed to initialize. Shutting down.", "error", err)
		return
	}

	embedder, err := embedding.ProviderFactory{
		NewGoogle: googleEmbedding.NewClient,
		NewOpenAI: openaiEmbedding.NewClient,
	}.Select(serviceContext)
	if err != nil {
		logger.Error("Embedding provider failed to initialize. Shutting down.", "error", err)
		return
	}

	llmProvider, err := gemini.NewClient(serviceContext, config.GeminiAPIKey(), config.GeminiModelName)
	if err != nil {
		logger.Error("LLM provider failed to initialize. Shutting down.", "error", err)
		return
	}

	searcher := websearch.NewSerpClient(config.SerpAPIKey(), httpclient.NewPooled())

	var synth tts.Producer
	if key := config.ElevenLabsAPIKey(); key != "" {
		synth = tts.NewElevenLabsClient(key, httpclient.NewPooled())
	} else {
		logger.Warn("ELEVENLABS_API_KEY not set - speech synthesis disabled")
	}

	ragService := rag.NewService(
		vectorDB,
		llmProvider,
		embedder,
		classifier.NewKeywordStrategy(),
		searcher,
		ttscache.New(buildAudioCacheKV(serviceContext, logger)),
		synth,
	)

	//policy documents load in the background; queries run against whatever
	//subset is indexed so far
	go func() {
		if err := ingest.LoadPolicyFolder(serviceContext, config.PolicyDocsDir(), embedder, vectorDB, config.PolicyForceReload()); err != nil {
			logger.Error("Policy folder load failed", "error", err)
		}
	}()

	handlers.InitHandlers(service, ragService)

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}

// buildAudioCacheKV selects the response-cache backend; anything that fails
// to come up falls back to the in-process map.
func buildAudioCacheKV(ctx context.Context, logger *logger_i.Logger) ttscache.KV {
	switch backend := config.AudioCacheBackend(); backend {
	case "memory":
		return ttscache.NewMemoryKV()
	case "redis":
		if rs := redisStore.GetRedisStore(ctx, config.RedisAudioCache); rs != nil {
			return ttscache.NewRedisKV(rs)
		}
		logger.Error("Redis audio cache unavailable, using in-memory cache")
		return ttscache.NewMemoryKV()
	default:
		kv, err := ttscache.NewFileKV("")
		if err != nil {
			logger.Error("File audio cache unavailable, using in-memory cache", "error", err)
			return ttscache.NewMemoryKV()
		}
		return kv
	}
}
