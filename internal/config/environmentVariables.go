package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internal in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	EmbeddingOutputDimensionality int32 = 1536

	//collections - policy docs and user uploads are independent evidence pools
	UserCollectionName   = "user-documents"
	PolicyCollectionName = "policy-documents"

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 30 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = "127.0.0.1"
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false
	QdrantPoolSize          = 1
	QdrantKeepAliveTimeout  = 30 * time.Second

	//ingestion
	ChunkSize             = 1000
	ChunkOverlap          = 200
	IngestBatchSize       = 100
	PageExtractionTimeout = 10 * time.Second

	//retrieval + fallback chain
	MessageHistoryWindow int64 = 5

	RetrievalTopK       = 5
	WebSnippetCount     = 5
	MaxContextChars     = 8000
	TruncationMarker    = "\n[...context truncated...]"
	WebSearchTimeout    = 15 * time.Second
	GenerationTimeout   = 45 * time.Second
	SynthesisTimeout    = 60 * time.Second
	QueryProcessTimeout = 90 * time.Second

	//llm
	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"
	OpenAIEmbeddingModel = "text-embedding-3-small"

	ModelTemperature float32 = 0.7

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//tts
	DefaultVoiceID    = "JBFqnCBsd6RMkjVDRZzb"
	ElevenLabsModelID = "eleven_multilingual_v2"
	AudioOutputFormat = "mp3_44100_128"
	AudioCacheDirName = "audio_cache"
	AudioCacheTTL     = 7 * 24 * time.Hour

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	//redis has 16 DB we can use
	RedisJobStore     = 0
	RedisMessageStore = 1
	RedisAudioCache   = 2

	//redis timeouts
	RedisJobStoreTTL     = 24 * time.Hour
	RedisMessageStoreTTL = 24 * time.Hour
)
