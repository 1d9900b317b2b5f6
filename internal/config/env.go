package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv reads a .env file if one exists. Real environment variables win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// Secrets and deploy-specific knobs. Everything degrades gracefully when
// unset: collaborators report themselves unconfigured instead of crashing.

func GeminiAPIKey() string     { return os.Getenv("GEMINI_API_KEY") }
func OpenAIAPIKey() string     { return os.Getenv("OPENAI_API_KEY") }
func SerpAPIKey() string       { return os.Getenv("SERPAPI_API_KEY") }
func ElevenLabsAPIKey() string { return os.Getenv("ELEVENLABS_API_KEY") }

func AuthToken() string  { return os.Getenv("API_AUTH_TOKEN") }
func NoAuthBypass() bool { return envBool("NO_AUTH_BYPASS", false) }

func RedisPassword() string { return os.Getenv("REDIS_PASSWORD") }

// EmbeddingProvider selects the embedder implementation: "google" or "openai".
func EmbeddingProvider() string { return envOr("EMBEDDING_PROVIDER", "google") }

// WebSearchOnGeneral enables the superset routing: lexically general questions
// go through web search even when local context exists. Disabling it reduces
// the chain to the context-empty-only variant.
func WebSearchOnGeneral() bool { return envBool("WEB_SEARCH_ON_GENERAL", true) }

// AudioCacheBackend selects the response-cache store: "fs", "memory" or "redis".
func AudioCacheBackend() string { return envOr("AUDIO_CACHE_BACKEND", "fs") }

// PolicyDocsDir points at the folder of policy PDFs loaded on startup.
// Empty disables the startup load.
func PolicyDocsDir() string { return os.Getenv("POLICY_DOCS_DIR") }

func PolicyForceReload() bool { return envBool("POLICY_FORCE_RELOAD", false) }
