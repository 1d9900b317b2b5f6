package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/pkg/logger_i"
)

const elevenLabsEndpoint = "https://api.elevenlabs.io/v1/text-to-speech"

// VoiceConfig selects the voice and rendering parameters. It is part of the
// response-cache key: same text + same config must always produce the same key.
type VoiceConfig struct {
	VoiceID      string `json:"voice_id"`
	ModelID      string `json:"model_id"`
	OutputFormat string `json:"output_format"`
}

func (v VoiceConfig) withDefaults() VoiceConfig {
	if v.VoiceID == "" {
		v.VoiceID = config.DefaultVoiceID
	}
	if v.ModelID == "" {
		v.ModelID = config.ElevenLabsModelID
	}
	if v.OutputFormat == "" {
		v.OutputFormat = config.AudioOutputFormat
	}
	return v
}

// CacheParams flattens the config into the response-cache key mapping.
func (v VoiceConfig) CacheParams() map[string]string {
	v = v.withDefaults()
	return map[string]string{
		"voice_id":      v.VoiceID,
		"model_id":      v.ModelID,
		"output_format": v.OutputFormat,
	}
}

// Producer is the TTS port, consumed only through the response cache.
type Producer interface {
	Synthesize(ctx context.Context, text string, voice VoiceConfig) ([]byte, error)
}

type ElevenLabsClient struct {
	apiKey   string
	endpoint string
	http     *http.Client
	logger   *logger_i.Logger
}

func NewElevenLabsClient(apiKey string, httpClient *http.Client) *ElevenLabsClient {
	logger := logger_i.NewLogger("tts_elevenlabs")
	if apiKey == "" {
		logger.Warn("ELEVENLABS_API_KEY not set - speech synthesis disabled")
	}
	return &ElevenLabsClient{
		apiKey:   apiKey,
		endpoint: elevenLabsEndpoint,
		http:     httpClient,
		logger:   logger,
	}
}

// NewElevenLabsClientAt points the client at a custom endpoint. Test seam.
func NewElevenLabsClientAt(apiKey, endpoint string, httpClient *http.Client) *ElevenLabsClient {
	c := NewElevenLabsClient(apiKey, httpClient)
	c.endpoint = endpoint
	return c
}

func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string, voice VoiceConfig) ([]byte, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("text-to-speech is not configured (missing api key)")
	}
	voice = voice.withDefaults()
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	body, err := json.Marshal(map[string]string{
		"text":     text,
		"model_id": voice.ModelID,
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s?output_format=%s", c.endpoint, voice.VoiceID, voice.OutputFormat)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("TTS call failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error("TTS returned non-200", "status", resp.StatusCode)
		return nil, fmt.Errorf("tts synthesis failed with status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	log.Debug("synthesized audio", "bytes", len(audio), "chars", len(text))
	return audio, nil
}
