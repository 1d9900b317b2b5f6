package tts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/asampath/GoRAG/internal/config"
)

func TestSynthesize_RequestShapeAndAudio(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("xi-api-key"); got != "test-key" {
			t.Errorf("xi-api-key = %q", got)
		}
		if !strings.HasSuffix(r.URL.Path, "/voice-1") {
			t.Errorf("voice id missing from path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("output_format"); got != config.AudioOutputFormat {
			t.Errorf("output_format = %q", got)
		}

		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		if body["text"] != "hello there" {
			t.Errorf("text = %q", body["text"])
		}
		if body["model_id"] != config.ElevenLabsModelID {
			t.Errorf("model_id = %q", body["model_id"])
		}

		w.Write([]byte("mp3 bytes"))
	}))
	defer srv.Close()

	client := NewElevenLabsClientAt("test-key", srv.URL, srv.Client())
	audio, err := client.Synthesize(context.Background(), "hello there", VoiceConfig{VoiceID: "voice-1"})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if string(audio) != "mp3 bytes" {
		t.Errorf("audio = %q", audio)
	}
}

func TestSynthesize_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewElevenLabsClientAt("bad-key", srv.URL, srv.Client())
	if _, err := client.Synthesize(context.Background(), "hello", VoiceConfig{}); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestSynthesize_Unconfigured(t *testing.T) {
	client := NewElevenLabsClient("", http.DefaultClient)
	if _, err := client.Synthesize(context.Background(), "hello", VoiceConfig{}); err == nil {
		t.Error("expected error when api key is missing")
	}
}

func TestCacheParams_Deterministic(t *testing.T) {
	a := VoiceConfig{VoiceID: "v1"}.CacheParams()
	b := VoiceConfig{VoiceID: "v1"}.CacheParams()
	if a["voice_id"] != b["voice_id"] || a["model_id"] != b["model_id"] || a["output_format"] != b["output_format"] {
		t.Error("identical configs must flatten identically")
	}
	if a["model_id"] != config.ElevenLabsModelID {
		t.Errorf("defaults not applied: %+v", a)
	}
}
