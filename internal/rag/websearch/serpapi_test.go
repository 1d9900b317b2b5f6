package websearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch_ReturnsNonEmptySnippets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "key-123" {
			t.Errorf("api key not forwarded, got %q", r.URL.Query().Get("api_key"))
		}
		w.Write([]byte(`{"organic_results":[
			{"snippet":"30-year fixed rates averaged 6.5% in Q3."},
			{"snippet":""},
			{"snippet":"FHA loans require a 3.5% down payment."}
		]}`))
	}))
	defer server.Close()

	c := NewSerpClientAt("key-123", server.URL, server.Client())
	snippets := c.Search(context.Background(), "average mortgage rate", 5)

	if len(snippets) != 2 {
		t.Fatalf("got %d snippets; want 2 (empty ones skipped)", len(snippets))
	}
	if snippets[0] != "30-year fixed rates averaged 6.5% in Q3." {
		t.Errorf("unexpected first snippet: %q", snippets[0])
	}
}

func TestSearch_UnconfiguredReturnsEmpty(t *testing.T) {
	c := NewSerpClient("", http.DefaultClient)
	if got := c.Search(context.Background(), "anything", 5); len(got) != 0 {
		t.Errorf("unconfigured search should return empty, got %v", got)
	}
}

func TestSearch_ServerErrorReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewSerpClientAt("key-123", server.URL, server.Client())
	if got := c.Search(context.Background(), "anything", 5); len(got) != 0 {
		t.Errorf("failing search should return empty, got %v", got)
	}
}

func TestSearch_CapsAtK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"organic_results":[
			{"snippet":"a"},{"snippet":"b"},{"snippet":"c"},{"snippet":"d"}
		]}`))
	}))
	defer server.Close()

	c := NewSerpClientAt("key-123", server.URL, server.Client())
	if got := c.Search(context.Background(), "anything", 2); len(got) != 2 {
		t.Errorf("expected 2 snippets, got %d", len(got))
	}
}
