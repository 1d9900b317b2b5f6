package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/pkg/logger_i"
)

const serpEndpoint = "https://serpapi.com/search.json"

// Searcher is the live web-search port. Implementations return an empty
// slice, never an error, when unconfigured or failing - an empty result is a
// routing state, not a fault.
type Searcher interface {
	Search(ctx context.Context, query string, k int) []string
}

type SerpClient struct {
	apiKey   string
	endpoint string
	http     *http.Client
	logger   *logger_i.Logger
}

func NewSerpClient(apiKey string, httpClient *http.Client) *SerpClient {
	logger := logger_i.NewLogger("websearch_serpapi")
	if apiKey == "" {
		logger.Warn("SERPAPI_API_KEY not set - live web search disabled")
	}
	return &SerpClient{
		apiKey:   apiKey,
		endpoint: serpEndpoint,
		http:     httpClient,
		logger:   logger,
	}
}

// NewSerpClientAt points the client at a custom endpoint. Test seam.
func NewSerpClientAt(apiKey, endpoint string, httpClient *http.Client) *SerpClient {
	c := NewSerpClient(apiKey, httpClient)
	c.endpoint = endpoint
	return c
}

type serpResponse struct {
	OrganicResults []struct {
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// Search returns up to k non-empty snippet strings from a Google search.
func (c *SerpClient) Search(ctx context.Context, query string, k int) []string {
	if c.apiKey == "" {
		return nil
	}
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", strconv.Itoa(k))
	params.Set("hl", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		log.Error("building search request failed", "error", err)
		return nil
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("web search call failed", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error("web search returned non-200", "status", resp.StatusCode)
		return nil
	}

	var parsed serpResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		log.Error("decoding search response failed", "error", err)
		return nil
	}

	snippets := make([]string, 0, k)
	for _, result := range parsed.OrganicResults {
		if result.Snippet == "" {
			continue
		}
		snippets = append(snippets, result.Snippet)
		if len(snippets) == k {
			break
		}
	}

	log.Debug("web search finished", "snippets", len(snippets))
	return snippets
}
