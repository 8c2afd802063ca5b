package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const tavilyBaseURL = "https://api.tavily.com"

// TavilyClient queries the Tavily web search API for text results.
type TavilyClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewTavilyClient returns a client for the Tavily search API. An empty API
// key is allowed; searches then return no results instead of failing.
func NewTavilyClient(apiKey string) *TavilyClient {
	return &TavilyClient{
		APIKey:     apiKey,
		BaseURL:    tavilyBaseURL,
		HTTPClient: &http.Client{Timeout: searchTimeout},
	}
}

type tavilyRequest struct {
	APIKey            string `json:"api_key"`
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	MaxResults        int    `json:"max_results"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
}

type tavilyResponse struct {
	Results []struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		URL     string `json:"url"`
	} `json:"results"`
}

// Search returns up to maxResults web results for query.
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]TextResult, error) {
	if c.APIKey == "" {
		fmt.Printf("   Warning: TAVILY_API_KEY not set. Skipping text search.\n")
		return nil, nil
	}

	payload, err := json.Marshal(tavilyRequest{
		APIKey:            c.APIKey,
		Query:             query,
		SearchDepth:       "basic",
		MaxResults:        maxResults,
		IncludeAnswer:     true,
		IncludeRawContent: false,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding tavily request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building tavily request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tavily request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily returned status %d", resp.StatusCode)
	}

	var parsed tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding tavily response: %w", err)
	}

	results := make([]TextResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		results = append(results, TextResult{Title: r.Title, Body: r.Content, URL: r.URL})
	}
	return results, nil
}
