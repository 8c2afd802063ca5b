package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kelpglobal/teaserforge/internal/types"
)

const unsplashBaseURL = "https://api.unsplash.com"

// searchTimeout bounds each provider HTTP call.
const searchTimeout = 10 * time.Second

// UnsplashClient queries the Unsplash photo search API. Results are filtered
// to landscape orientation with high content filtering since the images end
// up in an investor-facing deck.
type UnsplashClient struct {
	AccessKey  string
	BaseURL    string
	HTTPClient *http.Client
}

// NewUnsplashClient returns a client for the public Unsplash API. An empty
// access key is allowed; requests then run unauthenticated at a lower rate
// limit.
func NewUnsplashClient(accessKey string) *UnsplashClient {
	return &UnsplashClient{
		AccessKey:  accessKey,
		BaseURL:    unsplashBaseURL,
		HTTPClient: &http.Client{Timeout: searchTimeout},
	}
}

type unsplashPhoto struct {
	Description    string `json:"description"`
	AltDescription string `json:"alt_description"`
	URLs           struct {
		Regular string `json:"regular"`
		Full    string `json:"full"`
	} `json:"urls"`
	Links struct {
		HTML string `json:"html"`
	} `json:"links"`
	User struct {
		Name  string `json:"name"`
		Links struct {
			HTML string `json:"html"`
		} `json:"links"`
	} `json:"user"`
}

type unsplashResponse struct {
	Results []unsplashPhoto `json:"results"`
}

// Search returns up to perPage landscape photos matching query.
func (c *UnsplashClient) Search(ctx context.Context, query string, perPage int) ([]types.ImageResult, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("orientation", "landscape")
	params.Set("content_filter", "high")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building unsplash request: %w", err)
	}
	req.Header.Set("Accept-Version", "v1")
	if c.AccessKey != "" {
		req.Header.Set("Authorization", "Client-ID "+c.AccessKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unsplash request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unsplash returned status %d", resp.StatusCode)
	}

	var parsed unsplashResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding unsplash response: %w", err)
	}

	results := make([]types.ImageResult, 0, len(parsed.Results))
	for _, photo := range parsed.Results {
		title := photo.Description
		if title == "" {
			title = photo.AltDescription
		}
		if title == "" {
			title = "Stock Photo"
		}
		// The regular rendition is the display URL; full resolution is kept
		// separately for downloads and the photo page becomes the source.
		results = append(results, types.ImageResult{
			URL:             photo.URLs.Regular,
			DownloadURL:     photo.URLs.Full,
			Title:           title,
			Source:          photo.Links.HTML,
			Photographer:    photo.User.Name,
			PhotographerURL: photo.User.Links.HTML,
			Type:            "generic",
		})
	}
	return results, nil
}
