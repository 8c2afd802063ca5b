package types

// ImageResult is a single stock-image hit from the image search provider.
type ImageResult struct {
	URL             string `json:"url"`
	DownloadURL     string `json:"download_url"`
	Title           string `json:"title"`
	Source          string `json:"source"`
	Photographer    string `json:"photographer"`
	PhotographerURL string `json:"photographer_url"`
	Type            string `json:"type"`
}

// Certification records a certification found either directly in the company
// documents (Verified=true, Source="company_data") or in web search snippets
// (Verified=false, Source=the snippet's URL).
type Certification struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Verified    bool   `json:"verified"`
	Source      string `json:"source"`
}

// Snippet is a text search result reduced to what the slide deck needs.
type Snippet struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// BusinessInfo groups text-search results by category.
type BusinessInfo struct {
	MarketInfo []Snippet `json:"market_info"`
	Partners   []Snippet `json:"partners"`
	Trends     []Snippet `json:"trends"`
}

// Citation links a piece of enriched content back to its provenance.
// URL is set for image and snippet citations, Name for certifications.
type Citation struct {
	Type            string `json:"type"`
	URL             string `json:"url,omitempty"`
	Name            string `json:"name,omitempty"`
	Source          string `json:"source,omitempty"`
	Description     string `json:"description"`
	Photographer    string `json:"photographer,omitempty"`
	PhotographerURL string `json:"photographer_url,omitempty"`
}

// WebData aggregates everything the enrichment stage gathered. Citations are
// ordered by call sequence: images, then certifications, then business info.
type WebData struct {
	Images         []ImageResult   `json:"images"`
	Certifications []Certification `json:"certifications"`
	BusinessInfo   BusinessInfo    `json:"business_info"`
	Citations      []Citation      `json:"citations"`
}

// EmptyWebData returns a WebData with all collections initialized and empty.
// The orchestrator substitutes it when the enrichment stage fails outright.
func EmptyWebData() *WebData {
	return &WebData{
		Images:         []ImageResult{},
		Certifications: []Certification{},
		Citations:      []Citation{},
	}
}
