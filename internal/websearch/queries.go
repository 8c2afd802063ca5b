package websearch

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kelpglobal/teaserforge/internal/llm"
	"github.com/kelpglobal/teaserforge/internal/prompts"
)

// queryTemperature is higher than the extraction temperature so query
// generation produces varied phrasings.
const queryTemperature = 0.7

// maxQueries caps the number of queries kept per category.
const maxQueries = 5

// contextChars limits how much of the raw corpus is fed into the
// query-generation prompt.
const contextChars = 2000

// fallbackQueries are used whenever query generation fails or returns an
// empty or malformed reply.
var fallbackQueries = map[string][]string{
	"images":         {"generic manufacturing products stock photo", "industrial facility interior"},
	"certifications": {"ISO 9001 certification", "industry certifications"},
	"business_info":  {"industry market trends", "sector growth analysis"},
	"partners":       {"business partnerships", "industry collaborations"},
}

// generateQueries asks the model for 3-5 search queries for the given
// category. Image queries are explicitly kept generic and anonymized by the
// prompt. On any failure a fixed per-category query list is returned instead.
func (e *Enricher) generateQueries(ctx context.Context, companyName, rawText, searchType string) []string {
	truncated := rawText
	if len(truncated) > contextChars {
		truncated = truncated[:contextChars]
	}

	template := prompts.MustGet("websearch.json", "generate-search-queries")
	prompt := prompts.Format(template, map[string]string{
		"CompanyName": companyName,
		"CompanyData": truncated,
		"SearchType":  searchType,
	})

	responseText, err := e.Client.GenerateContent(ctx, prompt, llm.TierLite, queryTemperature)
	if err != nil {
		fmt.Printf("   Warning: query generation for %s failed: %v, using fallback\n", searchType, err)
		return fallbacksFor(searchType)
	}

	var queries []string
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &queries); err != nil || len(queries) == 0 {
		fmt.Printf("   Warning: query generation for %s returned an invalid reply, using fallback\n", searchType)
		return fallbacksFor(searchType)
	}

	if len(queries) > maxQueries {
		queries = queries[:maxQueries]
	}
	return queries
}

func fallbacksFor(searchType string) []string {
	if queries, ok := fallbackQueries[searchType]; ok {
		return queries
	}
	return []string{"general search"}
}
