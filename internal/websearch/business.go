package websearch

import (
	"context"
	"fmt"

	"github.com/kelpglobal/teaserforge/internal/types"
)

// snippetChars caps the stored length of each market or partner snippet.
const snippetChars = 300

// searchBusinessInfo gathers market context and partnership mentions, one
// query per category.
func (e *Enricher) searchBusinessInfo(ctx context.Context, companyName, rawText string) (types.BusinessInfo, []types.Citation) {
	var info types.BusinessInfo
	var citations []types.Citation

	marketQueries := e.generateQueries(ctx, companyName, rawText, "business_info")
	if len(marketQueries) > 0 {
		results, err := e.Text.Search(ctx, marketQueries[0], 5)
		if err != nil {
			fmt.Printf("   Warning: market info search failed: %v\n", err)
		} else {
			for _, result := range results {
				info.MarketInfo = append(info.MarketInfo, snippetFrom(result))
				citations = append(citations, types.Citation{
					Type:        "market_info",
					URL:         result.URL,
					Description: result.Title,
				})
			}
			e.Sleep(businessSearchDelay)
		}
	}

	partnerQueries := e.generateQueries(ctx, companyName, rawText, "partners")
	if len(partnerQueries) > 0 {
		results, err := e.Text.Search(ctx, partnerQueries[0], 5)
		if err != nil {
			fmt.Printf("   Warning: partner search failed: %v\n", err)
		} else {
			for _, result := range results {
				info.Partners = append(info.Partners, snippetFrom(result))
				citations = append(citations, types.Citation{
					Type:        "partner",
					URL:         result.URL,
					Description: result.Title,
				})
			}
		}
	}

	return info, citations
}

func snippetFrom(result TextResult) types.Snippet {
	body := result.Body
	if len(body) > snippetChars {
		body = body[:snippetChars]
	}
	return types.Snippet{
		Title:   result.Title,
		Snippet: body,
		URL:     result.URL,
	}
}
