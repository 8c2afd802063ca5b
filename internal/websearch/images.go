package websearch

import (
	"context"
	"fmt"

	"github.com/kelpglobal/teaserforge/internal/types"
)

// searchImages collects generic stock images. Only the first two generated
// queries are used and the total is capped at twice the per-query limit so a
// verbose query list cannot blow up the image count.
func (e *Enricher) searchImages(ctx context.Context, companyName, rawText string) ([]types.ImageResult, []types.Citation) {
	queries := e.generateQueries(ctx, companyName, rawText, "images")
	if len(queries) > 2 {
		queries = queries[:2]
	}

	var results []types.ImageResult
	var citations []types.Citation

	for i, query := range queries {
		images, err := e.Images.Search(ctx, query, e.MaxImages)
		if err != nil {
			fmt.Printf("   Warning: image search for %q failed: %v\n", query, err)
			continue
		}

		for _, img := range images {
			results = append(results, img)
			citations = append(citations, types.Citation{
				Type:            "image",
				URL:             img.URL,
				Source:          img.Source,
				Description:     "Stock photo from Unsplash: " + query,
				Photographer:    img.Photographer,
				PhotographerURL: img.PhotographerURL,
			})
		}

		if i < len(queries)-1 {
			e.Sleep(imageQueryDelay)
		}
	}

	if limit := e.MaxImages * 2; len(results) > limit {
		results = results[:limit]
		citations = citations[:limit]
	}

	return results, citations
}
