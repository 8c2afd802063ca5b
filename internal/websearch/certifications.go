package websearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelpglobal/teaserforge/internal/types"
)

// certificationCatalog lists the quality and compliance standards scanned
// for in the company material. Matching is a case-insensitive substring
// check, so "WHO-GMP" in the text also satisfies "GMP".
var certificationCatalog = []string{
	"ISO 9001",
	"ISO 14001",
	"ISO 22000",
	"ISO 13485",
	"ISO 45001",
	"GMP",
	"WHO-GMP",
	"USFDA",
	"CE Mark",
	"FSSAI",
	"BIS",
	"BRC",
	"FSSC 22000",
	"HACCP",
	"OHSAS 18001",
	"IATF 16949",
	"TS 16949",
	"USDA Organic",
	"Non-GMO",
	"RoHS",
	"FCC",
	"AEO",
	"GDP",
	"C-TPAT",
}

// searchCertifications first scans the provided company material for known
// certification names; anything found there is marked verified. The web is
// consulted only when the local scan finds nothing at all.
func (e *Enricher) searchCertifications(ctx context.Context, companyName, rawText string) ([]types.Certification, []types.Citation) {
	var certs []types.Certification
	var citations []types.Citation
	seen := make(map[string]bool)

	lower := strings.ToLower(rawText)
	for _, name := range certificationCatalog {
		if !strings.Contains(lower, strings.ToLower(name)) {
			continue
		}
		seen[name] = true
		certs = append(certs, types.Certification{
			Name:        name,
			Description: name + " certification standard",
			Verified:    true,
			Source:      "company_data",
		})
		citations = append(citations, types.Citation{
			Type:        "certification",
			Name:        name,
			Source:      "company_data",
			Description: "Certification mentioned in provided company data",
		})
	}

	if len(certs) > 0 {
		return certs, citations
	}

	queries := e.generateQueries(ctx, companyName, rawText, "certifications")
	if len(queries) == 0 {
		return certs, citations
	}

	results, err := e.Text.Search(ctx, queries[0], 3)
	if err != nil {
		fmt.Printf("   Warning: certification search failed: %v\n", err)
		return certs, citations
	}

	for _, result := range results {
		bodyLower := strings.ToLower(result.Body)
		for _, name := range certificationCatalog {
			if seen[name] || !strings.Contains(bodyLower, strings.ToLower(name)) {
				continue
			}
			seen[name] = true
			description := result.Body
			if len(description) > 200 {
				description = description[:200]
			}
			certs = append(certs, types.Certification{
				Name:        name,
				Description: description,
				Verified:    false,
				Source:      result.URL,
			})
			citations = append(citations, types.Citation{
				Type:        "certification",
				Name:        name,
				URL:         result.URL,
				Source:      result.URL,
				Description: result.Title,
			})
			break
		}
	}

	return certs, citations
}
