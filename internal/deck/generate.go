package deck

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"github.com/kelpglobal/teaserforge/internal/types"
)

// Slide contents are keyed by placeholder index inside each slide part.
// Slide 1 (the cover) is left untouched.
const (
	overviewSlide   = 1 // business overview, portfolio, applications, certs
	financialsSlide = 2
	highlightsSlide = 3
)

var partnerImageSlots = []int{11, 12, 13}

// Generator renders a TeaserProfile into a pptx deck based on a designed
// template. When the template cannot be used it falls back to a minimal
// programmatic deck so a run always produces output.
type Generator struct {
	TemplatePath string
	HTTPClient   *http.Client // image downloads; nil means a default 10s-timeout client
}

func NewGenerator(templatePath string) *Generator {
	return &Generator{TemplatePath: templatePath}
}

// Generate writes the deck at outputPath (uniquified on collision) and
// returns the path actually written.
func (g *Generator) Generate(ctx context.Context, profile *types.TeaserProfile, outputPath string) (string, error) {
	fmt.Printf("Generating presentation for %s...\n", profile.CompanyCodename)

	written, err := g.generateFromTemplate(ctx, profile, outputPath)
	if err == nil {
		return written, nil
	}

	fmt.Printf("   Warning: template generation failed: %v\n", err)
	fmt.Printf("   Falling back to programmatic generation...\n")
	return writeFallbackDeck(profile, outputPath)
}

func (g *Generator) generateFromTemplate(ctx context.Context, profile *types.TeaserProfile, outputPath string) (string, error) {
	pkg, err := openPackage(g.TemplatePath)
	if err != nil {
		return "", err
	}
	slides, err := pkg.slideParts()
	if err != nil {
		return "", err
	}
	fmt.Printf("   Template loaded with %d slides\n", len(slides))

	web := profile.WebData
	if web == nil {
		web = types.EmptyWebData()
	}

	filled := 0

	if len(slides) > overviewSlide {
		part := slides[overviewSlide]
		doc, err := pkg.slideDoc(part)
		if err != nil {
			return "", err
		}
		root := doc.Root()

		certNames := make([]string, 0, len(web.Certifications))
		for _, cert := range web.Certifications {
			certNames = append(certNames, cert.Name)
		}

		filled += fill(root, 10, formatList(profile.BusinessOverview, 4), "business overview")
		filled += fill(root, 14, formatList(profile.ProductPortfolio, 8), "product portfolio")
		filled += fill(root, 15, formatList(profile.Applications, 8), "applications")
		filled += fill(root, 16, formatList(certNames, 8), "certifications")

		g.insertPartnerImages(ctx, pkg, part, root, web)

		if err := pkg.writeSlideDoc(part, doc); err != nil {
			return "", err
		}
	}

	if len(slides) > financialsSlide {
		part := slides[financialsSlide]
		doc, err := pkg.slideDoc(part)
		if err != nil {
			return "", err
		}
		root := doc.Root()

		filled += fill(root, 11, cleanText(profile.Assumptions), "assumptions")
		filled += fill(root, 14, cleanText(profile.MetricsPoint), "metrics point")
		filled += fill(root, 15, cleanText(profile.UpcomingFacility), "upcoming facility")
		// placeholders 10, 12, 13 hold charts and keep their template content

		if err := pkg.writeSlideDoc(part, doc); err != nil {
			return "", err
		}
	}

	if len(slides) > highlightsSlide {
		part := slides[highlightsSlide]
		doc, err := pkg.slideDoc(part)
		if err != nil {
			return "", err
		}
		filled += fill(doc.Root(), 10, formatList(profile.InvestmentHighlights, 5), "investment highlights")
		if err := pkg.writeSlideDoc(part, doc); err != nil {
			return "", err
		}
	}

	fmt.Printf("   Filled %d placeholders\n", filled)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	written, err := uniqueOutputPath(outputPath)
	if err != nil {
		return "", err
	}
	if err := pkg.save(written); err != nil {
		return "", err
	}
	fmt.Printf("   Presentation saved to: %s\n", written)
	return written, nil
}

// fill applies a text placeholder and reports 1 on success for the
// replacement tally.
func fill(root *etree.Element, idx int, text, label string) int {
	if fillTextPlaceholder(root, idx, text) {
		fmt.Printf("      Filled placeholder %d: %s\n", idx, label)
		return 1
	}
	fmt.Printf("      Warning: placeholder %d (%s) not found\n", idx, label)
	return 0
}

// insertPartnerImages downloads up to three partner images and overlays
// them on the picture slots. A URL that is not an image, fails to download,
// or exceeds the size cap leaves its slot untouched. When no partner has a
// URL the general enrichment images are used instead.
func (g *Generator) insertPartnerImages(ctx context.Context, pkg *pptxPackage, slidePart string, root *etree.Element, web *types.WebData) {
	urls := partnerImageURLs(web)
	if len(urls) == 0 {
		return
	}

	stage, err := newImageStage(g.HTTPClient)
	if err != nil {
		fmt.Printf("   Warning: %v\n", err)
		return
	}
	defer stage.cleanup()

	inserted := 0
	for i, slot := range partnerImageSlots {
		if i >= len(urls) {
			break
		}
		url := urls[i]
		if !strings.HasPrefix(url, "http") {
			fmt.Printf("   Warning: no image available for placeholder %d\n", slot)
			continue
		}

		staged, format, err := stage.download(ctx, url, fmt.Sprintf("customer_%d.img", i))
		if err != nil {
			fmt.Printf("   Warning: %v\n", err)
			continue
		}
		data, err := os.ReadFile(staged)
		if err != nil {
			fmt.Printf("   Warning: reading staged image: %v\n", err)
			continue
		}

		ok, err := fillImagePlaceholder(pkg, slidePart, root, slot, data, format)
		if err != nil {
			fmt.Printf("   Warning: inserting image into placeholder %d: %v\n", slot, err)
			continue
		}
		if ok {
			inserted++
		} else {
			fmt.Printf("   Warning: placeholder %d is not a usable picture slot\n", slot)
		}
	}

	if inserted > 0 {
		fmt.Printf("   Inserted %d partner images\n", inserted)
	}
}

// partnerImageURLs picks the image URL candidates for the picture slots:
// partner snippets first, general enrichment images when there are none.
func partnerImageURLs(web *types.WebData) []string {
	var urls []string
	for _, partner := range web.BusinessInfo.Partners {
		if partner.URL != "" {
			urls = append(urls, partner.URL)
		}
	}
	if len(urls) == 0 {
		for _, img := range web.Images {
			if len(urls) == len(partnerImageSlots) {
				break
			}
			if img.URL != "" {
				urls = append(urls, img.URL)
			} else if img.DownloadURL != "" {
				urls = append(urls, img.DownloadURL)
			}
		}
	}
	return urls
}
