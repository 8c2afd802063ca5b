// Package websearch gathers web-sourced images, certifications, and market
// snippets for a company. Everything runs sequentially with deliberate delays
// between provider calls to stay under external rate limits.
package websearch

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/kelpglobal/teaserforge/internal/llm"
	"github.com/kelpglobal/teaserforge/internal/types"
)

// TextResult is a single hit from the text search provider.
type TextResult struct {
	Title string
	Body  string
	URL   string
}

// ImageSearcher finds stock images for a query.
type ImageSearcher interface {
	Search(ctx context.Context, query string, perPage int) ([]types.ImageResult, error)
}

// TextSearcher finds web pages for a query.
type TextSearcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]TextResult, error)
}

// Delays between external calls. The long pause between the three sub-stages
// is randomized so repeated runs don't hit providers on a fixed cadence.
const (
	imageQueryDelay     = 500 * time.Millisecond
	businessSearchDelay = 1 * time.Second
	stagePauseMin       = 10 * time.Second
	stagePauseMax       = 15 * time.Second
)

// Enricher composes the three search sub-operations. The Sleep field exists so
// tests can run without the multi-second pauses.
type Enricher struct {
	Client    llm.Client
	Images    ImageSearcher
	Text      TextSearcher
	MaxImages int // images collected per query
	Sleep     func(time.Duration)
}

// NewEnricher returns an Enricher with production defaults.
func NewEnricher(client llm.Client, images ImageSearcher, text TextSearcher) *Enricher {
	return &Enricher{
		Client:    client,
		Images:    images,
		Text:      text,
		MaxImages: 3,
		Sleep:     time.Sleep,
	}
}

// Enrich runs the image, certification, and business-info searches in order
// and aggregates their results. Citations keep the call sequence: images
// first, then certifications, then business info.
//
// Provider failures inside a sub-operation leave that sub-operation's
// contribution partial or empty; they never abort the other sub-operations.
func (e *Enricher) Enrich(ctx context.Context, companyName, rawText string) (*types.WebData, error) {
	web := types.EmptyWebData()

	fmt.Printf("   Searching for images (1/3)...\n")
	images, imageCitations := e.searchImages(ctx, companyName, rawText)
	web.Images = images
	web.Citations = append(web.Citations, imageCitations...)

	e.pause()

	fmt.Printf("   Searching for certifications (2/3)...\n")
	certs, certCitations := e.searchCertifications(ctx, companyName, rawText)
	web.Certifications = certs
	web.Citations = append(web.Citations, certCitations...)

	e.pause()

	fmt.Printf("   Searching for business information (3/3)...\n")
	info, infoCitations := e.searchBusinessInfo(ctx, companyName, rawText)
	web.BusinessInfo = info
	web.Citations = append(web.Citations, infoCitations...)

	fmt.Printf("   Web search complete: %d images, %d certifications, %d citations\n",
		len(web.Images), len(web.Certifications), len(web.Citations))

	return web, nil
}

// pause sleeps for a randomized 10-15 seconds between the major sub-stages.
func (e *Enricher) pause() {
	jitter := time.Duration(rand.Int63n(int64(stagePauseMax - stagePauseMin)))
	e.Sleep(stagePauseMin + jitter)
}
