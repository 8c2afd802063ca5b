// Package pipeline provides the high-level orchestration for the teaser
// generation process.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kelpglobal/teaserforge/internal/deck"
	"github.com/kelpglobal/teaserforge/internal/extraction"
	"github.com/kelpglobal/teaserforge/internal/ingestion"
	"github.com/kelpglobal/teaserforge/internal/llm"
	"github.com/kelpglobal/teaserforge/internal/observability"
	"github.com/kelpglobal/teaserforge/internal/types"
	"github.com/kelpglobal/teaserforge/internal/websearch"
)

// minCorpusChars is the smallest corpus worth sending to extraction. Anything
// shorter means the input folder held no real company material.
const minCorpusChars = 50

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Step and category names used in progress events.
const (
	StepCorpus  = "corpus"
	StepProfile = "teaser_profile"
	StepWebData = "web_data"
	StepDeck    = "deck"

	CategoryIngestion  = "ingestion"
	CategoryExtraction = "extraction"
	CategoryEnrichment = "enrichment"
	CategoryGeneration = "generation"
)

// RunOptions holds configuration for running the pipeline.
//
// Client, Images, Text, and Sleep exist so tests can run the pipeline without
// live providers; production callers leave them nil.
type RunOptions struct {
	CompanyFolder string `validate:"required"`
	CompanyName   string `validate:"required"`
	OutputRoot    string `validate:"required"`
	TemplatePath  string `validate:"required"`
	APIKey        string
	UnsplashKey   string
	TavilyKey     string
	MaxImages     int
	Verbose       bool
	OnProgress    ProgressCallback

	Client llm.Client
	Images websearch.ImageSearcher
	Text   websearch.TextSearcher
	Sleep  func(time.Duration)
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			RunID:    runID,
			Content:  content,
		})
	}
}

// RunPipeline orchestrates the full teaser generation pipeline: ingest the
// company folder, extract the structured profile, enrich it from the web,
// and render the deck. Enrichment failures degrade to an empty enrichment
// result; every other step failure aborts the run.
func RunPipeline(ctx context.Context, opts RunOptions) error {
	if err := validator.New().Struct(opts); err != nil {
		return fmt.Errorf("invalid run options: %w", err)
	}
	if opts.Client == nil && opts.APIKey == "" {
		return fmt.Errorf("invalid run options: an API key is required")
	}

	runID := uuid.New().String()
	printer := observability.NewPrinter(os.Stdout)

	// Step 1: Ingest company documents
	fmt.Printf("Step 1/4: Ingesting documents from %s...\n", opts.CompanyFolder)
	corpus, err := ingestion.Ingest(opts.CompanyFolder)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}
	if len(corpus) < minCorpusChars {
		return fmt.Errorf("not enough company data extracted from %s (%d chars)", opts.CompanyFolder, len(corpus))
	}
	if opts.Verbose {
		printer.PrintCorpusStats(corpus)
	}
	emitProgress(&opts, runID, StepCorpus, CategoryIngestion,
		fmt.Sprintf("Ingested %d characters of company data", len(corpus)), nil)

	// Step 2: Extract structured profile
	fmt.Printf("Step 2/4: Extracting structured profile...\n")
	client := opts.Client
	if client == nil {
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			return fmt.Errorf("initializing model client: %w", err)
		}
	}

	profile, err := extraction.Extract(ctx, client, corpus)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintProfile(profile)
	}
	emitProgress(&opts, runID, StepProfile, CategoryExtraction,
		fmt.Sprintf("Extracted profile for %s (%s)", profile.CompanyName, profile.CompanyCodename), profile)

	// Step 3: Web enrichment
	fmt.Printf("Step 3/4: Enriching with web data...\n")
	enricher := newEnricher(&opts, client)
	profile.WebData = enrichSafely(ctx, enricher, profile.CompanyName, corpus)
	if opts.Verbose {
		printer.PrintWebData(profile.WebData)
	}
	emitProgress(&opts, runID, StepWebData, CategoryEnrichment,
		fmt.Sprintf("Collected %d images and %d certifications",
			len(profile.WebData.Images), len(profile.WebData.Certifications)), nil)

	// Step 4: Generate the deck
	fmt.Printf("Step 4/4: Generating presentation...\n")
	outputPath := filepath.Join(opts.OutputRoot, opts.CompanyName+"_Teaser.pptx")
	generator := deck.NewGenerator(opts.TemplatePath)
	written, err := generator.Generate(ctx, profile, outputPath)
	if err != nil {
		return fmt.Errorf("deck generation failed: %w", err)
	}
	emitProgress(&opts, runID, StepDeck, CategoryGeneration,
		fmt.Sprintf("Presentation written to %s", written), nil)

	fmt.Printf("Done! Teaser saved to %s\n", written)
	return nil
}

func newEnricher(opts *RunOptions, client llm.Client) *websearch.Enricher {
	images := opts.Images
	if images == nil {
		images = websearch.NewUnsplashClient(opts.UnsplashKey)
	}
	text := opts.Text
	if text == nil {
		text = websearch.NewTavilyClient(opts.TavilyKey)
	}
	enricher := websearch.NewEnricher(client, images, text)
	if opts.MaxImages > 0 {
		enricher.MaxImages = opts.MaxImages
	}
	if opts.Sleep != nil {
		enricher.Sleep = opts.Sleep
	}
	return enricher
}

// enrichSafely never lets enrichment abort the run: errors and panics both
// degrade to an empty enrichment result so the deck is still produced.
func enrichSafely(ctx context.Context, enricher *websearch.Enricher, companyName, corpus string) (web *types.WebData) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("   Warning: web enrichment failed: %v. Continuing without web data.\n", r)
			web = types.EmptyWebData()
		}
	}()

	web, err := enricher.Enrich(ctx, companyName, corpus)
	if err != nil {
		fmt.Printf("   Warning: web enrichment failed: %v. Continuing without web data.\n", err)
		return types.EmptyWebData()
	}
	return web
}
