package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelpglobal/teaserforge/internal/llm"
	"github.com/kelpglobal/teaserforge/internal/types"
	"github.com/kelpglobal/teaserforge/internal/websearch"
)

const profileJSON = `{
  "company_name": "Acme Corp",
  "company_codename": "Project Atlas",
  "sector": "Industrial Packaging",
  "business_overview": ["Leading producer of flexible packaging", "Three plants in western India"],
  "product_portfolio": ["Laminates", "Pouches"],
  "applications": ["Food", "Pharma"],
  "financials": {"ebitda": "22%", "roce": "18%", "roe": "15%", "debt": "0.4x", "revenue_cagr": "18%"},
  "assumptions": "FY25 unaudited",
  "metrics_point": "Revenue CAGR of 18% over FY22-25",
  "upcoming_facility": "New plant commissioning in 2026",
  "sales": "INR 450 Cr",
  "global_presence": "Exports to 20 countries",
  "investment_highlights": ["Margin expansion", "Sticky customer base"]
}`

// routingClient answers query-generation prompts with a query array and
// everything else with the extraction profile.
type routingClient struct {
	extractionCalls int
	queryCalls      int
}

func (c *routingClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier, _ float32) (string, error) {
	if strings.Contains(prompt, "search queries") {
		c.queryCalls++
		return `["test query"]`, nil
	}
	c.extractionCalls++
	return profileJSON, nil
}

func (c *routingClient) GetModel(llm.ModelTier) string { return "stub" }
func (c *routingClient) Close() error                  { return nil }

type emptyImageSearcher struct{}

func (emptyImageSearcher) Search(context.Context, string, int) ([]types.ImageResult, error) {
	return nil, nil
}

type emptyTextSearcher struct{}

func (emptyTextSearcher) Search(context.Context, string, int) ([]websearch.TextResult, error) {
	return nil, nil
}

func writeCompanyFolder(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := strings.Repeat("Acme Corp manufactures flexible packaging for food and pharma. ", 5)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "overview.txt"), []byte(content), 0o644))
	return dir
}

func testOptions(t *testing.T, client llm.Client) RunOptions {
	t.Helper()
	return RunOptions{
		CompanyFolder: writeCompanyFolder(t),
		CompanyName:   "Acme",
		OutputRoot:    t.TempDir(),
		TemplatePath:  filepath.Join(t.TempDir(), "missing_template.pptx"),
		Client:        client,
		Images:        emptyImageSearcher{},
		Text:          emptyTextSearcher{},
		Sleep:         func(time.Duration) {},
	}
}

func TestRunPipelineEndToEnd(t *testing.T) {
	client := &routingClient{}
	opts := testOptions(t, client)

	var events []ProgressEvent
	opts.OnProgress = func(e ProgressEvent) { events = append(events, e) }

	require.NoError(t, RunPipeline(context.Background(), opts))

	// missing template means the fallback deck is written
	out := filepath.Join(opts.OutputRoot, "Acme_Teaser.pptx")
	_, err := os.Stat(out)
	assert.NoError(t, err)

	assert.Equal(t, 1, client.extractionCalls)
	assert.Greater(t, client.queryCalls, 0)

	require.Len(t, events, 4)
	assert.Equal(t, StepCorpus, events[0].Step)
	assert.Equal(t, StepProfile, events[1].Step)
	assert.Equal(t, StepWebData, events[2].Step)
	assert.Equal(t, StepDeck, events[3].Step)
	for _, e := range events {
		assert.NotEmpty(t, e.RunID)
		assert.Equal(t, events[0].RunID, e.RunID)
	}
}

// failingClient simulates a model backend outage.
type failingClient struct{}

func (failingClient) GenerateContent(context.Context, string, llm.ModelTier, float32) (string, error) {
	return "", assert.AnError
}

func (failingClient) GetModel(llm.ModelTier) string { return "stub" }
func (failingClient) Close() error                  { return nil }

func TestRunPipelineExtractionFailureProducesNoDeck(t *testing.T) {
	opts := testOptions(t, failingClient{})

	err := RunPipeline(context.Background(), opts)
	require.Error(t, err)

	out := filepath.Join(opts.OutputRoot, "Acme_Teaser.pptx")
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no deck may be written when extraction fails")
}

func TestRunPipelineValidatesOptions(t *testing.T) {
	err := RunPipeline(context.Background(), RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid run options")
}

func TestRunPipelineRequiresAPIKeyWithoutClient(t *testing.T) {
	opts := testOptions(t, nil)
	opts.Client = nil
	err := RunPipeline(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestRunPipelineRejectsTinyCorpus(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "note.txt"), []byte("too short"), 0o644))

	opts := testOptions(t, &routingClient{})
	opts.CompanyFolder = dir

	err := RunPipeline(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not enough company data")
}

func TestRunPipelineEmptyFolderFails(t *testing.T) {
	opts := testOptions(t, &routingClient{})
	opts.CompanyFolder = t.TempDir()

	err := RunPipeline(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingestion failed")
}

type panickyImageSearcher struct{}

func (panickyImageSearcher) Search(context.Context, string, int) ([]types.ImageResult, error) {
	panic("provider blew up")
}

func TestRunPipelineSurvivesEnrichmentPanic(t *testing.T) {
	opts := testOptions(t, &routingClient{})
	opts.Images = panickyImageSearcher{}

	require.NoError(t, RunPipeline(context.Background(), opts))

	out := filepath.Join(opts.OutputRoot, "Acme_Teaser.pptx")
	_, err := os.Stat(out)
	assert.NoError(t, err)
}
