package extraction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelpglobal/teaserforge/internal/llm"
	"github.com/kelpglobal/teaserforge/internal/types"
)

// stubClient returns a canned response (or error) for every call.
type stubClient struct {
	response string
	err      error
	calls    int
}

func (s *stubClient) GenerateContent(_ context.Context, _ string, _ llm.ModelTier, _ float32) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubClient) GetModel(llm.ModelTier) string { return "stub" }
func (s *stubClient) Close() error                  { return nil }

const validReply = `{
	"company_name": "Acme Forge Pvt Ltd",
	"company_codename": "Project Atlas",
	"sector": "Precision Forging",
	"business_overview": ["Makes forged parts", "Two plants"],
	"product_portfolio": ["Crankshafts"],
	"applications": ["Automotive"],
	"financials": {
		"ebitda": "18%",
		"roce": "22%",
		"roe": "19%",
		"debt": "0.4x",
		"revenue_cagr": "12%"
	},
	"assumptions": "Stable input prices",
	"metrics_point": "Revenue doubled in 4 years",
	"upcoming_facility": "New plant in 2027",
	"sales": "60% domestic",
	"global_presence": "Exports to 12 countries",
	"investment_highlights": ["Market leader"]
}`

func TestExtractValidJSON(t *testing.T) {
	client := &stubClient{response: validReply}

	profile, err := Extract(context.Background(), client, "some corpus text")
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, "Acme Forge Pvt Ltd", profile.CompanyName)
	assert.Equal(t, "Project Atlas", profile.CompanyCodename)
	assert.Equal(t, "Precision Forging", profile.Sector)
	assert.Equal(t, []string{"Makes forged parts", "Two plants"}, profile.BusinessOverview)
	assert.Equal(t, "18%", profile.Financials.EBITDA)
	assert.Equal(t, "12%", profile.Financials.RevenueCAGR)
	assert.Equal(t, []string{"Market leader"}, profile.InvestmentHighlights)
	assert.Nil(t, profile.WebData)
}

func TestExtractFencedJSON(t *testing.T) {
	client := &stubClient{response: "```json\n" + validReply + "\n```"}

	profile, err := Extract(context.Background(), client, "corpus")
	require.NoError(t, err)
	assert.Equal(t, "Project Atlas", profile.CompanyCodename)
}

func TestExtractInvalidJSONReturnsPlaceholder(t *testing.T) {
	client := &stubClient{response: "I'm sorry, I cannot produce JSON today."}

	profile, err := Extract(context.Background(), client, "corpus")
	require.NoError(t, err, "a parse failure must not be a fatal error")
	require.NotNil(t, profile)

	assert.Equal(t, types.ErrorCodename, profile.CompanyCodename)
	assert.Equal(t, "Unknown", profile.CompanyName)
	assert.Empty(t, profile.ProductPortfolio)
	assert.Empty(t, profile.InvestmentHighlights)
}

func TestExtractCallFailureReturnsNil(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}

	profile, err := Extract(context.Background(), client, "corpus")
	require.Error(t, err, "a call failure must be fatal")
	assert.Nil(t, profile)

	var apiErr *APICallError
	assert.True(t, errors.As(err, &apiErr))
}

func TestExtractInvokesModelOnce(t *testing.T) {
	client := &stubClient{response: validReply}

	_, err := Extract(context.Background(), client, "corpus")
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls, "extraction is a single round-trip, no retries")
}

func TestBuildExtractionPrompt(t *testing.T) {
	rawText := "Acme Forge operates two plants near Pune."
	prompt := buildExtractionPrompt(rawText)

	assert.Contains(t, prompt, rawText)
	assert.Contains(t, prompt, "company_codename")
	assert.Contains(t, prompt, "investment_highlights")
	assert.Contains(t, prompt, "Anonymize")
	assert.Contains(t, prompt, "ONLY valid JSON")
}
