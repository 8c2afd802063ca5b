package websearch

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCertificationsFoundLocallyAreVerified(t *testing.T) {
	client := &stubLLM{response: `["q"]`}
	text := &stubTextSearcher{}
	e := testEnricher(client, &stubImageSearcher{}, text)

	raw := "The plant holds ISO 9001 and who-gmp approvals and follows HACCP."
	certs, citations := e.searchCertifications(context.Background(), "Acme", raw)

	names := make(map[string]bool)
	for _, c := range certs {
		assert.True(t, c.Verified)
		assert.Equal(t, "company_data", c.Source)
		names[c.Name] = true
	}
	assert.True(t, names["ISO 9001"])
	assert.True(t, names["WHO-GMP"])
	assert.True(t, names["HACCP"])
	// "GMP" is a substring of "who-gmp" so it matches too
	assert.True(t, names["GMP"])
	assert.Len(t, citations, len(certs))

	assert.Empty(t, text.queries, "web fallback must not run when local matches exist")
	assert.Empty(t, client.prompts, "query generation must not run when local matches exist")
}

func TestCertificationsGDPFoundLocally(t *testing.T) {
	client := &stubLLM{response: `["q"]`}
	text := &stubTextSearcher{}
	e := testEnricher(client, &stubImageSearcher{}, text)

	certs, _ := e.searchCertifications(context.Background(), "Acme", "operates under GDP compliance")

	require.Len(t, certs, 1)
	assert.Equal(t, "GDP", certs[0].Name)
	assert.True(t, certs[0].Verified)
	assert.Empty(t, text.queries, "web fallback must not run when local matches exist")
}

func TestCertificationsWebFallbackOnlyWhenNoneFound(t *testing.T) {
	client := &stubLLM{response: `["iso certification acme"]`}
	text := &stubTextSearcher{results: []TextResult{
		{Title: "Registry entry", Body: "Acme is certified to ISO 14001 standards", URL: "https://registry.example/acme"},
		{Title: "Press release", Body: "Acme also announced BRC accreditation", URL: "https://news.example/acme"},
	}}
	e := testEnricher(client, &stubImageSearcher{}, text)

	certs, _ := e.searchCertifications(context.Background(), "Acme", "nothing relevant here")

	require.Len(t, text.queries, 1, "only the first generated query is searched")
	assert.Equal(t, "iso certification acme", text.queries[0])

	require.Len(t, certs, 2, "one certification per result at most")
	assert.Equal(t, "ISO 14001", certs[0].Name)
	assert.False(t, certs[0].Verified)
	assert.Equal(t, "https://registry.example/acme", certs[0].Source)
	assert.Equal(t, "BRC", certs[1].Name)
}

func TestCertificationsFallbackDescriptionTruncated(t *testing.T) {
	body := "ISO 9001 " + strings.Repeat("more detail about the audit process ", 12)
	client := &stubLLM{response: `["q"]`}
	text := &stubTextSearcher{results: []TextResult{{Title: "t", Body: body, URL: "u"}}}
	e := testEnricher(client, &stubImageSearcher{}, text)

	certs, _ := e.searchCertifications(context.Background(), "Acme", "no matches")
	require.Len(t, certs, 1)
	assert.Len(t, certs[0].Description, 200)
}

func TestCertificationsSearchFailureReturnsEmpty(t *testing.T) {
	client := &stubLLM{response: `["q"]`}
	text := &stubTextSearcher{err: assert.AnError}
	e := testEnricher(client, &stubImageSearcher{}, text)
	e.Sleep = func(time.Duration) {}

	certs, citations := e.searchCertifications(context.Background(), "Acme", "no matches")
	assert.Empty(t, certs)
	assert.Empty(t, citations)
}
