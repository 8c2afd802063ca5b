package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderProfile(t *testing.T) {
	p := PlaceholderProfile()
	require.NotNil(t, p)

	assert.Equal(t, ErrorCodename, p.CompanyCodename)
	assert.NotEmpty(t, p.BusinessOverview, "placeholder keeps the deck renderable")
	assert.Equal(t, "N/A", p.Assumptions)
	assert.Empty(t, p.Financials.EBITDA)
}

func TestEmptyWebData(t *testing.T) {
	w := EmptyWebData()
	require.NotNil(t, w)
	assert.Empty(t, w.Images)
	assert.Empty(t, w.Certifications)
	assert.Empty(t, w.Citations)
}

func TestTeaserProfileOmitsWebDataWhenNil(t *testing.T) {
	data, err := json.Marshal(&TeaserProfile{CompanyName: "Acme"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "web_data")
}

func TestFinancialsFieldNames(t *testing.T) {
	data, err := json.Marshal(Financials{EBITDA: "22%", RevenueCAGR: "18%"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ebitda":"22%"`)
	assert.Contains(t, string(data), `"revenue_cagr":"18%"`)
}
