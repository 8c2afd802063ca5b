package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validProfileJSON = `{
	"company_name": "Acme Forge Pvt Ltd",
	"company_codename": "Project Atlas",
	"sector": "Precision Forging",
	"business_overview": ["Makes forged parts", "Two plants", "Exports to EU"],
	"product_portfolio": ["Crankshafts", "Gears"],
	"applications": ["Automotive", "Rail"],
	"financials": {
		"ebitda": "18%",
		"roce": "22%",
		"roe": "19%",
		"debt": "0.4x",
		"revenue_cagr": "12%"
	},
	"assumptions": "Stable raw material prices",
	"metrics_point": "Revenue doubled in 4 years",
	"upcoming_facility": "New plant in 2027",
	"sales": "60% domestic",
	"global_presence": "Exports to 12 countries",
	"investment_highlights": ["Market leader", "Sticky customers"]
}`

func TestValidateTeaserProfileValid(t *testing.T) {
	assert.NoError(t, ValidateTeaserProfile(validProfileJSON))
}

func TestValidateTeaserProfileMissingRequired(t *testing.T) {
	err := ValidateTeaserProfile(`{"company_name": "Acme"}`)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.NotEmpty(t, ve.Errors)
}

func TestValidateTeaserProfileWrongType(t *testing.T) {
	err := ValidateTeaserProfile(`{
		"company_name": "Acme",
		"company_codename": "Project X",
		"sector": "Forging",
		"business_overview": "not an array",
		"product_portfolio": [],
		"applications": [],
		"financials": {},
		"investment_highlights": []
	}`)
	require.Error(t, err)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
}

func TestValidateTeaserProfileMalformedJSON(t *testing.T) {
	err := ValidateTeaserProfile(`{not json}`)
	assert.Error(t, err)
}
