// Package types defines the shared data structures passed between pipeline stages.
package types

// ErrorCodename is the sentinel codename used when the model reply could not
// be parsed as JSON. Downstream stages still receive a shape-valid profile.
const ErrorCodename = "Project Error"

// Financials holds the financial metrics extracted for the teaser.
// Values are free-form strings and may be "N/A" when the source documents
// don't mention a metric.
type Financials struct {
	EBITDA      string `json:"ebitda"`
	ROCE        string `json:"roce"`
	ROE         string `json:"roe"`
	Debt        string `json:"debt"`
	RevenueCAGR string `json:"revenue_cagr"`
}

// TeaserProfile is the structured record extracted from the ingested company
// documents. It is created once per pipeline run and never mutated afterwards,
// except to attach the web enrichment results.
type TeaserProfile struct {
	CompanyName          string     `json:"company_name"`
	CompanyCodename      string     `json:"company_codename"`
	Sector               string     `json:"sector"`
	BusinessOverview     []string   `json:"business_overview"`
	ProductPortfolio     []string   `json:"product_portfolio"`
	Applications         []string   `json:"applications"`
	Financials           Financials `json:"financials"`
	Assumptions          string     `json:"assumptions"`
	MetricsPoint         string     `json:"metrics_point"`
	UpcomingFacility     string     `json:"upcoming_facility"`
	Sales                string     `json:"sales"`
	GlobalPresence       string     `json:"global_presence"`
	InvestmentHighlights []string   `json:"investment_highlights"`

	// WebData is attached by the enrichment stage after extraction.
	WebData *WebData `json:"web_data,omitempty"`
}

// PlaceholderProfile returns the sentinel profile used when the model replied
// with something that is not valid JSON. All list fields are empty so slide
// generation can still run.
func PlaceholderProfile() *TeaserProfile {
	return &TeaserProfile{
		CompanyName:          "Unknown",
		CompanyCodename:      ErrorCodename,
		Sector:               "Error",
		BusinessOverview:     []string{"AI could not process data."},
		ProductPortfolio:     []string{},
		Applications:         []string{},
		Assumptions:          "N/A",
		MetricsPoint:         "N/A",
		UpcomingFacility:     "N/A",
		Sales:                "N/A",
		GlobalPresence:       "N/A",
		InvestmentHighlights: []string{},
	}
}
