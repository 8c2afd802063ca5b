// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/kelpglobal/teaserforge/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}

// PrintProfile outputs a human-readable summary of the extracted profile.
func (p *Printer) PrintProfile(profile *types.TeaserProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", profile.CompanyName))
	sb.WriteString(fmt.Sprintf("Codename: %s\n", profile.CompanyCodename))
	sb.WriteString(fmt.Sprintf("Sector:   %s\n", profile.Sector))
	sb.WriteString("\n")

	writeList(&sb, "Business Overview", profile.BusinessOverview)
	writeList(&sb, "Product Portfolio", profile.ProductPortfolio)
	writeList(&sb, "Investment Highlights", profile.InvestmentHighlights)

	sb.WriteString("Financials:\n")
	sb.WriteString(fmt.Sprintf("  EBITDA: %s   ROCE: %s\n", profile.Financials.EBITDA, profile.Financials.ROCE))
	sb.WriteString(fmt.Sprintf("  ROE:    %s   Debt: %s\n", profile.Financials.ROE, profile.Financials.Debt))

	p.printBox("EXTRACTED PROFILE", strings.TrimRight(sb.String(), "\n"))
}

// PrintWebData outputs a summary of the enrichment results.
func (p *Printer) PrintWebData(web *types.WebData) {
	if web == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Images:         %d\n", len(web.Images)))
	sb.WriteString(fmt.Sprintf("Certifications: %d\n", len(web.Certifications)))
	sb.WriteString(fmt.Sprintf("Market items:   %d\n", len(web.BusinessInfo.MarketInfo)))
	sb.WriteString(fmt.Sprintf("Partners:       %d\n", len(web.BusinessInfo.Partners)))
	sb.WriteString(fmt.Sprintf("Citations:      %d\n", len(web.Citations)))
	sb.WriteString("\n")

	certNames := make([]string, 0, len(web.Certifications))
	for _, cert := range web.Certifications {
		name := cert.Name
		if cert.Verified {
			name += " (verified)"
		}
		certNames = append(certNames, name)
	}
	writeList(&sb, "Certifications", certNames)

	p.printBox("WEB ENRICHMENT", strings.TrimRight(sb.String(), "\n"))
}

// PrintCorpusStats outputs basic statistics about the ingested corpus.
func (p *Printer) PrintCorpusStats(corpus string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Characters: %d\n", len(corpus)))
	sb.WriteString(fmt.Sprintf("Lines:      %d\n", strings.Count(corpus, "\n")+1))
	sb.WriteString(fmt.Sprintf("Files:      %d", strings.Count(corpus, "--- FILE:")))
	p.printBox("CORPUS", sb.String())
}
