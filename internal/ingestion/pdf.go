package ingestion

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// readPDF extracts text from a PDF page by page. Pages that yield no text
// (scanned images, blank pages) are skipped.
func readPDF(path, name string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for page := 0; page < doc.NumPage(); page++ {
		text, err := doc.Text(page)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", page+1, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return fmt.Sprintf("\n\n--- FILE: %s (PDF Content) ---\n%s", name, sb.String()), nil
}
