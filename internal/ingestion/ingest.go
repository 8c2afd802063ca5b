// Package ingestion reads every supported document in a company's input
// folder and concatenates the extracted text into a single annotated corpus.
package ingestion

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoFiles is returned when the input folder contains no visible files.
var ErrNoFiles = errors.New("no files found in input folder")

// Ingest reads all PDF, spreadsheet, and text files in a folder and returns a
// single combined corpus string. Files are separated by header lines of the
// form "--- FILE: <name> ---" so the extraction model can attribute content.
//
// Per-file read failures are logged and skipped; only a missing folder or an
// empty folder produce an error. Order follows the directory listing.
func Ingest(folderPath string) (string, error) {
	entries, err := os.ReadDir(folderPath)
	if err != nil {
		return "", fmt.Errorf("failed to read input folder %s: %w", folderPath, err)
	}

	visible := 0
	var sb strings.Builder

	for _, entry := range entries {
		name := entry.Name()

		// Skip dotfiles (.DS_Store and friends) and nested directories.
		if strings.HasPrefix(name, ".") || entry.IsDir() {
			continue
		}
		visible++

		path := filepath.Join(folderPath, name)
		section, err := readFile(path, name)
		if err != nil {
			fmt.Printf("   Warning: error reading %s: %v\n", name, err)
			continue
		}
		sb.WriteString(section)
	}

	if visible == 0 {
		return "", ErrNoFiles
	}

	return sb.String(), nil
}

// readFile dispatches on the file extension and returns the annotated section
// for a single file. Unsupported extensions contribute nothing.
func readFile(path, name string) (string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return readText(path, name)
	case ".pdf":
		return readPDF(path, name)
	case ".xlsx":
		return readXLSX(path, name)
	case ".xls":
		return readXLS(path, name)
	default:
		return "", nil
	}
}

// readText reads a plain text or markdown file as best-effort UTF-8,
// dropping any undecodable bytes.
func readText(path, name string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	content := strings.ToValidUTF8(string(data), "")
	return fmt.Sprintf("\n\n--- FILE: %s ---\n%s", name, content), nil
}

// renderTable formats sheet rows as a plain-text table with columns padded to
// their widest cell, so tabular structure survives into the corpus.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	widths := make([]int, 0)
	for _, row := range rows {
		for i, cell := range row {
			for len(widths) <= i {
				widths = append(widths, 0)
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i < len(row)-1 {
				cells[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
			} else {
				cells[i] = cell
			}
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		sb.WriteString("\n")
	}
	return sb.String()
}
