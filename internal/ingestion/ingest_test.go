package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestIngestTextFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "overview.md", "Acme Forge makes precision components for automotive clients.")
	writeFile(t, dir, "notes.txt", "EBITDA margin 18%")

	corpus, err := Ingest(dir)
	require.NoError(t, err)

	assert.Contains(t, corpus, "--- FILE: overview.md ---")
	assert.Contains(t, corpus, "Acme Forge makes precision components")
	assert.Contains(t, corpus, "--- FILE: notes.txt ---")
	assert.Contains(t, corpus, "EBITDA margin 18%")
}

func TestIngestSkipsDotfiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".DS_Store", "binary junk")
	writeFile(t, dir, "readme.txt", "Visible content here")

	corpus, err := Ingest(dir)
	require.NoError(t, err)

	assert.NotContains(t, corpus, "binary junk")
	assert.Contains(t, corpus, "Visible content here")
}

func TestIngestIgnoresUnknownExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "logo.svg", "<svg/>")
	writeFile(t, dir, "data.txt", "real data")

	corpus, err := Ingest(dir)
	require.NoError(t, err)

	assert.NotContains(t, corpus, "<svg/>")
	assert.Contains(t, corpus, "real data")
}

func TestIngestEmptyFolder(t *testing.T) {
	dir := t.TempDir()

	_, err := Ingest(dir)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestIngestOnlyDotfilesIsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".hidden", "junk")

	_, err := Ingest(dir)
	assert.ErrorIs(t, err, ErrNoFiles)
}

func TestIngestMissingFolder(t *testing.T) {
	_, err := Ingest(filepath.Join(t.TempDir(), "does-not-exist"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoFiles)
}

func TestIngestCorruptFileDoesNotAbortScan(t *testing.T) {
	dir := t.TempDir()
	// Not a real PDF; the failure should be logged and skipped.
	writeFile(t, dir, "broken.pdf", "this is not a pdf")
	writeFile(t, dir, "good.txt", "surviving content")

	corpus, err := Ingest(dir)
	require.NoError(t, err)

	assert.Contains(t, corpus, "surviving content")
	assert.NotContains(t, corpus, "broken.pdf")
}

func TestIngestDropsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mixed.txt"), []byte("ok\xff\xfetext"), 0644))

	corpus, err := Ingest(dir)
	require.NoError(t, err)

	assert.Contains(t, corpus, "oktext")
}

func TestRenderTable(t *testing.T) {
	rows := [][]string{
		{"Product", "Revenue"},
		{"Crankshafts", "12.5"},
		{"Gears", "3"},
	}

	table := renderTable(rows)
	assert.Contains(t, table, "Product      Revenue")
	assert.Contains(t, table, "Crankshafts  12.5")
	assert.Contains(t, table, "Gears        3")
}

func TestRenderTableEmpty(t *testing.T) {
	assert.Empty(t, renderTable(nil))
}
