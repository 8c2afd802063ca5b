package deck

import (
	"archive/zip"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kelpglobal/teaserforge/internal/types"
)

func readZipPart(t *testing.T, zipPath, partName string) string {
	t.Helper()
	reader, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer reader.Close()

	for _, file := range reader.File {
		if file.Name == partName {
			rc, err := file.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(data)
		}
	}
	t.Fatalf("part %s not found in %s", partName, zipPath)
	return ""
}

func TestWriteFallbackDeck(t *testing.T) {
	profile := types.PlaceholderProfile()
	profile.CompanyCodename = "Project Atlas"
	profile.BusinessOverview = []string{"one", "two", "three", "four", "five"}

	target := filepath.Join(t.TempDir(), "out", "Acme_Teaser.pptx")
	written, err := writeFallbackDeck(profile, target)
	require.NoError(t, err)
	assert.Equal(t, target, written)

	slide := readZipPart(t, written, "ppt/slides/slide1.xml")
	assert.Contains(t, slide, "PROJECT ATLAS", "codename is upper-cased in the title")
	assert.Contains(t, slide, colorIndigo, "background uses the brand indigo")
	assert.Contains(t, slide, confidentialityFooter)

	// at most four overview bullets
	assert.Equal(t, 4, strings.Count(slide, "• "))
	assert.NotContains(t, slide, "five")

	for _, part := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"ppt/presentation.xml",
		"ppt/slideMasters/slideMaster1.xml",
		"ppt/slideLayouts/slideLayout1.xml",
		"ppt/theme/theme1.xml",
	} {
		readZipPart(t, written, part)
	}
}

func TestWriteFallbackDeckEmptyCodename(t *testing.T) {
	profile := &types.TeaserProfile{}
	target := filepath.Join(t.TempDir(), "Acme_Teaser.pptx")
	written, err := writeFallbackDeck(profile, target)
	require.NoError(t, err)

	slide := readZipPart(t, written, "ppt/slides/slide1.xml")
	assert.Contains(t, slide, "PROJECT APEX")
}
