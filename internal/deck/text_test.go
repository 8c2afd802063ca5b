package deck

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "strong growth", cleanText("**strong growth**"))
	assert.Equal(t, "note", cleanText(" *note* "))
	assert.Equal(t, "", cleanText(""))
}

func TestFormatList(t *testing.T) {
	got := formatList([]string{"**one**", "two", "three"}, 2)
	assert.Equal(t, "• one\n• two", got)

	assert.Equal(t, "", formatList(nil, 4))
}

func TestOptimalFontSize(t *testing.T) {
	tests := []struct {
		name    string
		textLen int
		cx, cy  int64
		want    int
	}{
		{"no geometry", 100, 0, 0, defaultFontSize},
		{"fits comfortably", 50, 5 * emuPerInch, 3 * emuPerInch, maxFontSize},
		{"overflow shrinks", 2000, 5 * emuPerInch, 2 * emuPerInch, minFontSize},
		{"partial overflow", 400, 5 * emuPerInch, 3 * emuPerInch, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, optimalFontSize(tt.textLen, tt.cx, tt.cy))
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitLines("a\nb"))
	assert.Equal(t, []string{"short text"}, splitLines("short text"))

	long := strings.Repeat("word ", 50) // ~250 chars, single paragraph
	lines := splitLines(strings.TrimSpace(long))
	assert.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), wrapColumn)
	}
}

const testSlideXML = `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
<p:cSld><p:spTree>
<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>
<p:sp>
<p:nvSpPr><p:cNvPr id="2" name="Body"/><p:cNvSpPr/><p:nvPr><p:ph type="body" idx="10"/></p:nvPr></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="5486400" cy="2743200"/></a:xfrm></p:spPr>
<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:t>template text</a:t></a:r></a:p></p:txBody>
</p:sp>
<p:sp>
<p:nvSpPr><p:cNvPr id="3" name="Pic"/><p:cNvSpPr/><p:nvPr><p:ph type="pic" idx="11"/></p:nvPr></p:nvSpPr>
<p:spPr><a:xfrm><a:off x="914400" y="914400"/><a:ext cx="1828800" cy="1828800"/></a:xfrm></p:spPr>
<p:txBody><a:bodyPr/><a:lstStyle/><a:p/></p:txBody>
</p:sp>
</p:spTree></p:cSld></p:sld>`

func parseTestSlide(t *testing.T) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(testSlideXML))
	return doc
}

func TestFillTextPlaceholder(t *testing.T) {
	doc := parseTestSlide(t)
	root := doc.Root()

	ok := fillTextPlaceholder(root, 10, "• first\n• second")
	require.True(t, ok)

	out, err := doc.WriteToString()
	require.NoError(t, err)
	assert.NotContains(t, out, "template text")
	assert.Contains(t, out, "• first")
	assert.Contains(t, out, "• second")
	assert.Contains(t, out, `sz="1400"`)
	assert.Contains(t, out, `typeface="Arial"`)
	assert.Contains(t, out, `lIns="91440"`)
	assert.Contains(t, out, `tIns="45720"`)
}

func TestFillTextPlaceholderEmptyTextKeepsOneParagraph(t *testing.T) {
	doc := parseTestSlide(t)
	root := doc.Root()

	require.True(t, fillTextPlaceholder(root, 10, ""))

	sp := findPlaceholder(root, 10)
	require.NotNil(t, sp)
	txBody := sp.FindElement("./p:txBody")
	require.NotNil(t, txBody)

	paras := txBody.FindElements("./a:p")
	require.Len(t, paras, 1)
	assert.Nil(t, paras[0].FindElement("./a:r"))

	out, err := doc.WriteToString()
	require.NoError(t, err)
	assert.NotContains(t, out, "template text")
}

func TestFillTextPlaceholderMissingIndex(t *testing.T) {
	doc := parseTestSlide(t)
	assert.False(t, fillTextPlaceholder(doc.Root(), 99, "text"))
}

func TestFillTextPlaceholderRejectsPictureSlot(t *testing.T) {
	doc := parseTestSlide(t)
	assert.False(t, fillTextPlaceholder(doc.Root(), 11, "text"))
}

func TestFindPlaceholder(t *testing.T) {
	doc := parseTestSlide(t)
	sp := findPlaceholder(doc.Root(), 11)
	require.NotNil(t, sp)
	assert.True(t, isPicturePlaceholder(sp))
	assert.False(t, isTextPlaceholder(sp))

	cx, cy := placeholderExtent(sp)
	assert.Equal(t, int64(1828800), cx)
	assert.Equal(t, int64(1828800), cy)
}
