package deck

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const emuPerInch = 914400

// Text frame margins applied to every filled placeholder, in EMU.
const (
	marginLeftRight = emuPerInch / 10 // 0.1 in
	marginTopBottom = emuPerInch / 20 // 0.05 in
)

const (
	minFontSize     = 8
	maxFontSize     = 14
	defaultFontSize = 12
)

// wrapColumn is the character budget used when breaking a long single
// paragraph into lines.
const wrapColumn = 80

// cleanText strips markdown emphasis markers left over from model output.
func cleanText(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "")
	return strings.TrimSpace(text)
}

// formatList renders items as a newline-separated bullet list, keeping at
// most maxItems entries.
func formatList(items []string, maxItems int) string {
	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "• "+cleanText(item))
	}
	return strings.Join(lines, "\n")
}

// findPlaceholder returns the shape carrying <p:ph idx="N"/>, or nil.
func findPlaceholder(root *etree.Element, idx int) *etree.Element {
	want := strconv.Itoa(idx)
	for _, sp := range root.FindElements("//p:sp") {
		ph := sp.FindElement("./p:nvSpPr/p:nvPr/p:ph")
		if ph != nil && ph.SelectAttrValue("idx", "") == want {
			return sp
		}
	}
	return nil
}

// isTextPlaceholder reports whether sp is a body or object placeholder. An
// absent type attribute means object.
func isTextPlaceholder(sp *etree.Element) bool {
	ph := sp.FindElement("./p:nvSpPr/p:nvPr/p:ph")
	if ph == nil {
		return false
	}
	switch ph.SelectAttrValue("type", "") {
	case "", "body", "obj":
		return true
	}
	return false
}

// placeholderExtent returns the shape's own width and height in EMU, or
// zeros when the shape inherits its geometry from the layout.
func placeholderExtent(sp *etree.Element) (cx, cy int64) {
	ext := sp.FindElement("./p:spPr/a:xfrm/a:ext")
	if ext == nil {
		return 0, 0
	}
	cx, _ = strconv.ParseInt(ext.SelectAttrValue("cx", "0"), 10, 64)
	cy, _ = strconv.ParseInt(ext.SelectAttrValue("cy", "0"), 10, 64)
	return cx, cy
}

// optimalFontSize estimates the largest size between 8 and 14 pt at which
// textLen characters fit the given extent. The estimate assumes roughly 12
// characters per inch of width and 2 lines per inch of height.
func optimalFontSize(textLen int, cx, cy int64) int {
	charsPerLine := int(float64(cx) / emuPerInch * 12)
	linesAvailable := int(float64(cy) / emuPerInch * 2)
	if charsPerLine == 0 || linesAvailable == 0 {
		return defaultFontSize
	}

	estimatedLines := float64(textLen) / float64(charsPerLine)
	if estimatedLines < 1 {
		estimatedLines = 1
	}

	budget := float64(linesAvailable) * 0.8
	if estimatedLines <= budget {
		return maxFontSize
	}

	size := int(maxFontSize * budget / estimatedLines)
	if size < minFontSize {
		return minFontSize
	}
	return size
}

// splitLines breaks text into paragraph lines. Explicit newlines win;
// otherwise a long single paragraph is word-wrapped at the column budget.
func splitLines(text string) []string {
	if strings.Contains(text, "\n") {
		return strings.Split(text, "\n")
	}
	if len(text) <= 200 {
		return []string{text}
	}

	var lines []string
	var current []string
	length := 0
	for _, word := range strings.Fields(text) {
		if length+len(word)+1 > wrapColumn && len(current) > 0 {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
			length = len(word)
		} else {
			current = append(current, word)
			length += len(word) + 1
		}
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines
}

// fillTextPlaceholder rewrites the placeholder's text body: word wrap on,
// tight margins, one paragraph per line, Arial at the computed size.
// Returns false when the placeholder is absent or not a text placeholder.
func fillTextPlaceholder(root *etree.Element, idx int, text string) bool {
	sp := findPlaceholder(root, idx)
	if sp == nil || !isTextPlaceholder(sp) {
		return false
	}
	txBody := sp.FindElement("./p:txBody")
	if txBody == nil {
		return false
	}

	bodyPr := txBody.FindElement("./a:bodyPr")
	if bodyPr == nil {
		bodyPr = txBody.CreateElement("a:bodyPr")
	}
	setAttr(bodyPr, "wrap", "square")
	setAttr(bodyPr, "lIns", strconv.Itoa(marginLeftRight))
	setAttr(bodyPr, "rIns", strconv.Itoa(marginLeftRight))
	setAttr(bodyPr, "tIns", strconv.Itoa(marginTopBottom))
	setAttr(bodyPr, "bIns", strconv.Itoa(marginTopBottom))

	cx, cy := placeholderExtent(sp)
	size := optimalFontSize(len(text), cx, cy)

	for _, para := range txBody.FindElements("./a:p") {
		txBody.RemoveChild(para)
	}

	lines := splitLines(text)
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		para := txBody.CreateElement("a:p")
		if i < len(lines)-1 {
			pPr := para.CreateElement("a:pPr")
			spcAft := pPr.CreateElement("a:spcAft")
			spcAft.CreateElement("a:spcPts").CreateAttr("val", "400")
		}
		run := para.CreateElement("a:r")
		rPr := run.CreateElement("a:rPr")
		rPr.CreateAttr("lang", "en-US")
		rPr.CreateAttr("sz", strconv.Itoa(size*100))
		rPr.CreateAttr("dirty", "0")
		rPr.CreateElement("a:latin").CreateAttr("typeface", "Arial")
		run.CreateElement("a:t").SetText(line)
	}
	// A text body must keep at least one paragraph to stay valid DrawingML.
	if txBody.FindElement("./a:p") == nil {
		txBody.CreateElement("a:p")
	}
	return true
}

func setAttr(e *etree.Element, key, value string) {
	e.RemoveAttr(key)
	e.CreateAttr(key, value)
}
