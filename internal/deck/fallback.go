package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/kelpglobal/teaserforge/internal/types"
)

// Brand colors for the fallback deck.
const (
	colorIndigo = "2D004B"
	colorWhite  = "FFFFFF"
	colorGrey   = "505050"
)

const confidentialityFooter = "Strictly Private & Confidential – Prepared by Kelp M&A Team"

// writeFallbackDeck builds a single-slide deck from scratch: indigo
// background, codename title, up to four overview bullets, and the
// confidentiality footer. Used when the designed template cannot be loaded.
func writeFallbackDeck(profile *types.TeaserProfile, outputPath string) (string, error) {
	pkg := newPackage()
	pkg.setPart("[Content_Types].xml", []byte(fallbackContentTypes))
	pkg.setPart("_rels/.rels", []byte(fallbackRootRels))
	pkg.setPart("ppt/presentation.xml", []byte(fallbackPresentation))
	pkg.setPart("ppt/_rels/presentation.xml.rels", []byte(fallbackPresentationRels))
	pkg.setPart("ppt/slideMasters/slideMaster1.xml", []byte(fallbackSlideMaster))
	pkg.setPart("ppt/slideMasters/_rels/slideMaster1.xml.rels", []byte(fallbackSlideMasterRels))
	pkg.setPart("ppt/slideLayouts/slideLayout1.xml", []byte(fallbackSlideLayout))
	pkg.setPart("ppt/slideLayouts/_rels/slideLayout1.xml.rels", []byte(fallbackSlideLayoutRels))
	pkg.setPart("ppt/theme/theme1.xml", []byte(fallbackTheme))
	pkg.setPart("ppt/slides/_rels/slide1.xml.rels", []byte(fallbackSlideRels))

	slideXML, err := buildFallbackSlide(profile)
	if err != nil {
		return "", err
	}
	pkg.setPart("ppt/slides/slide1.xml", slideXML)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	written, err := uniqueOutputPath(outputPath)
	if err != nil {
		return "", err
	}
	if err := pkg.save(written); err != nil {
		return "", err
	}
	fmt.Printf("   Presentation saved to: %s\n", written)
	return written, nil
}

func buildFallbackSlide(profile *types.TeaserProfile) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	sld := doc.CreateElement("p:sld")
	sld.CreateAttr("xmlns:a", "http://schemas.openxmlformats.org/drawingml/2006/main")
	sld.CreateAttr("xmlns:r", "http://schemas.openxmlformats.org/officeDocument/2006/relationships")
	sld.CreateAttr("xmlns:p", "http://schemas.openxmlformats.org/presentationml/2006/main")

	cSld := sld.CreateElement("p:cSld")

	bg := cSld.CreateElement("p:bg")
	bgPr := bg.CreateElement("p:bgPr")
	solidFill(bgPr, colorIndigo)
	bgPr.CreateElement("a:effectLst")

	spTree := cSld.CreateElement("p:spTree")
	nvGrpSpPr := spTree.CreateElement("p:nvGrpSpPr")
	grpCNvPr := nvGrpSpPr.CreateElement("p:cNvPr")
	grpCNvPr.CreateAttr("id", "1")
	grpCNvPr.CreateAttr("name", "")
	nvGrpSpPr.CreateElement("p:cNvGrpSpPr")
	nvGrpSpPr.CreateElement("p:nvPr")
	spTree.CreateElement("p:grpSpPr")

	// Title: codename, upper-cased, 48pt bold white.
	title := addTextbox(spTree, 2, "Title", inches(0.8), inches(0.8), inches(8), inches(1.2))
	codename := strings.ToUpper(cleanText(profile.CompanyCodename))
	if codename == "" {
		codename = "PROJECT APEX"
	}
	addFallbackParagraph(title, codename, 48, true, colorWhite, "")

	// Business overview: up to four bullets.
	overview := addTextbox(spTree, 3, "Overview", inches(0.8), inches(3.3), inches(6), inches(3.5))
	items := profile.BusinessOverview
	if len(items) > 4 {
		items = items[:4]
	}
	for _, item := range items {
		para := addFallbackParagraph(overview, "• "+cleanText(item), 14, false, colorWhite, "")
		pPr := para.FindElement("./a:pPr")
		spcAft := pPr.CreateElement("a:spcAft")
		spcAft.CreateElement("a:spcPts").CreateAttr("val", "1400")
	}

	footer := addTextbox(spTree, 4, "Footer", 0, inches(7.2), inches(13.33), inches(0.3))
	addFallbackParagraph(footer, confidentialityFooter, 9, false, colorGrey, "ctr")

	sld.CreateElement("p:clrMapOvr").CreateElement("a:masterClrMapping")
	return doc.WriteToBytes()
}

func inches(v float64) int64 {
	return int64(v * emuPerInch)
}

func solidFill(parent *etree.Element, hex string) {
	fill := parent.CreateElement("a:solidFill")
	fill.CreateElement("a:srgbClr").CreateAttr("val", hex)
}

func addTextbox(spTree *etree.Element, id int, name string, x, y, cx, cy int64) *etree.Element {
	sp := spTree.CreateElement("p:sp")

	nvSpPr := sp.CreateElement("p:nvSpPr")
	cNvPr := nvSpPr.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", strconv.Itoa(id))
	cNvPr.CreateAttr("name", name)
	nvSpPr.CreateElement("p:cNvSpPr").CreateAttr("txBox", "1")
	nvSpPr.CreateElement("p:nvPr")

	spPr := sp.CreateElement("p:spPr")
	xfrm := spPr.CreateElement("a:xfrm")
	off := xfrm.CreateElement("a:off")
	off.CreateAttr("x", strconv.FormatInt(x, 10))
	off.CreateAttr("y", strconv.FormatInt(y, 10))
	ext := xfrm.CreateElement("a:ext")
	ext.CreateAttr("cx", strconv.FormatInt(cx, 10))
	ext.CreateAttr("cy", strconv.FormatInt(cy, 10))
	prstGeom := spPr.CreateElement("a:prstGeom")
	prstGeom.CreateAttr("prst", "rect")
	prstGeom.CreateElement("a:avLst")
	spPr.CreateElement("a:noFill")

	txBody := sp.CreateElement("p:txBody")
	bodyPr := txBody.CreateElement("a:bodyPr")
	bodyPr.CreateAttr("wrap", "square")
	txBody.CreateElement("a:lstStyle")
	return txBody
}

func addFallbackParagraph(txBody *etree.Element, text string, sizePt int, bold bool, hexColor, align string) *etree.Element {
	para := txBody.CreateElement("a:p")
	pPr := para.CreateElement("a:pPr")
	if align != "" {
		pPr.CreateAttr("algn", align)
	}

	run := para.CreateElement("a:r")
	rPr := run.CreateElement("a:rPr")
	rPr.CreateAttr("lang", "en-US")
	rPr.CreateAttr("sz", strconv.Itoa(sizePt*100))
	if bold {
		rPr.CreateAttr("b", "1")
	}
	rPr.CreateAttr("dirty", "0")
	solidFill(rPr, hexColor)
	rPr.CreateElement("a:latin").CreateAttr("typeface", "Arial")
	run.CreateElement("a:t").SetText(text)
	return para
}

const fallbackContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>
<Override PartName="/ppt/slideMasters/slideMaster1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"/>
<Override PartName="/ppt/slideLayouts/slideLayout1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"/>
<Override PartName="/ppt/slides/slide1.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>
<Override PartName="/ppt/theme/theme1.xml" ContentType="application/vnd.openxmlformats-officedocument.theme+xml"/>
</Types>`

const fallbackRootRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/>
</Relationships>`

const fallbackPresentation = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>
<p:sldIdLst><p:sldId id="256" r:id="rId2"/></p:sldIdLst>
<p:sldSz cx="12192000" cy="6858000"/>
<p:notesSz cx="6858000" cy="9144000"/>
</p:presentation>`

const fallbackPresentationRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="slideMasters/slideMaster1.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide1.xml"/>
</Relationships>`

const fallbackSlideMaster = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldMaster xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
<p:cSld>
<p:bg><p:bgPr><a:solidFill><a:srgbClr val="FFFFFF"/></a:solidFill><a:effectLst/></p:bgPr></p:bg>
<p:spTree>
<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
<p:grpSpPr/>
</p:spTree>
</p:cSld>
<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>
<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/></p:sldLayoutIdLst>
</p:sldMaster>`

const fallbackSlideMasterRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme" Target="../theme/theme1.xml"/>
</Relationships>`

const fallbackSlideLayout = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sldLayout xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" type="blank">
<p:cSld name="Blank">
<p:spTree>
<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>
<p:grpSpPr/>
</p:spTree>
</p:cSld>
<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr>
</p:sldLayout>`

const fallbackSlideLayoutRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster" Target="../slideMasters/slideMaster1.xml"/>
</Relationships>`

const fallbackSlideRels = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout" Target="../slideLayouts/slideLayout1.xml"/>
</Relationships>`

const fallbackTheme = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<a:theme xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" name="Teaser">
<a:themeElements>
<a:clrScheme name="Teaser">
<a:dk1><a:srgbClr val="000000"/></a:dk1>
<a:lt1><a:srgbClr val="FFFFFF"/></a:lt1>
<a:dk2><a:srgbClr val="2D004B"/></a:dk2>
<a:lt2><a:srgbClr val="F5F5F5"/></a:lt2>
<a:accent1><a:srgbClr val="FF007F"/></a:accent1>
<a:accent2><a:srgbClr val="FF6432"/></a:accent2>
<a:accent3><a:srgbClr val="2D004B"/></a:accent3>
<a:accent4><a:srgbClr val="505050"/></a:accent4>
<a:accent5><a:srgbClr val="F5F5F5"/></a:accent5>
<a:accent6><a:srgbClr val="000000"/></a:accent6>
<a:hlink><a:srgbClr val="0563C1"/></a:hlink>
<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>
</a:clrScheme>
<a:fontScheme name="Teaser">
<a:majorFont><a:latin typeface="Arial"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>
<a:minorFont><a:latin typeface="Arial"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont>
</a:fontScheme>
<a:fmtScheme name="Teaser">
<a:fillStyleLst>
<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
</a:fillStyleLst>
<a:lnStyleLst>
<a:ln w="6350"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
<a:ln w="12700"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
<a:ln w="19050"><a:solidFill><a:schemeClr val="phClr"/></a:solidFill></a:ln>
</a:lnStyleLst>
<a:effectStyleLst>
<a:effectStyle><a:effectLst/></a:effectStyle>
<a:effectStyle><a:effectLst/></a:effectStyle>
<a:effectStyle><a:effectLst/></a:effectStyle>
</a:effectStyleLst>
<a:bgFillStyleLst>
<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
<a:solidFill><a:schemeClr val="phClr"/></a:solidFill>
</a:bgFillStyleLst>
</a:fmtScheme>
</a:themeElements>
</a:theme>`
