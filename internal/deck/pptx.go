// Package deck renders the teaser presentation. A pptx file is a zip of
// DrawingML XML parts; the template is edited in place by locating indexed
// placeholders in the slide parts and rewriting their XML.
package deck

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const (
	relNSURI     = "http://schemas.openxmlformats.org/package/2006/relationships"
	imageRelType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
)

// pptxPackage is an open pptx file held as a set of named zip parts.
type pptxPackage struct {
	parts map[string][]byte
	names []string // zip entry order, preserved on save
}

func openPackage(templatePath string) (*pptxPackage, error) {
	reader, err := zip.OpenReader(templatePath)
	if err != nil {
		return nil, fmt.Errorf("opening template %s: %w", templatePath, err)
	}
	defer reader.Close()

	pkg := &pptxPackage{parts: make(map[string][]byte)}
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("opening template part %s: %w", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("reading template part %s: %w", file.Name, err)
		}
		pkg.setPart(file.Name, data)
	}

	if _, ok := pkg.parts["ppt/presentation.xml"]; !ok {
		return nil, fmt.Errorf("template %s is not a presentation", templatePath)
	}
	return pkg, nil
}

func newPackage() *pptxPackage {
	return &pptxPackage{parts: make(map[string][]byte)}
}

func (p *pptxPackage) setPart(name string, data []byte) {
	if _, exists := p.parts[name]; !exists {
		p.names = append(p.names, name)
	}
	p.parts[name] = data
}

func (p *pptxPackage) save(outputPath string) error {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, name := range p.names {
		w, err := writer.Create(name)
		if err != nil {
			return fmt.Errorf("writing part %s: %w", name, err)
		}
		if _, err := w.Write(p.parts[name]); err != nil {
			return fmt.Errorf("writing part %s: %w", name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalizing presentation: %w", err)
	}
	return os.WriteFile(outputPath, buf.Bytes(), 0o644)
}

// slideParts returns the slide part names in presentation order, resolved
// through the sldIdLst relationship references.
func (p *pptxPackage) slideParts() ([]string, error) {
	presDoc := etree.NewDocument()
	if err := presDoc.ReadFromBytes(p.parts["ppt/presentation.xml"]); err != nil {
		return nil, fmt.Errorf("parsing presentation.xml: %w", err)
	}

	relsData, ok := p.parts["ppt/_rels/presentation.xml.rels"]
	if !ok {
		return nil, fmt.Errorf("presentation relationships missing")
	}
	relsDoc := etree.NewDocument()
	if err := relsDoc.ReadFromBytes(relsData); err != nil {
		return nil, fmt.Errorf("parsing presentation relationships: %w", err)
	}

	targets := make(map[string]string)
	for _, rel := range relsDoc.FindElements("//Relationship") {
		targets[rel.SelectAttrValue("Id", "")] = rel.SelectAttrValue("Target", "")
	}

	var slides []string
	for _, sldID := range presDoc.FindElements("//p:sldIdLst/p:sldId") {
		rid := sldID.SelectAttrValue("r:id", "")
		target, ok := targets[rid]
		if !ok {
			return nil, fmt.Errorf("slide relationship %s unresolved", rid)
		}
		slides = append(slides, path.Join("ppt", target))
	}
	return slides, nil
}

// slideDoc parses a slide part.
func (p *pptxPackage) slideDoc(partName string) (*etree.Document, error) {
	data, ok := p.parts[partName]
	if !ok {
		return nil, fmt.Errorf("slide part %s missing", partName)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", partName, err)
	}
	return doc, nil
}

func (p *pptxPackage) writeSlideDoc(partName string, doc *etree.Document) error {
	data, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serializing %s: %w", partName, err)
	}
	p.setPart(partName, data)
	return nil
}

var mediaNumberRe = regexp.MustCompile(`^ppt/media/image(\d+)\.`)

// addMedia stores image bytes under ppt/media and registers the extension's
// content type. It returns the new part's name.
func (p *pptxPackage) addMedia(data []byte, ext string) (string, error) {
	next := 1
	for _, name := range p.names {
		if m := mediaNumberRe.FindStringSubmatch(name); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil && n >= next {
				next = n + 1
			}
		}
	}
	partName := fmt.Sprintf("ppt/media/image%d.%s", next, ext)
	p.setPart(partName, data)
	if err := p.ensureImageContentType(ext); err != nil {
		return "", err
	}
	return partName, nil
}

var imageContentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
}

func (p *pptxPackage) ensureImageContentType(ext string) error {
	data, ok := p.parts["[Content_Types].xml"]
	if !ok {
		return fmt.Errorf("content types part missing")
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("parsing content types: %w", err)
	}

	root := doc.Root()
	for _, def := range root.FindElements("./Default") {
		if strings.EqualFold(def.SelectAttrValue("Extension", ""), ext) {
			return nil
		}
	}

	contentType, ok := imageContentTypes[ext]
	if !ok {
		return fmt.Errorf("unsupported image extension %q", ext)
	}
	def := root.CreateElement("Default")
	def.CreateAttr("Extension", ext)
	def.CreateAttr("ContentType", contentType)

	out, err := doc.WriteToBytes()
	if err != nil {
		return fmt.Errorf("serializing content types: %w", err)
	}
	p.setPart("[Content_Types].xml", out)
	return nil
}

// addSlideImageRel links mediaPart into slidePart's relationships and
// returns the relationship id for the r:embed attribute.
func (p *pptxPackage) addSlideImageRel(slidePart, mediaPart string) (string, error) {
	relsName := path.Join(path.Dir(slidePart), "_rels", path.Base(slidePart)+".rels")

	doc := etree.NewDocument()
	if data, ok := p.parts[relsName]; ok {
		if err := doc.ReadFromBytes(data); err != nil {
			return "", fmt.Errorf("parsing %s: %w", relsName, err)
		}
	} else {
		doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
		root := doc.CreateElement("Relationships")
		root.CreateAttr("xmlns", relNSURI)
	}

	root := doc.Root()
	next := 1
	for _, rel := range root.FindElements("./Relationship") {
		id := rel.SelectAttrValue("Id", "")
		if n, err := strconv.Atoi(strings.TrimPrefix(id, "rId")); err == nil && n >= next {
			next = n + 1
		}
	}

	rid := fmt.Sprintf("rId%d", next)
	rel := root.CreateElement("Relationship")
	rel.CreateAttr("Id", rid)
	rel.CreateAttr("Type", imageRelType)
	rel.CreateAttr("Target", "../media/"+path.Base(mediaPart))

	out, err := doc.WriteToBytes()
	if err != nil {
		return "", fmt.Errorf("serializing %s: %w", relsName, err)
	}
	p.setPart(relsName, out)
	return rid, nil
}
