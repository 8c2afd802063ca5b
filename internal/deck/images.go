package deck

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/beevik/etree"
)

const (
	downloadTimeout = 10 * time.Second
	maxImageBytes   = 2 << 20
	downloadUA      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// imageStage holds downloaded images in a run-scoped temp directory until
// the deck is saved. Callers must invoke cleanup on every exit path.
type imageStage struct {
	dir    string
	client *http.Client
}

func newImageStage(client *http.Client) (*imageStage, error) {
	dir, err := os.MkdirTemp("", "teaser_images_")
	if err != nil {
		return nil, fmt.Errorf("creating image staging dir: %w", err)
	}
	if client == nil {
		client = &http.Client{Timeout: downloadTimeout}
	}
	return &imageStage{dir: dir, client: client}, nil
}

func (s *imageStage) cleanup() {
	os.RemoveAll(s.dir)
}

// download fetches an image, verifies it decodes as one, and stages it on
// disk. It returns the staged path and the decoded format ("jpeg", "png",
// "gif").
func (s *imageStage) download(ctx context.Context, url, filename string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", fmt.Errorf("building image request: %w", err)
	}
	req.Header.Set("User-Agent", downloadUA)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("downloading %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("downloading %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", url, err)
	}
	if len(data) > maxImageBytes {
		return "", "", fmt.Errorf("image %s exceeds %d bytes", url, maxImageBytes)
	}

	_, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", "", fmt.Errorf("%s is not a valid image: %w", url, err)
	}

	staged := filepath.Join(s.dir, filename)
	if err := os.WriteFile(staged, data, 0o644); err != nil {
		return "", "", fmt.Errorf("staging image: %w", err)
	}
	return staged, format, nil
}

// isPicturePlaceholder reports whether sp carries <p:ph type="pic"/>.
func isPicturePlaceholder(sp *etree.Element) bool {
	ph := sp.FindElement("./p:nvSpPr/p:nvPr/p:ph")
	return ph != nil && ph.SelectAttrValue("type", "") == "pic"
}

// nextShapeID returns an id one past the largest cNvPr id on the slide.
func nextShapeID(root *etree.Element) int {
	max := 1
	for _, cNvPr := range root.FindElements("//p:cNvPr") {
		if id, err := strconv.Atoi(cNvPr.SelectAttrValue("id", "")); err == nil && id > max {
			max = id
		}
	}
	return max + 1
}

// fillImagePlaceholder overlays a picture at the placeholder's position and
// size. The placeholder shape itself is left in place underneath, matching
// how the deck template treats its picture slots. Returns false when the
// placeholder is absent, is not a picture slot, or carries no geometry of
// its own.
func fillImagePlaceholder(pkg *pptxPackage, slidePart string, root *etree.Element, idx int, data []byte, ext string) (bool, error) {
	sp := findPlaceholder(root, idx)
	if sp == nil || !isPicturePlaceholder(sp) {
		return false, nil
	}
	xfrm := sp.FindElement("./p:spPr/a:xfrm")
	if xfrm == nil || xfrm.FindElement("./a:off") == nil || xfrm.FindElement("./a:ext") == nil {
		return false, nil
	}
	off := xfrm.FindElement("./a:off")
	extent := xfrm.FindElement("./a:ext")

	mediaPart, err := pkg.addMedia(data, ext)
	if err != nil {
		return false, err
	}
	rid, err := pkg.addSlideImageRel(slidePart, mediaPart)
	if err != nil {
		return false, err
	}

	spTree := root.FindElement("./p:cSld/p:spTree")
	if spTree == nil {
		return false, fmt.Errorf("slide %s has no shape tree", slidePart)
	}

	id := nextShapeID(root)
	pic := spTree.CreateElement("p:pic")

	nvPicPr := pic.CreateElement("p:nvPicPr")
	cNvPr := nvPicPr.CreateElement("p:cNvPr")
	cNvPr.CreateAttr("id", strconv.Itoa(id))
	cNvPr.CreateAttr("name", fmt.Sprintf("Picture %d", id))
	nvPicPr.CreateElement("p:cNvPicPr").CreateElement("a:picLocks").CreateAttr("noChangeAspect", "1")
	nvPicPr.CreateElement("p:nvPr")

	blipFill := pic.CreateElement("p:blipFill")
	blipFill.CreateElement("a:blip").CreateAttr("r:embed", rid)
	blipFill.CreateElement("a:stretch").CreateElement("a:fillRect")

	spPr := pic.CreateElement("p:spPr")
	newXfrm := spPr.CreateElement("a:xfrm")
	newOff := newXfrm.CreateElement("a:off")
	newOff.CreateAttr("x", off.SelectAttrValue("x", "0"))
	newOff.CreateAttr("y", off.SelectAttrValue("y", "0"))
	newExt := newXfrm.CreateElement("a:ext")
	newExt.CreateAttr("cx", extent.SelectAttrValue("cx", "0"))
	newExt.CreateAttr("cy", extent.SelectAttrValue("cy", "0"))
	prstGeom := spPr.CreateElement("a:prstGeom")
	prstGeom.CreateAttr("prst", "rect")
	prstGeom.CreateElement("a:avLst")

	return true, nil
}
