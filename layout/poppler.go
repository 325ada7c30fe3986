package layout

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/KENDAXA-Development/pdf-utils/geom"
)

// bbox-layout XML as emitted by `pdftotext -bbox-layout`. Attribute names are
// camel-cased (xMin, not xmin) in the raw output.
type xmlRoot struct {
	XMLName xml.Name
	Pages   []xmlPage `xml:"body>doc>page"`
}

type xmlPage struct {
	Width  float64   `xml:"width,attr"`
	Height float64   `xml:"height,attr"`
	Flows  []xmlFlow `xml:"flow"`
}

type xmlFlow struct {
	Blocks []xmlBlock `xml:"block"`
}

type xmlBlock struct {
	Lines []xmlLine `xml:"line"`
}

type xmlLine struct {
	Words []xmlWord `xml:"word"`
}

type xmlWord struct {
	XMin float64 `xml:"xMin,attr"`
	YMin float64 `xml:"yMin,attr"`
	XMax float64 `xml:"xMax,attr"`
	YMax float64 `xml:"yMax,attr"`
	Text string  `xml:",chardata"`
}

// Parse decodes a `pdftotext -bbox-layout` document into the layout tree.
func Parse(r io.Reader) (*Document, error) {
	var root xmlRoot
	dec := xml.NewDecoder(r)
	// poppler declares UTF-8; tolerate other declared charsets by passing
	// the raw bytes through.
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("decoding bbox layout: %w", err)
	}

	doc := &Document{}
	for pageIdx, xp := range root.Pages {
		page := &Page{Number: pageIdx, Width: xp.Width, Height: xp.Height}
		for _, xf := range xp.Flows {
			flow := &Flow{}
			for _, xb := range xf.Blocks {
				block := &Block{}
				for _, xl := range xb.Lines {
					line := &Line{}
					for _, xw := range xl.Words {
						line.Words = append(line.Words, &Word{
							Text: xw.Text,
							Box:  geom.NewRect(xw.XMin, xw.YMin, xw.XMax, xw.YMax),
						})
					}
					block.Lines = append(block.Lines, line)
				}
				flow.Blocks = append(flow.Blocks, block)
			}
			page.Flows = append(page.Flows, flow)
		}
		doc.Pages = append(doc.Pages, page)
	}
	doc.link()

	return doc, nil
}

// FromPDF runs `pdftotext -bbox-layout` on the given file and parses the
// result. Poppler must be installed. Page selection follows pdftotext's
// 1-based -f/-l convention internally; pages here are zero-based.
func FromPDF(path string) (*Document, error) {
	return fromPDF(path, nil)
}

// PageFromPDF extracts the layout of a single zero-based page.
func PageFromPDF(path string, pageIdx int) (*Document, error) {
	return fromPDF(path, []string{"-f", strconv.Itoa(pageIdx + 1), "-l", strconv.Itoa(pageIdx + 1)})
}

func fromPDF(path string, extraArgs []string) (*Document, error) {
	args := []string{"-bbox-layout"}
	args = append(args, extraArgs...)
	args = append(args, path, "-")

	cmd := exec.Command("pdftotext", args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("running pdftotext on %s: %w", path, err)
	}

	return Parse(&out)
}
