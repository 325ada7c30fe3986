// Package layout materializes the word layout of a document as produced by
// Poppler's `pdftotext -bbox-layout`: a fixed containment hierarchy of
// page > flow > block > line > word, where each word carries its text and
// bounding box in top-left-origin coordinates.
//
// The tree is read-only once built. Words support parent traversal up to
// their flow, and every flow carries a stable integer id assigned during a
// single document-order pass, so ids stay valid if the layout is
// re-materialized from the same document.
package layout

import "github.com/KENDAXA-Development/pdf-utils/geom"

// Document is the root of the word layout of one document.
type Document struct {
	Pages []*Page

	flows []*Flow
}

// Page is one document page with its size in points.
type Page struct {
	Number int // zero-based page index
	Width  float64
	Height float64
	Flows  []*Flow
}

// Flow is a contiguous block of words, typically a paragraph or a small
// section of text. It is the unit at which annotation neighborhoods are
// reported.
type Flow struct {
	Blocks []*Block

	id   int
	page *Page
}

// Block groups the lines of a flow.
type Block struct {
	Lines []*Line

	flow *Flow
}

// Line is one visual text line.
type Line struct {
	Words []*Word

	block *Block
}

// Word is a single word with its bounding box in the document's native
// top-left-origin coordinate space.
type Word struct {
	Text string
	Box  geom.Rect

	line *Line
}

// ID returns the flow's stable integer identity within its document.
func (f *Flow) ID() int { return f.id }

// Page returns the page the flow belongs to.
func (f *Flow) Page() *Page { return f.page }

// Flow returns the parent flow.
func (b *Block) Flow() *Flow { return b.flow }

// Block returns the parent block.
func (l *Line) Block() *Block { return l.block }

// Line returns the parent line.
func (w *Word) Line() *Line { return w.line }

// Flows returns all flows of the document in document order. The slice index
// of each flow equals its id.
func (d *Document) Flows() []*Flow { return d.flows }

// Words returns all words of the document in document order.
func (d *Document) Words() []*Word {
	var words []*Word
	for _, p := range d.Pages {
		words = append(words, p.Words()...)
	}
	return words
}

// WordCount returns the total number of words across the document.
func (d *Document) WordCount() int {
	n := 0
	for _, p := range d.Pages {
		for _, f := range p.Flows {
			n += f.wordCount()
		}
	}
	return n
}

// Words returns all words on the page in document order.
func (p *Page) Words() []*Word {
	var words []*Word
	for _, f := range p.Flows {
		words = append(words, f.Words()...)
	}
	return words
}

// Words returns the flow's words in document order.
func (f *Flow) Words() []*Word {
	var words []*Word
	for _, b := range f.Blocks {
		for _, l := range b.Lines {
			words = append(words, l.Words...)
		}
	}
	return words
}

func (f *Flow) wordCount() int {
	n := 0
	for _, b := range f.Blocks {
		for _, l := range b.Lines {
			n += len(l.Words)
		}
	}
	return n
}

// link wires parent pointers and assigns flow ids in one traversal pass.
func (d *Document) link() {
	nextFlowID := 0
	for _, page := range d.Pages {
		for _, flow := range page.Flows {
			flow.id = nextFlowID
			flow.page = page
			nextFlowID++
			for _, block := range flow.Blocks {
				block.flow = flow
				for _, line := range block.Lines {
					line.block = block
					for _, word := range line.Words {
						word.line = line
					}
				}
			}
		}
	}
	d.flows = make([]*Flow, 0, nextFlowID)
	for _, page := range d.Pages {
		d.flows = append(d.flows, page.Flows...)
	}
}
