// Package annotated aligns extracted annotations with the word layout of a
// document: it scores annotation-word overlaps, resolves the enclosing text
// flow of matched words, and aggregates the results into flow-indexed
// records.
//
// A Document is built once from in-memory inputs and is meant for a single
// goroutine; concurrent callers should each build their own Document (the
// derived values are pure functions of the inputs).
package annotated

import (
	"github.com/sirupsen/logrus"

	"github.com/KENDAXA-Development/pdf-utils/annot"
	"github.com/KENDAXA-Development/pdf-utils/layout"
)

// Config carries the matching and aggregation parameters.
type Config struct {
	// MatchThreshold is the primary word-coverage threshold (strict >).
	MatchThreshold float64

	// MinimalMatchThreshold is the fallback threshold used when no word
	// passes the primary one; only the single best word is kept then.
	MinimalMatchThreshold float64

	// EnrichTypes lists the annotation types that get matched with words.
	EnrichTypes []string

	// MinWordsInDocument is the minimum total word count below which the
	// document is treated as having no extractable digital text.
	MinWordsInDocument int
}

// DefaultConfig returns the parameters the thresholds downstream were tuned
// against.
func DefaultConfig() Config {
	return Config{
		MatchThreshold:        0.4,
		MinimalMatchThreshold: 0.2,
		EnrichTypes:           []string{annot.TypeRectangle},
		MinWordsInDocument:    10,
	}
}

// MatchedWord is one word overlapping an annotation, with the fraction of
// the word's own box covered by the annotation. This is intentionally not a
// symmetric IoU: an annotation drawn slightly larger than the word it frames
// still scores 1.0.
type MatchedWord struct {
	Word  *layout.Word
	Score float64
}

// MatchResult pairs an annotation with its matched words, ordered by
// document order of the words.
type MatchResult struct {
	Annotation annot.Annotation
	Words      []MatchedWord
}

// Document drives the pipeline for one document. Enriched annotations are
// derived lazily and memoized; recomputation yields an identical value.
type Document struct {
	cfg Config
	log *logrus.Logger

	annotations []annot.Annotation
	layout      *layout.Document

	enriched     []MatchResult
	enrichedDone bool
}

// New builds a Document over already-materialized annotations and layout,
// with the default configuration.
func New(annotations []annot.Annotation, lay *layout.Document) *Document {
	return NewWithConfig(annotations, lay, DefaultConfig())
}

// NewWithConfig builds a Document with explicit parameters.
func NewWithConfig(annotations []annot.Annotation, lay *layout.Document, cfg Config) *Document {
	return &Document{
		cfg:         cfg,
		log:         logrus.StandardLogger(),
		annotations: annotations,
		layout:      lay,
	}
}

// SetLogger redirects the document's warning output.
func (d *Document) SetLogger(l *logrus.Logger) {
	d.log = l
}

// RawAnnotations returns the annotations the document was built from.
func (d *Document) RawAnnotations() []annot.Annotation {
	return d.annotations
}

// Layout returns the word layout the document was built from.
func (d *Document) Layout() *layout.Document {
	return d.layout
}

// EnrichedAnnotations returns every annotation of an enriched type together
// with its matched words. The result is memoized on first call.
func (d *Document) EnrichedAnnotations() []MatchResult {
	if !d.enrichedDone {
		d.enriched = d.matchAnnotations()
		d.enrichedDone = true
	}
	return d.enriched
}

// InvalidateEnriched drops the memoized match results so the next access
// recomputes them.
func (d *Document) InvalidateEnriched() {
	d.enriched = nil
	d.enrichedDone = false
}

func (d *Document) enrichType(typ string) bool {
	for _, t := range d.cfg.EnrichTypes {
		if t == typ {
			return true
		}
	}
	return false
}
