package annotated

import (
	"sort"

	"github.com/KENDAXA-Development/pdf-utils/layout"
)

// Normalizer transforms an annotation's text content into the description
// string under which its word indices are aggregated. It can be used to
// unify text content coming from different annotators.
type Normalizer interface {
	Normalize(string) string
}

// NormalizerFunc adapts a plain function to the Normalizer interface.
type NormalizerFunc func(string) string

// Normalize implements Normalizer.
func (f NormalizerFunc) Normalize(s string) string { return f(s) }

// Identity is the default Normalizer: it returns the description unchanged.
var Identity Normalizer = NormalizerFunc(func(s string) string { return s })

// FlowRecord is the per-flow aggregation result: the flow's words, its page,
// and for each description the indices of annotated words within the flow.
// Index lists accumulate across annotations sharing a description; insertion
// order is preserved and duplicates are allowed.
type FlowRecord struct {
	Words            []string         `json:"words"`
	Page             int              `json:"page"`
	AnnotatedIndices map[string][]int `json:"annotated_indices"`
}

// Neighborhood locates a set of matched words within their common enclosing
// flow.
type Neighborhood struct {
	Flow    *layout.Flow
	Words   []string // all words of the flow, in document order
	Indices []int    // positions of the matched words within the flow
}

// neighborhood resolves the common flow of the given words and their indices
// within it. The input must be non-empty; callers filter out annotations
// with no matched words. Words spanning more than one flow cannot be
// attributed to a single neighborhood and yield nil.
func (d *Document) neighborhood(words []*layout.Word) *Neighborhood {
	if len(words) == 0 {
		d.log.Warnf("no annotated words, cannot create neighborhood")
		return nil
	}

	// the flow is exactly three ancestry levels above a word
	flow := words[0].Line().Block().Flow()
	for _, w := range words[1:] {
		if w.Line().Block().Flow() != flow {
			d.log.Warnf("words in the annotation are in different flows, cannot fetch neighborhood -- skipping")
			return nil
		}
	}

	matched := make(map[*layout.Word]bool, len(words))
	for _, w := range words {
		matched[w] = true
	}

	var flowWords []string
	var indices []int
	for i, w := range flow.Words() {
		flowWords = append(flowWords, w.Text)
		if matched[w] {
			indices = append(indices, i)
		}
	}

	if !contiguous(indices) {
		// data-quality signal only; the result is still produced
		d.log.Warnf("annotated words are not connected")
	}

	return &Neighborhood{Flow: flow, Words: flowWords, Indices: indices}
}

func contiguous(indices []int) bool {
	for i := 1; i < len(indices); i++ {
		if indices[i] != indices[i-1]+1 {
			return false
		}
	}
	return true
}

// FlowsWithAnnotations aggregates the enriched annotations over the whole
// document into one FlowRecord per flow, keyed by flow id. A nil normalizer
// means Identity. Documents with fewer words than MinWordsInDocument are
// treated as having no extractable digital text and yield an empty result.
func (d *Document) FlowsWithAnnotations(normalizer Normalizer) map[int]*FlowRecord {
	if normalizer == nil {
		normalizer = Identity
	}

	if d.layout.WordCount() < d.cfg.MinWordsInDocument {
		d.log.Warnf("cannot extract digital content from pdf (no words there)")
		return map[int]*FlowRecord{}
	}

	flows := d.initializeFlows()

	for _, m := range d.EnrichedAnnotations() {
		if len(m.Words) == 0 {
			d.log.Warnf("annotation %s found with no words", m.Annotation)
			continue
		}

		words := make([]*layout.Word, len(m.Words))
		for i, mw := range m.Words {
			words[i] = mw.Word
		}

		nb := d.neighborhood(words)
		if nb == nil {
			d.log.Warnf("cannot get ancestor flow for the words of annotation %s, skipping", m.Annotation)
			continue
		}

		if m.Annotation.TextContent == "" {
			d.log.Warnf("%s annotation with empty text_content found, annot=%s", m.Annotation.Type, m.Annotation)
			continue
		}
		description := normalizer.Normalize(m.Annotation.TextContent)

		record := flows[nb.Flow.ID()]
		record.AnnotatedIndices[description] = append(record.AnnotatedIndices[description], nb.Indices...)
	}

	return flows
}

// initializeFlows creates one empty FlowRecord per flow of the layout.
func (d *Document) initializeFlows() map[int]*FlowRecord {
	flows := make(map[int]*FlowRecord, len(d.layout.Flows()))
	for _, flow := range d.layout.Flows() {
		words := []string{}
		for _, w := range flow.Words() {
			words = append(words, w.Text)
		}
		flows[flow.ID()] = &FlowRecord{
			Words:            words,
			Page:             flow.Page().Number,
			AnnotatedIndices: map[string][]int{},
		}
	}
	return flows
}

// SortedFlowIDs returns the keys of a flow aggregation in ascending order,
// for deterministic iteration.
func SortedFlowIDs(flows map[int]*FlowRecord) []int {
	ids := make([]int, 0, len(flows))
	for id := range flows {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
