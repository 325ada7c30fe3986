package annotated

import (
	"github.com/KENDAXA-Development/pdf-utils/annot"
	"github.com/KENDAXA-Development/pdf-utils/geom"
	"github.com/KENDAXA-Development/pdf-utils/layout"
)

// matchAnnotations computes match results for all annotations of the
// enriched types.
func (d *Document) matchAnnotations() []MatchResult {
	matched := []MatchResult{}
	for _, a := range d.annotations {
		if !d.enrichType(a.Type) {
			continue
		}
		if a.Page < 0 || a.Page >= len(d.layout.Pages) {
			d.log.Warnf("annotation %s points to page %d outside the layout, skipping", a, a.Page)
			continue
		}
		matched = append(matched, MatchResult{
			Annotation: a,
			Words:      d.matchWords(a, d.layout.Pages[a.Page].Words()),
		})
	}
	return matched
}

// matchWords selects the words overlapping one annotation under the
// two-threshold fallback policy: every word above the primary threshold, or,
// failing that, only the single best word above the minimal threshold.
func (d *Document) matchWords(a annot.Annotation, wordsInPage []*layout.Word) []MatchedWord {
	words := scoredWords(wordsInPage, a.Box, d.cfg.MatchThreshold)
	if len(words) > 0 {
		return words
	}

	// no confident match; refine the search with the minimal threshold
	words = scoredWords(wordsInPage, a.Box, d.cfg.MinimalMatchThreshold)
	if len(words) > 0 {
		best := words[0]
		for _, w := range words[1:] {
			if w.Score > best.Score {
				best = w
			}
		}
		d.log.Warnf("only weak annotation-word match; returning the word with largest overlap (%q, score = %v)",
			best.Word.Text, best.Score)
		return []MatchedWord{best}
	}

	d.log.Warnf("cannot match annotation %s with any word", a)
	return []MatchedWord{}
}

// scoredWords keeps the words whose coverage score against the annotation
// box exceeds the threshold (strictly). The score is the fraction of the
// word's own box covered by the annotation.
func scoredWords(words []*layout.Word, annotBox geom.Rect, threshold float64) []MatchedWord {
	scored := []MatchedWord{}
	for _, word := range words {
		score := coverageScore(word.Box, annotBox)
		if score > threshold {
			scored = append(scored, MatchedWord{Word: word, Score: score})
		}
	}
	return scored
}

func coverageScore(wordBox, annotBox geom.Rect) float64 {
	if wordBox.Area() == 0 {
		return 0
	}
	inter, ok := wordBox.Intersection(annotBox)
	if !ok {
		return 0
	}
	return inter.Area() / wordBox.Area()
}
