package annotated

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KENDAXA-Development/pdf-utils/annot"
	"github.com/KENDAXA-Development/pdf-utils/geom"
	"github.com/KENDAXA-Development/pdf-utils/layout"
)

// insuranceLayout is the canonical two-flow test page: the first flow reads
// "Being killed at train station Insurance", the second pads the document
// above the minimum word count.
func insuranceLayout(t *testing.T) *layout.Document {
	return buildLayout(t,
		[]wordSpec{
			{"Being", 83.46, 505, 120, 517},
			{"killed", 122, 505, 155, 517},
			{"at", 157, 505, 166, 517},
			{"train", 168, 505, 195, 517},
			{"station", 197, 505, 221, 517},
			{"Insurance", 230, 505, 290, 517},
		},
		[]wordSpec{
			{"Your", 83.46, 605, 110, 617},
			{"policy", 112, 605, 150, 617},
			{"number", 152, 605, 200, 617},
			{"is", 202, 605, 216, 617},
			{"12345", 218, 605, 260, 617},
		},
	)
}

func TestNeighborhoodContiguousIndices(t *testing.T) {
	lay := insuranceLayout(t)
	d, hook := newTestDoc(t, nil, lay)

	flowWords := lay.Flows()[0].Words()
	nb := d.neighborhood(flowWords[2:5])

	require.NotNil(t, nb)
	assert.Equal(t, 0, nb.Flow.ID())
	assert.Equal(t, []int{2, 3, 4}, nb.Indices)
	assert.Equal(t, []string{"Being", "killed", "at", "train", "station", "Insurance"}, nb.Words)
	assert.Empty(t, warnings(hook))
}

func TestNeighborhoodAcrossFlowsFails(t *testing.T) {
	lay := insuranceLayout(t)
	d, hook := newTestDoc(t, nil, lay)

	words := []*layout.Word{
		lay.Flows()[0].Words()[0],
		lay.Flows()[1].Words()[0],
	}
	nb := d.neighborhood(words)

	assert.Nil(t, nb)
	require.Len(t, warnings(hook), 1)
	assert.Contains(t, warnings(hook)[0], "different flows")
}

func TestNeighborhoodNonContiguousWarnsButSucceeds(t *testing.T) {
	lay := insuranceLayout(t)
	d, hook := newTestDoc(t, nil, lay)

	flowWords := lay.Flows()[0].Words()
	nb := d.neighborhood([]*layout.Word{flowWords[1], flowWords[3]})

	require.NotNil(t, nb)
	assert.Equal(t, []int{1, 3}, nb.Indices)
	require.Len(t, warnings(hook), 1)
	assert.Contains(t, warnings(hook)[0], "not connected")
}

func TestFlowsWithAnnotationsEndToEnd(t *testing.T) {
	lay := insuranceLayout(t)

	// native bottom-origin box (83.46, 324)-(221.12, 337.88) on an
	// 842-height page flips to (83.46, 504.12)-(221.12, 518)
	box := annot.BoxFromPDF([]float64{83.46, 324, 221.12, 337.88}, 842)
	a := rectAnnotation(box, "risk")

	d, hook := newTestDoc(t, []annot.Annotation{a}, lay)
	flows := d.FlowsWithAnnotations(nil)

	require.Len(t, flows, 2)
	assert.Equal(t, []int{0, 1}, SortedFlowIDs(flows))

	record := flows[0]
	assert.Equal(t, 0, record.Page)
	assert.Equal(t, []string{"Being", "killed", "at", "train", "station", "Insurance"}, record.Words)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, record.AnnotatedIndices["risk"])

	assert.Empty(t, flows[1].AnnotatedIndices)
	assert.Empty(t, warnings(hook))
}

func TestFlowsGuardMinimumWordCount(t *testing.T) {
	lay := buildLayout(t, []wordSpec{
		{"too", 0, 0, 10, 10},
		{"few", 12, 0, 22, 10},
		{"words", 24, 0, 34, 10},
	})
	a := rectAnnotation(geom.NewRect(0, 0, 35, 10), "x")

	d, hook := newTestDoc(t, []annot.Annotation{a}, lay)
	flows := d.FlowsWithAnnotations(nil)

	assert.Empty(t, flows)
	require.NotEmpty(t, warnings(hook))
	assert.Contains(t, warnings(hook)[0], "cannot extract digital content")
}

func TestFlowsSkipEmptyTextContent(t *testing.T) {
	lay := insuranceLayout(t)
	a := rectAnnotation(geom.NewRect(83, 504, 222, 518), "")

	d, hook := newTestDoc(t, []annot.Annotation{a}, lay)
	flows := d.FlowsWithAnnotations(nil)

	assert.Empty(t, flows[0].AnnotatedIndices)

	var found bool
	for _, msg := range warnings(hook) {
		if strings.Contains(msg, "empty text_content") {
			found = true
		}
	}
	assert.True(t, found, "expected an empty-text_content warning")
}

func TestFlowsSkipUnmatchedAnnotations(t *testing.T) {
	lay := insuranceLayout(t)
	a := rectAnnotation(geom.NewRect(400, 400, 420, 420), "orphan")

	d, hook := newTestDoc(t, []annot.Annotation{a}, lay)
	flows := d.FlowsWithAnnotations(nil)

	assert.Empty(t, flows[0].AnnotatedIndices)
	assert.Empty(t, flows[1].AnnotatedIndices)

	var found bool
	for _, msg := range warnings(hook) {
		if strings.Contains(msg, "found with no words") {
			found = true
		}
	}
	assert.True(t, found, "expected a no-words warning")
}

func TestFlowsAccumulateSameDescription(t *testing.T) {
	lay := insuranceLayout(t)

	first := rectAnnotation(geom.NewRect(83, 504, 121, 518), "risk")   // covers "Being"
	second := rectAnnotation(geom.NewRect(167, 504, 196, 518), "risk") // covers "train"

	d, hook := newTestDoc(t, []annot.Annotation{first, second}, lay)
	flows := d.FlowsWithAnnotations(nil)

	assert.Equal(t, []int{0, 3}, flows[0].AnnotatedIndices["risk"])
	assert.Empty(t, warnings(hook))
}

func TestFlowsApplyNormalizer(t *testing.T) {
	lay := insuranceLayout(t)
	a := rectAnnotation(geom.NewRect(83, 504, 121, 518), "  Risk  ")

	d, _ := newTestDoc(t, []annot.Annotation{a}, lay)
	flows := d.FlowsWithAnnotations(NormalizerFunc(func(s string) string {
		return strings.ToLower(strings.TrimSpace(s))
	}))

	assert.Equal(t, []int{0}, flows[0].AnnotatedIndices["risk"])
	assert.Empty(t, flows[0].AnnotatedIndices["  Risk  "])
}
