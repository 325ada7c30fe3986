package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KENDAXA-Development/pdf-utils/geom"
)

const sampleBBoxLayout = `<?xml version="1.0"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title></title></head>
<body>
<doc>
  <page width="595.276" height="841.89">
    <flow>
      <block xMin="83.46" yMin="504.12" xMax="221.12" yMax="518.00">
        <line xMin="83.46" yMin="504.12" xMax="221.12" yMax="518.00">
          <word xMin="83.46" yMin="505.00" xMax="120.00" yMax="517.00">Being</word>
          <word xMin="122.00" yMin="505.00" xMax="155.00" yMax="517.00">killed</word>
          <word xMin="157.00" yMin="505.00" xMax="166.00" yMax="517.00">at</word>
          <word xMin="168.00" yMin="505.00" xMax="195.00" yMax="517.00">train</word>
          <word xMin="197.00" yMin="505.00" xMax="221.00" yMax="517.00">station</word>
          <word xMin="230.00" yMin="505.00" xMax="290.00" yMax="517.00">Insurance</word>
        </line>
      </block>
    </flow>
    <flow>
      <block xMin="83.46" yMin="604.12" xMax="321.12" yMax="618.00">
        <line xMin="83.46" yMin="604.12" xMax="321.12" yMax="618.00">
          <word xMin="83.46" yMin="605.00" xMax="110.00" yMax="617.00">Your</word>
          <word xMin="112.00" yMin="605.00" xMax="150.00" yMax="617.00">policy</word>
          <word xMin="152.00" yMin="605.00" xMax="200.00" yMax="617.00">number</word>
          <word xMin="202.00" yMin="605.00" xMax="216.00" yMax="617.00">is</word>
          <word xMin="218.00" yMin="605.00" xMax="260.00" yMax="617.00">12345</word>
        </line>
      </block>
    </flow>
  </page>
  <page width="595.276" height="841.89">
    <flow>
      <block xMin="50.00" yMin="100.00" xMax="150.00" yMax="114.00">
        <line xMin="50.00" yMin="100.00" xMax="150.00" yMax="114.00">
          <word xMin="50.00" yMin="100.00" xMax="90.00" yMax="114.00">Second</word>
          <word xMin="92.00" yMin="100.00" xMax="130.00" yMax="114.00">page</word>
        </line>
      </block>
    </flow>
  </page>
</doc>
</body>
</html>
`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(sampleBBoxLayout))
	require.NoError(t, err)
	return doc
}

func TestParseHierarchy(t *testing.T) {
	doc := parseSample(t)

	require.Len(t, doc.Pages, 2)
	assert.Equal(t, 0, doc.Pages[0].Number)
	assert.Equal(t, 1, doc.Pages[1].Number)
	assert.Equal(t, 595.276, doc.Pages[0].Width)
	assert.Equal(t, 841.89, doc.Pages[0].Height)

	require.Len(t, doc.Pages[0].Flows, 2)
	require.Len(t, doc.Pages[1].Flows, 1)

	words := doc.Pages[0].Flows[0].Words()
	require.Len(t, words, 6)
	assert.Equal(t, "Being", words[0].Text)
	assert.Equal(t, geom.NewRect(83.46, 505, 120, 517), words[0].Box)
	assert.Equal(t, "Insurance", words[5].Text)
}

func TestFlowIDsAreStableAcrossPages(t *testing.T) {
	doc := parseSample(t)

	flows := doc.Flows()
	require.Len(t, flows, 3)
	for i, f := range flows {
		assert.Equal(t, i, f.ID())
	}
	assert.Equal(t, 0, flows[0].Page().Number)
	assert.Equal(t, 0, flows[1].Page().Number)
	assert.Equal(t, 1, flows[2].Page().Number)

	// a re-parse of the same input yields identical ids
	again := parseSample(t)
	for i, f := range again.Flows() {
		assert.Equal(t, flows[i].ID(), f.ID())
	}
}

func TestParentTraversal(t *testing.T) {
	doc := parseSample(t)

	w := doc.Pages[0].Flows[1].Words()[2]
	assert.Equal(t, "number", w.Text)

	flow := w.Line().Block().Flow()
	assert.Equal(t, 1, flow.ID())
	assert.Equal(t, doc.Pages[0], flow.Page())
}

func TestWordCount(t *testing.T) {
	doc := parseSample(t)

	assert.Equal(t, 13, doc.WordCount())
	assert.Len(t, doc.Words(), 13)
	assert.Len(t, doc.Pages[0].Words(), 11)
	assert.Len(t, doc.Pages[1].Words(), 2)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse(strings.NewReader("this is not xml <"))
	assert.Error(t, err)
}
