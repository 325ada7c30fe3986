// Package annot defines the uniform annotation entity and extracts native
// PDF annotation records into it.
package annot

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/KENDAXA-Development/pdf-utils/geom"
)

// Canonical annotation types.
const (
	TypeRectangle = "rectangle"
	TypeOval      = "oval"
	TypeNote      = "note"
)

// DefaultAdmissibleTypes maps native subject spellings (lower-cased) to
// canonical annotation types. Locale-variant spellings collapse onto the
// canonical form. Extend this map to admit other annotation kinds.
var DefaultAdmissibleTypes = map[string]string{
	"rectangle": TypeRectangle,
	"oval":      TypeOval,
	"ovál":      TypeOval,
	"note":      TypeNote,
}

// Annotation is one hand-placed annotation in a uniform, serializable form.
// The box is in top-left-origin coordinates (y grows downward from the page
// top), matching the word-layout convention. Label is never derived from the
// document; callers assign it for ML workflows.
type Annotation struct {
	Page        int       `json:"page"`
	Type        string    `json:"type"`
	Box         geom.Rect `json:"box"`
	TextContent string    `json:"text_content"`
	Author      string    `json:"author"`
	Label       *int      `json:"label"`
}

// New validates the annotation type against the admissible set (pass nil for
// the default set) and builds an immutable Annotation. The type comparison is
// case-insensitive; variant spellings are normalized to canonical form.
func New(page int, typ string, box geom.Rect, admissible map[string]string) (Annotation, error) {
	if admissible == nil {
		admissible = DefaultAdmissibleTypes
	}
	canonical, ok := admissible[strings.ToLower(typ)]
	if !ok {
		return Annotation{}, fmt.Errorf("unsupported annotation type: %q", typ)
	}
	return Annotation{Page: page, Type: canonical, Box: box}, nil
}

func (a Annotation) String() string {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Sprintf("Annotation(page=%d, type=%s)", a.Page, a.Type)
	}
	return string(data)
}

// BoxFromPDF flips a native annotation rectangle, given in a bottom-left
// origin system as [xMin, yMin, xMax, yMax], into the top-left-origin system
// used throughout this module.
func BoxFromPDF(rect []float64, pageHeight float64) geom.Rect {
	return geom.NewRect(
		rect[0],
		pageHeight-rect[3],
		rect[2],
		pageHeight-rect[1],
	)
}

// WriteAnnotations serializes annotations as a JSON array of flat records,
// the module's exchange format.
func WriteAnnotations(w io.Writer, annotations []Annotation) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(annotations)
}

// ReadAnnotations reads a JSON array of annotation records.
func ReadAnnotations(r io.Reader) ([]Annotation, error) {
	var annotations []Annotation
	if err := json.NewDecoder(r).Decode(&annotations); err != nil {
		return nil, fmt.Errorf("decoding annotations: %w", err)
	}
	return annotations, nil
}

// removeNul strips control and replacement characters that PDF string
// objects occasionally carry.
func removeNul(str string) string {
	return strings.Map(func(r rune) rune {
		if r == unicode.ReplacementChar {
			return -1
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, str)
}
