package annot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mgmeyers/unipdf/v3/core"
	"github.com/mgmeyers/unipdf/v3/model"
	"github.com/sirupsen/logrus"
)

// ErrCannotReadPDF marks failures of the fatal class: page geometry that
// cannot be determined, or a document that cannot be opened. Everything
// recoverable is absorbed and reported on the warning channel instead.
var ErrCannotReadPDF = errors.New("cannot read pdf")

// Extractor converts native per-page annotation records into Annotations.
type Extractor struct {
	// Admissible maps lower-cased native subjects to canonical types.
	// Nil means DefaultAdmissibleTypes.
	Admissible map[string]string

	Log *logrus.Logger
}

// NewExtractor returns an extractor with the default admissible type set.
func NewExtractor() *Extractor {
	return &Extractor{Log: logrus.StandardLogger()}
}

func (e *Extractor) admissible() map[string]string {
	if e.Admissible == nil {
		return DefaultAdmissibleTypes
	}
	return e.Admissible
}

func (e *Extractor) log() *logrus.Logger {
	if e.Log == nil {
		return logrus.StandardLogger()
	}
	return e.Log
}

// FromFile extracts all annotations of a PDF file. Encrypted documents are
// tried with an empty password first; failing that is fatal.
func (e *Extractor) FromFile(path string) ([]Annotation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotReadPDF, err)
	}
	defer f.Close()

	return e.FromReadSeeker(f)
}

// FromReadSeeker extracts all annotations from PDF data.
func (e *Extractor) FromReadSeeker(rs io.ReadSeeker) ([]Annotation, error) {
	reader, err := model.NewPdfReader(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotReadPDF, err)
	}

	encrypted, err := reader.IsEncrypted()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotReadPDF, err)
	}
	if encrypted {
		ok, err := reader.Decrypt([]byte(""))
		if err != nil || !ok {
			return nil, fmt.Errorf("%w: cannot decrypt document", ErrCannotReadPDF)
		}
	}

	return e.FromReader(reader)
}

// FromReader walks the document page by page. A page whose annotation
// container cannot be read yields zero annotations and a warning; unreadable
// page geometry aborts the whole document with ErrCannotReadPDF.
func (e *Extractor) FromReader(reader *model.PdfReader) ([]Annotation, error) {
	numPages, err := reader.GetNumPages()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCannotReadPDF, err)
	}

	annotations := []Annotation{}
	for i := 0; i < numPages; i++ {
		page, err := reader.GetPage(i + 1)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrCannotReadPDF, i, err)
		}

		pageAnnots, err := e.extractPage(page, i)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, pageAnnots...)
	}

	return annotations, nil
}

func (e *Extractor) extractPage(page *model.PdfPage, pageIdx int) ([]Annotation, error) {
	height, err := pageHeight(page, pageIdx)
	if err != nil {
		return nil, err
	}

	native, err := page.GetAnnotations()
	if err != nil {
		// recoverable: skip page, keep the rest of the document
		e.log().Warnf("cannot read annotations on page %d: %v", pageIdx, err)
		return nil, nil
	}

	annotations := []Annotation{}
	for _, annotation := range native {
		if annotation == nil {
			continue
		}

		dict, ok := core.GetDict(annotation.GetContainingPdfObject())
		if !ok {
			continue
		}

		subjObj := dict.Get("Subj")
		if subjObj == nil {
			// no subject: not a hand-placed markup annotation
			continue
		}
		subject := ""
		if s, ok := core.GetString(subjObj); ok {
			subject = strings.ToLower(s.Decoded())
		}

		canonical, admissible := e.admissible()[subject]
		if !admissible {
			e.log().Warnf("foreign annotation found (type %q, page %d)", subject, pageIdx)
			continue
		}

		rectArr, ok := core.GetArray(annotation.Rect)
		if !ok {
			e.log().Warnf("annotation on page %d has no rectangle, skipping", pageIdx)
			continue
		}
		rect, err := rectArr.ToFloat64Array()
		if err != nil || len(rect) != 4 {
			e.log().Warnf("annotation on page %d has a malformed rectangle, skipping", pageIdx)
			continue
		}

		a := Annotation{
			Page: pageIdx,
			Type: canonical,
			Box:  BoxFromPDF(rect, height),
		}
		if s, ok := core.GetString(annotation.Contents); ok {
			// byte-encoded contents are decoded to UTF-8 here
			a.TextContent = removeNul(s.Decoded())
		}
		if s, ok := core.GetString(dict.Get("T")); ok {
			a.Author = s.Decoded()
		}

		annotations = append(annotations, a)
	}

	return annotations, nil
}

// pageHeight determines the page height from the crop box (media box when no
// crop box is set). A nonzero crop origin makes annotation positions
// ambiguous and is fatal for the document.
func pageHeight(page *model.PdfPage, pageIdx int) (float64, error) {
	box := page.CropBox
	if box == nil {
		box = page.MediaBox
	}
	if box == nil {
		return 0, fmt.Errorf("%w: page %d has no crop or media box", ErrCannotReadPDF, pageIdx)
	}
	if box.Llx != 0 || box.Lly != 0 {
		return 0, fmt.Errorf("%w: crop box of page %d does not start at origin (%v, %v)",
			ErrCannotReadPDF, pageIdx, box.Llx, box.Lly)
	}
	return box.Ury, nil
}
