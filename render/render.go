// Package render rasterizes PDF pages and converts between pdf and image
// coordinate spaces. It is the page-rendering collaborator of the annotation
// pipeline; nothing here inspects annotations or text.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"os"

	"github.com/gen2brain/go-fitz"

	"github.com/KENDAXA-Development/pdf-utils/geom"
)

// ErrRotatedPDF signals that a rendered page's aspect ratio disagrees with
// the page geometry, which usually means an internally rotated page.
var ErrRotatedPDF = errors.New("pdf and image width/height ratios differ")

// Renderer renders the pages of one PDF document. Not safe for concurrent
// use; open one Renderer per goroutine.
type Renderer struct {
	doc *fitz.Document
}

// Open prepares a renderer for the given PDF file.
func Open(path string) (*Renderer, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s for rendering: %w", path, err)
	}
	return &Renderer{doc: doc}, nil
}

// Close releases the underlying document.
func (r *Renderer) Close() error {
	return r.doc.Close()
}

// NumPages returns the page count.
func (r *Renderer) NumPages() int {
	return r.doc.NumPage()
}

// PageImage rasterizes one zero-based page at the given DPI.
func (r *Renderer) PageImage(pageIdx int, dpi float64) (image.Image, error) {
	if pageIdx < 0 || pageIdx >= r.doc.NumPage() {
		return nil, fmt.Errorf("page %d out of range (document has %d pages)", pageIdx, r.doc.NumPage())
	}
	img, err := r.doc.ImageDPI(pageIdx, dpi)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", pageIdx, err)
	}
	return img, nil
}

// PageImage renders a single page of a PDF file without keeping a Renderer.
func PageImage(path string, pageIdx int, dpi float64) (image.Image, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return r.PageImage(pageIdx, dpi)
}

// VerifyRatio checks a rendered image against the page's width and height.
// A mismatch beyond the tolerance yields ErrRotatedPDF.
func VerifyRatio(img image.Image, pdfWidth, pdfHeight, tolerance float64) error {
	b := img.Bounds()
	imgW := float64(b.Dx())
	imgH := float64(b.Dy())
	if imgW == 0 || pdfWidth == 0 {
		return fmt.Errorf("%w: degenerate dimensions", ErrRotatedPDF)
	}
	if math.Abs(imgH/imgW-pdfHeight/pdfWidth) > tolerance {
		return fmt.Errorf("%w: image %.0fx%.0f vs page %.0fx%.0f",
			ErrRotatedPDF, imgW, imgH, pdfWidth, pdfHeight)
	}
	return nil
}

// PDFBoxToImageBox converts a box in pdf coordinates (top-left origin, as
// used throughout this module) into the same box on a rendered image.
func PDFBoxToImageBox(box geom.Rect, pdfWidth, pdfHeight float64, imgWidth, imgHeight int) geom.Rect {
	return box.Rescale(float64(imgWidth)/pdfWidth, float64(imgHeight)/pdfHeight)
}

// ImageRect rounds a rectangle to the integer pixel grid.
func ImageRect(r geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Round(r.XMin)),
		int(math.Round(r.YMin)),
		int(math.Round(r.XMax)),
		int(math.Round(r.YMax)),
	)
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// CropImage cuts a subimage out of img.
func CropImage(img image.Image, crop image.Rectangle) (image.Image, error) {
	simg, ok := img.(subImager)
	if !ok {
		return nil, fmt.Errorf("image does not support cropping")
	}
	return simg.SubImage(crop), nil
}

// WriteImage stores an image as jpg or png.
func WriteImage(img image.Image, name string, format string, quality int) error {
	if format == "jpg" {
		return writeJPGImage(img, name, quality)
	}
	return writePNGImage(img, name)
}

func writeJPGImage(img image.Image, name string, quality int) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	defer fd.Close()

	return jpeg.Encode(fd, img, &jpeg.Options{Quality: quality})
}

func writePNGImage(img image.Image, name string) error {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	defer fd.Close()

	return png.Encode(fd, img)
}
