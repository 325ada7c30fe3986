package ocr

import (
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/KENDAXA-Development/pdf-utils/render"
)

// DocumentText renders every page of a PDF at the given DPI and recognizes
// its text. Rendering is sequential (the renderer is single-session), the
// recognition itself runs concurrently with one Tesseract session per page.
// An empty lang keeps Tesseract's default language.
func DocumentText(path string, dpi float64, lang string) ([]string, error) {
	r, err := render.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	numPages := r.NumPages()
	images := make([]image.Image, numPages)
	for i := 0; i < numPages; i++ {
		img, err := r.PageImage(i, dpi)
		if err != nil {
			return nil, err
		}
		images[i] = img
	}

	texts := make([]string, numPages)
	var g errgroup.Group
	for i := range images {
		i := i
		g.Go(func() error {
			c := New()
			defer c.Close()

			if lang != "" {
				if err := c.SetLanguage(lang); err != nil {
					return fmt.Errorf("page %d: %w", i, err)
				}
			}

			text, err := c.ImageText(images[i])
			if err != nil {
				return fmt.Errorf("page %d: %w", i, err)
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return texts, nil
}
