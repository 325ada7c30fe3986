// Package ocr recognizes text on rendered page images via the Tesseract
// engine. Tesseract must be installed on the system.
package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"regexp"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps one Tesseract session. A Client is not safe for concurrent
// use; DocumentText opens one per page instead.
type Client struct {
	client *gosseract.Client
	lang   string
}

// New creates an OCR client. Close it to release the Tesseract handle.
func New() *Client {
	return &Client{client: gosseract.NewClient()}
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// SetLanguage selects the recognition language(s); multiple languages are
// given "+"-separated, e.g. "eng+deu".
func (c *Client) SetLanguage(lang string) error {
	c.lang = lang
	return c.client.SetLanguage(strings.Split(lang, "+")...)
}

// ImageText recognizes the text of one image. The result has runs of
// whitespace condensed and surrounding whitespace trimmed.
func (c *Client) ImageText(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encoding image for ocr: %w", err)
	}
	if err := c.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("setting ocr image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr failed: %w", err)
	}

	return strings.TrimSpace(CondenseSpaces(text)), nil
}

var nlAndSpace = regexp.MustCompile(`[\n\s]+`)

// CondenseSpaces collapses all whitespace runs into single spaces.
func CondenseSpaces(str string) string {
	return nlAndSpace.ReplaceAllString(str, " ")
}
