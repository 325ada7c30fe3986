package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/KENDAXA-Development/pdf-utils/annot"
	"github.com/KENDAXA-Development/pdf-utils/annotated"
	"github.com/KENDAXA-Development/pdf-utils/layout"
	"github.com/KENDAXA-Development/pdf-utils/ocr"
)

var cli struct {
	Quiet bool `short:"q" help:"Suppress warnings about skipped or unmatched annotations"`

	Annotations AnnotationsCmd `cmd:"" help:"Extract annotations from a PDF and print them as JSON"`
	Flows       FlowsCmd       `cmd:"" help:"Print flows with annotated word indices as JSON"`
	OCR         OCRCmd         `cmd:"" name:"ocr" help:"Render and OCR each page of a PDF"`
}

type AnnotationsCmd struct {
	Input string `arg:"" name:"input" help:"Path to input PDF" type:"path"`
}

func (c *AnnotationsCmd) Run() error {
	annotations, err := annot.NewExtractor().FromFile(c.Input)
	if err != nil {
		return err
	}
	return annot.WriteAnnotations(os.Stdout, annotations)
}

type FlowsCmd struct {
	Input string `arg:"" name:"input" help:"Path to input PDF" type:"path"`
}

func (c *FlowsCmd) Run() error {
	annotations, err := annot.NewExtractor().FromFile(c.Input)
	if err != nil {
		return err
	}

	lay, err := layout.FromPDF(c.Input)
	if err != nil {
		return err
	}

	flows := annotated.New(annotations, lay).FlowsWithAnnotations(nil)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(flows)
}

type OCRCmd struct {
	Input string  `arg:"" name:"input" help:"Path to input PDF" type:"path"`
	DPI   float64 `short:"d" default:"150" help:"Rendering DPI"`
	Lang  string  `short:"l" default:"eng" help:"Tesseract language(s), e.g. eng or eng+deu"`
}

func (c *OCRCmd) Run() error {
	texts, err := ocr.DocumentText(c.Input, c.DPI, c.Lang)
	if err != nil {
		return err
	}
	for i, text := range texts {
		fmt.Printf("--- page %d ---\n%s\n", i, text)
	}
	return nil
}

func main() {
	ctx := kong.Parse(&cli)

	if cli.Quiet {
		logrus.SetLevel(logrus.ErrorLevel)
	}

	ctx.FatalIfErrorf(ctx.Run())
}
