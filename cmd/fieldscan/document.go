package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/fieldscan/layout"
	"github.com/tsawler/fieldscan/model"
)

// documentFile is the layout of one document as written by an OCR layout
// extractor. JSON files decode as YAML.
type documentFile struct {
	ID       int64     `yaml:"id"`
	Filename string    `yaml:"filename"`
	Pages    int       `yaml:"pages"`
	Boxes    []boxFile `yaml:"boxes"`
}

type boxFile struct {
	Page     int        `yaml:"page"`
	BBox     []float64  `yaml:"bbox"`
	Vertical bool       `yaml:"vertical"`
	Lines    []lineFile `yaml:"lines"`

	// Words are grouped into lines when the OCR engine reports no lines
	Words []wordFile `yaml:"words"`
}

type wordFile struct {
	Text string    `yaml:"text"`
	BBox []float64 `yaml:"bbox"`
}

type lineFile struct {
	Text     string    `yaml:"text"`
	BBox     []float64 `yaml:"bbox"`
	Vertical bool      `yaml:"vertical"`
}

// readDocument loads the document layout stored at path
func readDocument(path string) (*model.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := decodeDocument(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Filename == "" {
		doc.Filename = filepath.Base(path)
	}
	return doc, nil
}

// decodeDocument builds a document from its YAML or JSON layout
func decodeDocument(r io.Reader) (*model.Document, error) {
	var df documentFile
	if err := yaml.NewDecoder(r).Decode(&df); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}

	pages := df.Pages
	for _, b := range df.Boxes {
		if b.Page+1 > pages {
			pages = b.Page + 1
		}
	}

	detector := layout.NewLineDetector()
	doc := model.NewDocument(df.Filename, pages)
	doc.ID = df.ID
	for i, b := range df.Boxes {
		bbox, err := corners(b.BBox)
		if err != nil {
			return nil, fmt.Errorf("boxes[%d]: %w", i, err)
		}
		box := doc.AddBox(b.Page, bbox, b.Vertical)
		for j, l := range b.Lines {
			lbox, err := corners(l.BBox)
			if err != nil {
				return nil, fmt.Errorf("boxes[%d].lines[%d]: %w", i, j, err)
			}
			doc.AddLine(box, l.Text, lbox, l.Vertical)
		}

		words := make([]layout.Word, 0, len(b.Words))
		for j, w := range b.Words {
			wbox, err := corners(w.BBox)
			if err != nil {
				return nil, fmt.Errorf("boxes[%d].words[%d]: %w", i, j, err)
			}
			words = append(words, layout.Word{Text: w.Text, BBox: wbox})
		}
		for _, l := range detector.Detect(words) {
			doc.AddLine(box, l.Text, l.BBox, b.Vertical)
		}
	}
	return doc, nil
}

func corners(v []float64) (model.BBox, error) {
	if len(v) != 4 {
		return model.BBox{}, fmt.Errorf("bbox must have 4 numbers, got %d", len(v))
	}
	return model.NewBBoxFromCorners(v[0], v[1], v[2], v[3]), nil
}
