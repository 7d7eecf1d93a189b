package model

import (
	"regexp"
	"strings"
)

// glyphRef matches unmapped glyph references such as "(cid:12)" that layout
// extractors leave in place of characters they could not decode.
var glyphRef = regexp.MustCompile(`\(cid:\d+\)`)

// Document represents a single scanned PDF document as a set of text boxes
// and the lines inside them. The document owns its boxes and lines; boxes and
// lines only refer back to it.
type Document struct {
	// ID is the persistent identifier of the document, 0 while the document
	// has not been stored anywhere.
	ID int64

	// Filename is the name of the source file, informational only
	Filename string

	// Pages is the number of pages in the source PDF
	Pages int

	boxes []*Box
	lines []*Line
}

// Box is a rectangular text region on one page, as grouped by the layout
// extractor. Its lines are in extraction order, not reading order.
type Box struct {
	BBox     BBox
	Page     int // 0-indexed
	Vertical bool

	document *Document
	lines    []*Line
}

// Line is a single recognized line of text with its own bounding box. Lines
// are the atomic unit of every search.
type Line struct {
	Text     string
	BBox     BBox
	Page     int // 0-indexed
	Vertical bool

	box      *Box
	document *Document
}

// NewDocument creates an empty document
func NewDocument(filename string, pages int) *Document {
	return &Document{
		Filename: filename,
		Pages:    pages,
		boxes:    make([]*Box, 0),
		lines:    make([]*Line, 0),
	}
}

// AddBox creates a box on the given page and attaches it to the document
func (d *Document) AddBox(page int, bbox BBox, vertical bool) *Box {
	box := &Box{
		BBox:     bbox,
		Page:     page,
		Vertical: vertical,
		document: d,
	}
	d.boxes = append(d.boxes, box)
	if page+1 > d.Pages {
		d.Pages = page + 1
	}
	return box
}

// AddLine creates a line inside box. Glyph references are removed and the
// text is trimmed; a line left without text is not added and nil is returned.
func (d *Document) AddLine(box *Box, text string, bbox BBox, vertical bool) *Line {
	if box == nil || box.document != d {
		return nil
	}

	text = strings.TrimSpace(glyphRef.ReplaceAllString(text, ""))
	if text == "" {
		return nil
	}

	line := &Line{
		Text:     text,
		BBox:     bbox,
		Page:     box.Page,
		Vertical: vertical,
		box:      box,
		document: d,
	}
	box.lines = append(box.lines, line)
	d.lines = append(d.lines, line)
	return line
}

// Boxes returns all boxes in the order they were added
func (d *Document) Boxes() []*Box {
	return d.boxes
}

// Lines returns all lines in the order they were added
func (d *Document) Lines() []*Line {
	return d.lines
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return d.Pages
}

// Document returns the document the box belongs to
func (b *Box) Document() *Document {
	return b.document
}

// Lines returns the lines assigned to the box
func (b *Box) Lines() []*Line {
	return b.lines
}

// X0 returns the left edge of the box
func (b *Box) X0() float64 { return b.BBox.Left() }

// Y0 returns the bottom edge of the box
func (b *Box) Y0() float64 { return b.BBox.Bottom() }

// X1 returns the right edge of the box
func (b *Box) X1() float64 { return b.BBox.Right() }

// Y1 returns the top edge of the box
func (b *Box) Y1() float64 { return b.BBox.Top() }

// Box returns the box the line belongs to
func (l *Line) Box() *Box {
	return l.box
}

// Document returns the document the line belongs to
func (l *Line) Document() *Document {
	return l.document
}

// DocumentID returns the ID of the owning document, 0 when the line is
// detached or the document has not been persisted.
func (l *Line) DocumentID() int64 {
	if l == nil || l.document == nil {
		return 0
	}
	return l.document.ID
}

// X0 returns the left edge of the line
func (l *Line) X0() float64 { return l.BBox.Left() }

// Y0 returns the bottom edge of the line
func (l *Line) Y0() float64 { return l.BBox.Bottom() }

// X1 returns the right edge of the line
func (l *Line) X1() float64 { return l.BBox.Right() }

// Y1 returns the top edge of the line
func (l *Line) Y1() float64 { return l.BBox.Top() }

// Height returns the line height
func (l *Line) Height() float64 { return l.BBox.Height }
