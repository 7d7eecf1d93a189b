// Package candidate holds the possible field values proposed by finders.
package candidate

import (
	"fmt"

	"github.com/tsawler/fieldscan/fieldtype"
	"github.com/tsawler/fieldscan/model"
)

// NoLabelOffset is reported by the label offsets of a candidate that has no
// label line. It lies outside the range of any real page offset.
const NoLabelOffset = 10000.0

// ID identifies a candidate within one extraction run
type ID struct {
	Document int64
	Finder   int
	Num      int
}

// String renders the id as "document/finder/num"
func (id ID) String() string {
	return fmt.Sprintf("%d/%d/%d", id.Document, id.Finder, id.Num)
}

// Candidate is one possible value for a field, tied to the line it was
// read from. Candidates are not modified after construction.
type Candidate struct {
	ID ID

	// Line holds the value text
	Line *model.Line

	// LabelLine holds the matched label, nil for box-phrase candidates
	LabelLine *model.Line

	// Match is the raw text found by the value patterns
	Match string

	// Value is the normalized value, never absent
	Value fieldtype.Value

	// Formatted is the canonical text form of Value
	Formatted string
}

// New creates a candidate for a value found on line. The document part of
// the id is 0 when the line's document has not been persisted.
func New(line, labelLine *model.Line, match string, value fieldtype.Value, formatted string, finderID, num int) *Candidate {
	return &Candidate{
		ID: ID{
			Document: line.DocumentID(),
			Finder:   finderID,
			Num:      num,
		},
		Line:      line,
		LabelLine: labelLine,
		Match:     match,
		Value:     value,
		Formatted: formatted,
	}
}

// FinderID returns the id of the finder that produced the candidate
func (c *Candidate) FinderID() int {
	return c.ID.Finder
}

// Page returns the page the value was found on
func (c *Candidate) Page() int {
	return c.Line.Page
}

// LabelOffsetX returns the horizontal distance from the value line's left
// edge to the label line's left edge
func (c *Candidate) LabelOffsetX() float64 {
	if c.LabelLine == nil {
		return NoLabelOffset
	}
	return c.LabelLine.X0() - c.Line.X0()
}

// LabelOffsetY returns the vertical distance from the value line's bottom
// edge to the label line's bottom edge
func (c *Candidate) LabelOffsetY() float64 {
	if c.LabelLine == nil {
		return NoLabelOffset
	}
	return c.LabelLine.Y0() - c.Line.Y0()
}

// String implements fmt.Stringer
func (c *Candidate) String() string {
	return fmt.Sprintf("%s %q (%s)", c.ID, c.Formatted, c.Match)
}
