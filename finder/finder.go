// Package finder locates candidate values for a field on a document page.
//
// Two strategies exist. A [LabelFinder] searches for the field's label
// vocabulary and reads the text that follows each label, to its right or
// below it. A [BoxPhraseFinder] searches for text boxes containing trigger
// phrases and reads fixed line positions inside them.
//
// Finders never return errors: a label with no readable value, a box with
// too few lines, or text the field type cannot parse simply yields no
// candidate.
package finder

import (
	"errors"
	"fmt"

	"github.com/tsawler/fieldscan/candidate"
	"github.com/tsawler/fieldscan/fieldtype"
	"github.com/tsawler/fieldscan/layout"
	"github.com/tsawler/fieldscan/model"
)

// DefaultGap is the search distance used when a gap limit is not configured
const DefaultGap = 10000.0

// DefaultArea is the search region used when a bounding box is not
// configured. It covers any real page.
var DefaultArea = model.NewBBoxFromCorners(0, 0, 10000, 10000)

// Kind names a finder strategy
type Kind string

const (
	KindLabel     Kind = "label"
	KindBoxPhrase Kind = "box_phrase"
)

// ErrUnknownKind is returned by ParseKind for an unrecognized strategy name
var ErrUnknownKind = errors.New("unknown finder kind")

// ParseKind converts a configuration name to a Kind
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindLabel, KindBoxPhrase:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Finder proposes candidates for one field
type Finder interface {
	// ID returns the finder's id, unique within its field
	ID() int

	// Kind returns the strategy
	Kind() Kind

	// Candidates returns the candidates found in doc. idx must have been
	// built from doc. Candidate numbers restart at 0 on every call.
	Candidates(doc *model.Document, idx *layout.Index) []*candidate.Candidate
}

// reader turns line text into values: other labels are stripped, then each
// remaining fragment goes through the field type's pipeline
type reader struct {
	handler fieldtype.Handler
	strip   *Stripper
}

type reading struct {
	match string
	value fieldtype.Value
}

// read returns one reading per fragment that holds a value
func (r reader) read(text string) []reading {
	var out []reading
	for _, frag := range r.strip.Split(text) {
		found, ok := r.handler.FindValue(r.handler.Preprocess(frag))
		if !ok {
			continue
		}
		value, ok := r.handler.Extract(found)
		if !ok {
			continue
		}
		out = append(out, reading{match: found, value: value})
	}
	return out
}

// orArea returns area, or DefaultArea when area is empty
func orArea(area model.BBox) model.BBox {
	if area.IsEmpty() {
		return DefaultArea
	}
	return area
}

// orGap returns gap, or DefaultGap when gap is not positive
func orGap(gap float64) float64 {
	if gap <= 0 {
		return DefaultGap
	}
	return gap
}
