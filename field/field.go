// Package field ties a field's semantic type to the finders that locate its
// candidates and the features that describe them.
package field

import (
	"errors"
	"fmt"

	"github.com/tsawler/fieldscan/candidate"
	"github.com/tsawler/fieldscan/feature"
	"github.com/tsawler/fieldscan/fieldtype"
	"github.com/tsawler/fieldscan/finder"
	"github.com/tsawler/fieldscan/layout"
	"github.com/tsawler/fieldscan/model"
)

// NamedFeature is a feature under its configured column name
type NamedFeature struct {
	Name    string
	Feature feature.Feature
}

// Field is one piece of information to extract from a document, such as a
// date of birth. A Field is immutable and safe for concurrent use.
type Field struct {
	name     string
	labels   []string
	handler  fieldtype.Handler
	finders  []finder.Finder
	features []NamedFeature
}

// ErrDuplicateFinder is returned when two finders of a field share an id,
// which would give their candidates the same identity
var ErrDuplicateFinder = errors.New("duplicate finder id")

// New creates a field. labels are the field's own label vocabulary; they
// are kept so other fields can strip them from their values. Finder ids
// must be unique within the field.
func New(name string, labels []string, h fieldtype.Handler, finders []finder.Finder, features []NamedFeature) (*Field, error) {
	seen := make(map[int]bool, len(finders))
	for _, fd := range finders {
		if seen[fd.ID()] {
			return nil, fmt.Errorf("field %s: %w %d", name, ErrDuplicateFinder, fd.ID())
		}
		seen[fd.ID()] = true
	}

	return &Field{
		name:     name,
		labels:   append([]string(nil), labels...),
		handler:  h,
		finders:  append([]finder.Finder(nil), finders...),
		features: append([]NamedFeature(nil), features...),
	}, nil
}

// Name returns the field name
func (f *Field) Name() string { return f.name }

// Type returns the field's semantic type
func (f *Field) Type() fieldtype.Type { return f.handler.Type() }

// Labels returns the field's label vocabulary
func (f *Field) Labels() []string { return f.labels }

// Handler returns the field type handler
func (f *Field) Handler() fieldtype.Handler { return f.handler }

// Finders returns the finders in configured order
func (f *Field) Finders() []finder.Finder { return f.finders }

// Candidates runs every finder over doc in configured order
func (f *Field) Candidates(doc *model.Document) []*candidate.Candidate {
	return f.CandidatesIndexed(doc, layout.NewIndex(doc))
}

// CandidatesIndexed is Candidates with a prebuilt index, for callers that
// run several fields over the same document
func (f *Field) CandidatesIndexed(doc *model.Document, idx *layout.Index) []*candidate.Candidate {
	cands := []*candidate.Candidate{}
	if doc == nil || len(doc.Lines()) == 0 {
		return cands
	}
	for _, fd := range f.finders {
		cands = append(cands, fd.Candidates(doc, idx)...)
	}
	return cands
}

// FeatureNames returns the configured feature names in order
func (f *Field) FeatureNames() []string {
	names := make([]string, len(f.features))
	for i, nf := range f.features {
		names[i] = nf.Name
	}
	return names
}

// Features computes every configured feature for cands. The result maps
// each candidate to its feature values by name.
func (f *Field) Features(cands []*candidate.Candidate) map[candidate.ID]map[string]float64 {
	out := make(map[candidate.ID]map[string]float64, len(cands))
	for _, c := range cands {
		out[c.ID] = make(map[string]float64, len(f.features))
	}
	for _, nf := range f.features {
		for id, v := range nf.Feature.Compute(cands) {
			if row, ok := out[id]; ok {
				row[nf.Name] = v
			}
		}
	}
	return out
}

// Parse normalizes free text, such as a recorded true value, the same way
// candidate text is normalized
func (f *Field) Parse(text string) (fieldtype.Value, bool) {
	found, ok := f.handler.FindValue(f.handler.Preprocess(text))
	if !ok {
		return fieldtype.Value{}, false
	}
	return f.handler.Extract(found)
}

// Compare returns the similarity of two values of this field's type
func (f *Field) Compare(a, b fieldtype.Value) float64 {
	return f.handler.Compare(a, b)
}
