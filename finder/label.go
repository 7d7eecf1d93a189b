package finder

import (
	"regexp"
	"sort"

	"github.com/tsawler/fieldscan/candidate"
	"github.com/tsawler/fieldscan/fieldtype"
	"github.com/tsawler/fieldscan/layout"
	"github.com/tsawler/fieldscan/model"
	"github.com/tsawler/fieldscan/pattern"
)

var reAlnum = regexp.MustCompile(`[A-Za-z0-9]`)

// LabelConfig configures a LabelFinder
type LabelConfig struct {
	ID     int
	Labels []string

	// MaxXGap and MaxYGap bound the distance from the label to its value.
	// Zero means DefaultGap.
	MaxXGap float64
	MaxYGap float64

	// Area restricts the label lines considered. Empty means DefaultArea.
	Area model.BBox

	// Trailing is set for labels printed after their value, such as a
	// caption under a signature line
	Trailing bool
}

// LabelFinder reads the text that follows each occurrence of a field's
// labels
type LabelFinder struct {
	cfg    LabelConfig
	label  *regexp.Regexp
	reader reader
}

// NewLabelFinder creates a label finder. strip removes the labels of other
// fields from value text and may be nil.
func NewLabelFinder(cfg LabelConfig, c *pattern.Compiler, h fieldtype.Handler, strip *Stripper) *LabelFinder {
	cfg.MaxXGap = orGap(cfg.MaxXGap)
	cfg.MaxYGap = orGap(cfg.MaxYGap)
	cfg.Area = orArea(cfg.Area)
	return &LabelFinder{
		cfg:    cfg,
		label:  c.ListPattern(cfg.Labels),
		reader: reader{handler: h, strip: strip},
	}
}

// ID implements Finder
func (f *LabelFinder) ID() int {
	return f.cfg.ID
}

// Kind implements Finder
func (f *LabelFinder) Kind() Kind {
	return KindLabel
}

// labelMatch is a label occurrence within a line
type labelMatch struct {
	line       *model.Line
	start, end int
}

// Candidates implements Finder. Shorter label matches are visited first, so
// the most specific label's candidates come first.
func (f *LabelFinder) Candidates(doc *model.Document, idx *layout.Index) []*candidate.Candidate {
	if doc == nil {
		return nil
	}

	var matches []labelMatch
	for _, line := range doc.Lines() {
		if !f.cfg.Area.ContainsBBox(line.BBox) {
			continue
		}
		if loc := f.label.FindStringIndex(line.Text); loc != nil {
			matches = append(matches, labelMatch{line: line, start: loc[0], end: loc[1]})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].end-matches[i].start < matches[j].end-matches[j].start
	})

	var cands []*candidate.Candidate
	emit := func(text string, line, label *model.Line) {
		for _, r := range f.reader.read(text) {
			cands = append(cands, candidate.New(line, label, r.match, r.value,
				f.reader.handler.Format(r.value), f.cfg.ID, len(cands)))
		}
	}

	for _, m := range matches {
		var horizontal, vertical *model.Line
		var rest string
		if f.cfg.Trailing {
			horizontal, vertical = idx.FindPrev(m.line, f.cfg.MaxXGap, f.cfg.MaxYGap)
			rest = m.line.Text[:m.start]
		} else {
			horizontal, vertical = idx.FindNext(m.line, f.cfg.MaxXGap, f.cfg.MaxYGap)
			rest = m.line.Text[m.end:]
		}

		// The value shares the label's line unless nothing readable
		// follows the label there.
		if reAlnum.MatchString(rest) {
			emit(rest, m.line, m.line)
		} else if horizontal != nil {
			emit(horizontal.Text, horizontal, m.line)
		}

		if vertical != nil {
			emit(vertical.Text, vertical, m.line)
		}
	}
	return cands
}
