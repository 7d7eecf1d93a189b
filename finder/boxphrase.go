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

// NoPageLimit as a MinPage admits every page from the first
const NoPageLimit = -1

// BoxPhraseConfig configures a BoxPhraseFinder
type BoxPhraseConfig struct {
	ID      int
	Phrases []string

	// CandidateLines are line positions within a matching box, counted
	// from the top. Negative positions count from the bottom.
	CandidateLines []int

	// Area restricts the boxes considered. Empty means DefaultArea.
	Area model.BBox

	// A box's page must lie strictly between MinPage and MaxPage. Pages are
	// numbered from 0; NoPageLimit disables MinPage, and a MaxPage of zero or
	// less disables MaxPage.
	MinPage int
	MaxPage int

	// Box size limits. A zero maximum is unbounded.
	MinWidth  float64
	MaxWidth  float64
	MinHeight float64
	MaxHeight float64
}

// BoxPhraseFinder reads fixed line positions of text boxes that contain a
// trigger phrase
type BoxPhraseFinder struct {
	cfg    BoxPhraseConfig
	phrase *regexp.Regexp
	reader reader
}

// NewBoxPhraseFinder creates a box phrase finder. strip removes the labels
// of other fields from value text and may be nil.
func NewBoxPhraseFinder(cfg BoxPhraseConfig, c *pattern.Compiler, h fieldtype.Handler, strip *Stripper) *BoxPhraseFinder {
	cfg.Area = orArea(cfg.Area)
	return &BoxPhraseFinder{
		cfg:    cfg,
		phrase: c.ListPattern(cfg.Phrases),
		reader: reader{handler: h, strip: strip},
	}
}

// ID implements Finder
func (f *BoxPhraseFinder) ID() int {
	return f.cfg.ID
}

// Kind implements Finder
func (f *BoxPhraseFinder) Kind() Kind {
	return KindBoxPhrase
}

// Candidates implements Finder. Each configured line position of each
// matching box yields at most one candidate: the first value found in the
// line. Positions past the end of a box are skipped.
func (f *BoxPhraseFinder) Candidates(doc *model.Document, _ *layout.Index) []*candidate.Candidate {
	if doc == nil {
		return nil
	}

	var cands []*candidate.Candidate
	for _, box := range doc.Boxes() {
		if !f.accepts(box) {
			continue
		}

		lines := append([]*model.Line(nil), box.Lines()...)
		sort.SliceStable(lines, func(i, j int) bool {
			if lines[i].Y0() != lines[j].Y0() {
				return lines[i].Y0() > lines[j].Y0()
			}
			return lines[i].X0() < lines[j].X0()
		})

		for _, pos := range f.cfg.CandidateLines {
			if pos < 0 {
				pos += len(lines)
			}
			if pos < 0 || pos >= len(lines) {
				continue
			}
			line := lines[pos]
			readings := f.reader.read(line.Text)
			if len(readings) == 0 {
				continue
			}
			r := readings[0]
			cands = append(cands, candidate.New(line, nil, r.match, r.value,
				f.reader.handler.Format(r.value), f.cfg.ID, len(cands)))
		}
	}
	return cands
}

func (f *BoxPhraseFinder) accepts(box *model.Box) bool {
	if !f.cfg.Area.ContainsBBox(box.BBox) || !f.allowedPage(box.Page) {
		return false
	}
	if !within(box.BBox.Width, f.cfg.MinWidth, f.cfg.MaxWidth) ||
		!within(box.BBox.Height, f.cfg.MinHeight, f.cfg.MaxHeight) {
		return false
	}
	for _, line := range box.Lines() {
		if f.phrase.MatchString(line.Text) {
			return true
		}
	}
	return false
}

func (f *BoxPhraseFinder) allowedPage(page int) bool {
	return f.cfg.MinPage < page && (f.cfg.MaxPage <= 0 || page < f.cfg.MaxPage)
}

func within(v, lo, hi float64) bool {
	return v >= lo && (hi <= 0 || v <= hi)
}
