package layout

import (
	"github.com/tsawler/fieldscan/model"
)

// Interpolation points of a reference line's height used to decide whether
// another line sits on the same visual row. Testing two interior points
// rather than requiring equal baselines absorbs scanner jitter.
const (
	lowerBand = 0.25
	upperBand = 0.75
)

// Index answers geometric adjacency queries over the lines of one document.
// It is built once per document and is read-only afterwards.
type Index struct {
	pages map[int][]*model.Line
}

// NewIndex groups the document's lines by page. A nil document yields an
// empty index.
func NewIndex(doc *model.Document) *Index {
	idx := &Index{pages: make(map[int][]*model.Line)}
	if doc == nil {
		return idx
	}
	for _, line := range doc.Lines() {
		idx.pages[line.Page] = append(idx.pages[line.Page], line)
	}
	return idx
}

// PageLines returns the lines on page in document order. The slice must not
// be modified.
func (idx *Index) PageLines(page int) []*model.Line {
	return idx.pages[page]
}

// FindNext returns the line most likely to continue ref: the nearest line to
// its right on the same row (horizontal) and the nearest line below it in the
// same column (vertical). Either result is nil when no line qualifies within
// the gap limits.
func (idx *Index) FindNext(ref *model.Line, maxXGap, maxYGap float64) (horizontal, vertical *model.Line) {
	if ref == nil {
		return nil, nil
	}

	var bestH, bestV float64
	for _, c := range idx.pages[ref.Page] {
		if c == ref {
			continue
		}

		if ref.BBox.OverlapsX(c.BBox) && ref.Y0()-maxYGap < c.Y1() && c.Y1() < ref.Y0() {
			gap := ref.Y0() - c.Y1()
			if vertical == nil || gap < bestV {
				vertical, bestV = c, gap
			}
		} else if sameRow(ref, c) && ref.X1() < c.X0() && c.X0() < ref.X1()+maxXGap {
			if horizontal == nil || c.X0() < bestH {
				horizontal, bestH = c, c.X0()
			}
		}
	}
	return horizontal, vertical
}

// FindPrev is the mirror image of FindNext: the nearest line to the left of
// ref on the same row and the nearest line above it in the same column. It
// serves labels that trail their value.
func (idx *Index) FindPrev(ref *model.Line, maxXGap, maxYGap float64) (horizontal, vertical *model.Line) {
	if ref == nil {
		return nil, nil
	}

	var bestH, bestV float64
	for _, c := range idx.pages[ref.Page] {
		if c == ref {
			continue
		}

		if ref.BBox.OverlapsX(c.BBox) && ref.Y1() < c.Y0() && c.Y0() < ref.Y1()+maxYGap {
			gap := c.Y0() - ref.Y1()
			if vertical == nil || gap < bestV {
				vertical, bestV = c, gap
			}
		} else if sameRow(ref, c) && ref.X0()-maxXGap < c.X1() && c.X1() < ref.X0() {
			if horizontal == nil || c.X1() > bestH {
				horizontal, bestH = c, c.X1()
			}
		}
	}
	return horizontal, vertical
}

// sameRow reports whether c's vertical span contains the lower or upper
// interpolation point of ref's span
func sameRow(ref, c *model.Line) bool {
	lo := ref.BBox.Lerp(lowerBand)
	hi := ref.BBox.Lerp(upperBand)
	return (c.Y0() <= lo && lo <= c.Y1()) || (c.Y0() <= hi && hi <= c.Y1())
}
