// Package layout reconstructs "what comes after this line" on a scanned page.
//
// Scanned forms rarely have reliable table structure, and OCR line boxes are
// seldom perfectly aligned. The [Index] therefore answers adjacency queries
// with tolerant overlap tests instead of a column model:
//
//	idx := layout.NewIndex(doc)
//	right, below := idx.FindNext(labelLine, 300, 40)
//	left, above := idx.FindPrev(labelLine, 300, 40)
//
// A line is "below" a reference when their horizontal extents overlap and its
// top edge lies under the reference's bottom edge within the vertical gap
// limit; the nearest such line wins. A line is "to the right" when it shares
// the reference's row (its span contains the 25% or 75% point of the
// reference's height) and starts right of the reference within the
// horizontal gap limit; the leftmost such line wins. Lines that qualify as
// "below" are not considered for "to the right".
//
// Queries never fail: a missing neighbour is reported as nil.
//
// # Line detection
//
// Some OCR engines report words rather than lines. [LineDetector] groups such
// words into lines by their bottom edges, left to right, before a document
// is built from them.
package layout
