// Package model provides the in-memory representation of a scanned document
// as produced by an external layout extractor.
//
// A [Document] owns an ordered set of [Box] values, and each box groups the
// [Line] values recognized inside it. Boxes and lines keep non-owning
// references back to their container, so any line can reach its box and
// document without a second identity:
//
//	doc := model.NewDocument("scan.pdf", 1)
//	box := doc.AddBox(0, model.NewBBoxFromCorners(50, 700, 300, 740), false)
//	doc.AddLine(box, "Date of Birth: 01/15/1980", model.NewBBoxFromCorners(50, 720, 300, 740), false)
//
// Documents are built once and treated as read-only by every other package.
//
// # Geometry
//
// Coordinates follow the PDF convention: the origin is the lower-left corner
// of the page and Y grows upward. [BBox] provides the edge accessors
// (Left, Right, Bottom, Top) and containment/overlap tests used by the
// adjacency search.
package model
