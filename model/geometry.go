package model

import "math"

// BBox represents a bounding box (rectangle)
type BBox struct {
	X      float64 // Left
	Y      float64 // Bottom (PDF coordinate system)
	Width  float64
	Height float64
}

// NewBBoxFromCorners creates a bounding box from its lower-left (x0, y0) and
// upper-right (x1, y1) corners, the form layout extractors report boxes in.
// Swapped corners are normalized.
func NewBBoxFromCorners(x0, y0, x1, y1 float64) BBox {
	return BBox{
		X:      math.Min(x0, x1),
		Y:      math.Min(y0, y1),
		Width:  math.Abs(x1 - x0),
		Height: math.Abs(y1 - y0),
	}
}

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y + b.Height
}

// ContainsBBox checks if other lies entirely inside b (edges inclusive)
func (b BBox) ContainsBBox(other BBox) bool {
	return b.Left() <= other.Left() && other.Right() <= b.Right() &&
		b.Bottom() <= other.Bottom() && other.Top() <= b.Top()
}

// OverlapsX reports whether the horizontal extents of the boxes touch or overlap
func (b BBox) OverlapsX(other BBox) bool {
	return other.Right() >= b.Left() && other.Left() <= b.Right()
}

// Union returns the union of two bounding boxes
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Bottom(), other.Bottom())
	right := math.Max(b.Right(), other.Right())
	top := math.Max(b.Top(), other.Top())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: top - y,
	}
}

// Lerp returns the Y coordinate at fraction t of the box height, measured
// from the bottom edge (0 = bottom, 1 = top).
func (b BBox) Lerp(t float64) float64 {
	return b.Bottom() + t*b.Height
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}
