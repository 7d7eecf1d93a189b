package feature

import (
	"github.com/tsawler/fieldscan/candidate"
)

func lowerLeftX(c *candidate.Candidate) float64 { return c.Line.X0() }

func lowerLeftY(c *candidate.Candidate) float64 { return c.Line.Y0() }

func lineHeight(c *candidate.Candidate) float64 { return c.Line.Height() }

func pageNum(c *candidate.Candidate) float64 { return float64(c.Line.Page) }

func labelOffsetX(c *candidate.Candidate) float64 { return c.LabelOffsetX() }

func labelOffsetY(c *candidate.Candidate) float64 { return c.LabelOffsetY() }

func finderID(c *candidate.Candidate) float64 { return float64(c.FinderID()) }

// xBox is the indent of the line within its box
func xBox(c *candidate.Candidate) float64 {
	box := c.Line.Box()
	if box == nil {
		return 0
	}
	return box.X0() - c.Line.X0()
}

// yBox is the distance from the top of the box down to the top of the line
func yBox(c *candidate.Candidate) float64 {
	box := c.Line.Box()
	if box == nil {
		return 0
	}
	return c.Line.Y1() - box.Y1()
}

// boxRank counts the boxes on the same page whose top edge is higher than
// the top of the candidate's box
func boxRank(c *candidate.Candidate) float64 {
	box := c.Line.Box()
	doc := c.Line.Document()
	if box == nil || doc == nil {
		return 0
	}
	rank := 0
	for _, b := range doc.Boxes() {
		if b.Page == box.Page && b.Y1() > box.Y1() {
			rank++
		}
	}
	return float64(rank)
}
