package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/fieldscan/model"
)

// Word is a single recognized word, as emitted by OCR engines that do not
// assemble lines themselves
type Word struct {
	Text string
	BBox model.BBox
}

// Line is a group of words sharing a baseline, left to right
type Line struct {
	Text  string
	BBox  model.BBox
	Words []Word
}

// LineConfig holds configuration for line detection
type LineConfig struct {
	// LineHeightTolerance is the Y-distance tolerance for grouping words into
	// lines as a fraction of word height (default: 0.5)
	LineHeightTolerance float64

	// SpaceThreshold is the horizontal gap, as a fraction of word height,
	// above which adjacent words are joined with a space (default: 0.1)
	SpaceThreshold float64
}

// DefaultLineConfig returns sensible default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		LineHeightTolerance: 0.5,
		SpaceThreshold:      0.1,
	}
}

// LineDetector groups words into lines
type LineDetector struct {
	config LineConfig
}

// NewLineDetector creates a new line detector with default configuration
func NewLineDetector() *LineDetector {
	return &LineDetector{
		config: DefaultLineConfig(),
	}
}

// NewLineDetectorWithConfig creates a line detector with custom configuration
func NewLineDetectorWithConfig(config LineConfig) *LineDetector {
	return &LineDetector{
		config: config,
	}
}

// Detect groups words into lines ordered top to bottom. Blank words are
// dropped.
func (d *LineDetector) Detect(words []Word) []Line {
	var kept []Word
	for _, w := range words {
		if strings.TrimSpace(w.Text) != "" {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	groups := d.groupIntoLines(kept)
	lines := make([]Line, 0, len(groups))
	for _, g := range groups {
		lines = append(lines, d.buildLine(g))
	}
	return lines
}

// groupIntoLines sorts words top to bottom by bottom edge and splits them
// wherever a word leaves the tolerance band around the current line's average
func (d *LineDetector) groupIntoLines(words []Word) [][]Word {
	tolerance := d.averageHeight(words) * d.config.LineHeightTolerance

	sorted := make([]Word, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Bottom() > sorted[j].BBox.Bottom()
	})

	var lines [][]Word
	var current []Word
	flush := func() {
		sort.SliceStable(current, func(i, j int) bool {
			return current[i].BBox.Left() < current[j].BBox.Left()
		})
		lines = append(lines, current)
	}

	for _, w := range sorted {
		if len(current) > 0 && absFloat64(w.BBox.Bottom()-averageY(current)) > tolerance {
			flush()
			current = nil
		}
		current = append(current, w)
	}
	flush()

	return lines
}

// buildLine assembles the text and bounding box of one group
func (d *LineDetector) buildLine(words []Word) Line {
	line := Line{
		BBox:  words[0].BBox,
		Words: words,
	}

	var sb strings.Builder
	for i, w := range words {
		if i > 0 {
			prev := words[i-1]
			gap := w.BBox.Left() - prev.BBox.Right()
			if gap > w.BBox.Height*d.config.SpaceThreshold {
				sb.WriteString(" ")
			}
			line.BBox = line.BBox.Union(w.BBox)
		}
		sb.WriteString(strings.TrimSpace(w.Text))
	}
	line.Text = sb.String()

	return line
}

// averageHeight returns the average height of words
func (d *LineDetector) averageHeight(words []Word) float64 {
	total := 0.0
	for _, w := range words {
		total += w.BBox.Height
	}
	return total / float64(len(words))
}

// averageY returns the average bottom edge of words in a line
func averageY(words []Word) float64 {
	total := 0.0
	for _, w := range words {
		total += w.BBox.Bottom()
	}
	return total / float64(len(words))
}

func absFloat64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
