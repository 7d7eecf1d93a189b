package finder

import (
	"regexp"
	"strings"

	"github.com/tsawler/fieldscan/pattern"
)

// Stripper removes label text belonging to other fields from a line, so a
// line reading "Name: SMITH, JOHN DOB: 01/15/1980" offers "SMITH, JOHN" to
// the name field and "01/15/1980" to the date field.
type Stripper struct {
	re *regexp.Regexp
}

// NewStripper compiles labels into a stripper. A stripper without labels
// returns text unchanged.
func NewStripper(c *pattern.Compiler, labels []string) *Stripper {
	if len(labels) == 0 {
		return &Stripper{}
	}
	return &Stripper{re: c.ListPattern(labels)}
}

// Split cuts text at every label occurrence and returns the non-blank
// pieces in order. The labels themselves are dropped.
func (s *Stripper) Split(text string) []string {
	if s == nil || s.re == nil {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	var frags []string
	start := 0
	for _, loc := range s.re.FindAllStringIndex(text, -1) {
		frags = appendFragment(frags, text[start:loc[0]])
		start = loc[1]
	}
	return appendFragment(frags, text[start:])
}

func appendFragment(frags []string, frag string) []string {
	if strings.TrimSpace(frag) == "" {
		return frags
	}
	return append(frags, frag)
}
