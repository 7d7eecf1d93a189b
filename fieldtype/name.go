package fieldtype

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// OCR reads l as 1 and o as 0 often enough that both digits are accepted
// inside names.
const humanNamePattern = `[A-Za-z01\-\s,'.]+`

// reLastFirst matches "Last, First"; OCR often reads the comma as a period
var reLastFirst = regexp.MustCompile(`([A-Za-z01\-\s']+)([,.])\s*([A-Za-z01\-\s'.]*[A-Za-z01'.])`)

// levenshteinParams weights a substitution as a deletion plus an insertion,
// which makes the similarity ratio the share of matching characters
var levenshteinParams = levenshtein.NewParams().SubCost(2)

// HumanName recognizes personal names and normalizes them to
// "First [Initial.] Last" order
type HumanName struct {
	valueFinder
	names *FirstNames
}

// Type implements Handler
func (h *HumanName) Type() Type {
	return TypeHumanName
}

// Preprocess implements Handler
func (h *HumanName) Preprocess(text string) string {
	return collapseSpaces(normalize(text))
}

// Extract reorders a name into first-name-first order. It understands
// "Last, First", "Last First I." and names whose parts OCR has run
// together. Names read entirely in capitals are title-cased. Text without
// a letter holds no name.
func (h *HumanName) Extract(text string) (Value, bool) {
	text = collapseSpaces(text)
	if !strings.ContainsFunc(text, unicode.IsLetter) {
		return Value{}, false
	}

	name := h.order(text)
	if name == "" {
		return Value{}, false
	}
	if isUpper(name) {
		name = titleCase(name)
	}
	return TextValue(TypeHumanName, name), true
}

func (h *HumanName) order(text string) string {
	if m := reLastFirst.FindStringSubmatch(text); m != nil && !(m[2] == "." && endsWithInitial(m[1])) {
		first := strings.TrimSpace(m[3])
		last := strings.TrimSpace(m[1])
		return collapseSpaces(first + " " + last)
	}

	words := strings.Fields(text)
	if allSingleLetters(words) {
		words = []string{strings.Join(words, "")}
	}

	switch len(words) {
	case 1:
		return h.split(words[0])
	case 2:
		if h.names.Contains(words[1]) && !h.names.Contains(words[0]) {
			return words[1] + " " + words[0]
		}
	case 3:
		if initial := strings.Trim(words[2], ".,"); utf8.RuneCountInString(initial) == 1 {
			return words[1] + " " + initial + ". " + words[0]
		}
	}
	return strings.Join(words, " ")
}

// split breaks a name OCR has run together. The longest dictionary prefix
// is taken as the first name; failing that, the longest dictionary suffix is.
func (h *HumanName) split(word string) string {
	runes := []rune(word)
	if n := h.names.LongestPrefix(word); n > 0 {
		return string(runes[:n]) + " " + string(runes[n:])
	}
	if n := h.names.LongestSuffix(word); n > 0 {
		return string(runes[len(runes)-n:]) + " " + string(runes[:len(runes)-n])
	}
	return word
}

// endsWithInitial reports whether the last word of s is a single letter, as
// in the "Q" of "John Q. Smith"
func endsWithInitial(s string) bool {
	words := strings.Fields(s)
	return len(words) > 1 && utf8.RuneCountInString(words[len(words)-1]) == 1
}

func allSingleLetters(words []string) bool {
	if len(words) < 2 {
		return false
	}
	for _, w := range words {
		if utf8.RuneCountInString(w) != 1 {
			return false
		}
	}
	return true
}

// Format implements Handler
func (h *HumanName) Format(v Value) string {
	return v.String()
}

// Compare returns the Levenshtein similarity ratio of the two names, or 0
// when either is absent
func (h *HumanName) Compare(a, b Value) float64 {
	if a.IsZero() || b.IsZero() {
		return 0
	}
	return similarity(a.Text(), b.Text())
}

func similarity(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 1
	}
	dist := levenshtein.Distance(a, b, levenshteinParams)
	return float64(total-dist) / float64(total)
}
