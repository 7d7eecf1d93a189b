package feature

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/fieldscan/candidate"
	"github.com/tsawler/fieldscan/model"
	"github.com/tsawler/fieldscan/pattern"
)

func wordCount(c *candidate.Candidate) float64 {
	return float64(len(strings.Fields(c.Match)))
}

func length(c *candidate.Candidate) float64 {
	return float64(utf8.RuneCountInString(c.Match))
}

func digitCount(c *candidate.Candidate) float64 {
	return float64(countRunes(c.Match, unicode.IsDigit))
}

func alphaCount(c *candidate.Candidate) float64 {
	return float64(countRunes(c.Match, unicode.IsLetter))
}

func allCapsWordCount(c *candidate.Candidate) float64 {
	return countWords(c.Match, isAllCaps)
}

func initCapsWordCount(c *candidate.Candidate) float64 {
	return countWords(c.Match, func(w string) bool {
		r, size := utf8.DecodeRuneInString(w)
		return unicode.IsUpper(r) && isAllLower(w[size:])
	})
}

func initLowerWordCount(c *candidate.Candidate) float64 {
	return countWords(c.Match, isAllLower)
}

func countRunes(s string, pred func(rune) bool) int {
	n := 0
	for _, r := range s {
		if pred(r) {
			n++
		}
	}
	return n
}

func countWords(s string, pred func(string) bool) float64 {
	n := 0
	for _, w := range strings.Fields(s) {
		if pred(w) {
			n++
		}
	}
	return float64(n)
}

// isAllCaps reports whether w has a cased letter and no lower-case ones
func isAllCaps(w string) bool {
	return countRunes(w, unicode.IsUpper) > 0 && countRunes(w, unicode.IsLower) == 0
}

// isAllLower reports whether w has a cased letter and no upper-case ones
func isAllLower(w string) bool {
	return countRunes(w, unicode.IsLower) > 0 && countRunes(w, unicode.IsUpper) == 0
}

// newCharsInString counts occurrences in the match of each character of the
// "string" parameter
func newCharsInString(p Params, _ Deps) (Feature, error) {
	chars, err := p.String("string")
	if err != nil {
		return nil, err
	}
	return Func(func(c *candidate.Candidate) float64 {
		return float64(countRunes(c.Match, func(r rune) bool {
			return strings.ContainsRune(chars, r)
		}))
	}), nil
}

// newContainsString is 1 when the candidate's whole line contains the
// "string" parameter
func newContainsString(p Params, _ Deps) (Feature, error) {
	s, err := p.String("string")
	if err != nil {
		return nil, err
	}
	return Func(func(c *candidate.Candidate) float64 {
		if strings.Contains(c.Line.Text, s) {
			return 1
		}
		return 0
	}), nil
}

const wordPunctuation = "\"';.:!?"

// newDictWordCount counts the words of the match found in the dictionary
// file named by "word_file". Only all-lower-case dictionary entries are
// used, which leaves proper nouns out.
func newDictWordCount(p Params, d Deps) (Feature, error) {
	name, err := p.String("word_file")
	if err != nil {
		return nil, err
	}
	words, err := loadWords(d.path(name))
	if err != nil {
		return nil, err
	}
	return Func(func(c *candidate.Candidate) float64 {
		return countWords(c.Match, func(w string) bool {
			_, ok := words[strings.ToLower(strings.Trim(w, wordPunctuation))]
			return ok
		})
	}), nil
}

func loadWords(path string) (map[string]struct{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word file: %w", err)
	}
	defer f.Close()

	words := make(map[string]struct{})
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if isAllLower(w) {
			words[w] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word file: %w", err)
	}
	return words, nil
}

// newBoxPhrases counts the lines of the candidate's box that contain one of
// the "phrases"
func newBoxPhrases(p Params, d Deps) (Feature, error) {
	phrases, err := p.Strings("phrases")
	if err != nil {
		return nil, err
	}
	compiler := d.Compiler
	if compiler == nil {
		compiler = pattern.New(nil)
	}
	re := compiler.ListPattern(phrases)
	return Func(func(c *candidate.Candidate) float64 {
		box := c.Line.Box()
		if box == nil {
			return 0
		}
		return float64(countLines(box.Lines(), re))
	}), nil
}

func countLines(lines []*model.Line, re *regexp.Regexp) int {
	n := 0
	for _, l := range lines {
		if re.MatchString(l.Text) {
			n++
		}
	}
	return n
}

// rankValue orders candidates by formatted value. Equal values share a rank
// and ranks are dense, starting at 0.
type rankValue struct {
	reverse bool
}

func newRankValue(p Params, _ Deps) (Feature, error) {
	reverse, err := p.Bool("reverse")
	if err != nil {
		return nil, err
	}
	return rankValue{reverse: reverse}, nil
}

// Compute implements Feature
func (f rankValue) Compute(cands []*candidate.Candidate) map[candidate.ID]float64 {
	seen := make(map[string]bool)
	var values []string
	for _, c := range cands {
		if !seen[c.Formatted] {
			seen[c.Formatted] = true
			values = append(values, c.Formatted)
		}
	}
	sort.Strings(values)
	if f.reverse {
		for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
			values[i], values[j] = values[j], values[i]
		}
	}

	rank := make(map[string]float64, len(values))
	for i, v := range values {
		rank[v] = float64(i)
	}
	out := make(map[candidate.ID]float64, len(cands))
	for _, c := range cands {
		out[c.ID] = rank[c.Formatted]
	}
	return out
}
