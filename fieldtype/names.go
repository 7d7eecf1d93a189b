package fieldtype

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// FirstNames is an immutable dictionary of lower-case first names used to
// decide which part of a human name is the given name
type FirstNames struct {
	names []string
}

// NewFirstNames builds a dictionary from names. Entries are lower-cased,
// trimmed and de-duplicated; blank entries are ignored.
func NewFirstNames(names []string) *FirstNames {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return &FirstNames{names: out}
}

// ReadFirstNames reads a dictionary with one name per line
func ReadFirstNames(r io.Reader) (*FirstNames, error) {
	var names []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		names = append(names, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read first names: %w", err)
	}
	return NewFirstNames(names), nil
}

// LoadFirstNames reads a dictionary file with one name per line
func LoadFirstNames(path string) (*FirstNames, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open first names: %w", err)
	}
	defer f.Close()
	return ReadFirstNames(f)
}

// Len returns the number of names
func (f *FirstNames) Len() int {
	if f == nil {
		return 0
	}
	return len(f.names)
}

// Contains reports whether name is in the dictionary, ignoring case
func (f *FirstNames) Contains(name string) bool {
	if f == nil || len(f.names) == 0 {
		return false
	}
	name = strings.ToLower(name)
	i := sort.SearchStrings(f.names, name)
	return i < len(f.names) && f.names[i] == name
}

// LongestPrefix returns the length in runes of the longest proper prefix of
// word that is a dictionary name, leaving at least one rune over. It returns
// 0 when no prefix of two or more runes matches.
func (f *FirstNames) LongestPrefix(word string) int {
	runes := []rune(word)
	for n := len(runes) - 1; n >= 2; n-- {
		if f.Contains(string(runes[:n])) {
			return n
		}
	}
	return 0
}

// LongestSuffix is LongestPrefix for the end of word
func (f *FirstNames) LongestSuffix(word string) int {
	runes := []rune(word)
	for n := len(runes) - 1; n >= 2; n-- {
		if f.Contains(string(runes[len(runes)-n:])) {
			return n
		}
	}
	return 0
}
