package pattern

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// noMatch is the source of a pattern that never matches anything. It backs
// label lists that contain no usable label.
const noMatch = `[^\x00-\x{10FFFF}]`

// Substitutions maps a character to the strings an OCR engine commonly
// produces in its place, e.g. '0' -> {"o", "O"}.
type Substitutions map[rune][]string

// Compiler builds OCR-tolerant regular expressions from label text and
// memoizes them. A Compiler is safe for concurrent use; its caches are only
// ever filled with values that are pure functions of the substitution table,
// so two goroutines racing on the same key produce the same result and the
// first stored value wins.
type Compiler struct {
	subs Substitutions

	mu    sync.RWMutex
	chars map[rune]string
	strs  map[string]string
	lists map[string]*regexp.Regexp
}

// New creates a compiler for the given substitution table. The table is
// copied; later changes by the caller have no effect.
func New(subs Substitutions) *Compiler {
	table := make(Substitutions, len(subs))
	for r, alts := range subs {
		table[r] = append([]string(nil), alts...)
	}

	return &Compiler{
		subs:  table,
		chars: make(map[rune]string),
		strs:  make(map[string]string),
		lists: make(map[string]*regexp.Regexp),
	}
}

// HasSubstitutions reports whether r has an entry in the substitution table
func (c *Compiler) HasSubstitutions(r rune) bool {
	_, ok := c.subs[r]
	return ok
}

// CharacterPattern returns a pattern matching r or any of its configured
// substitutes. A character without substitutes yields its quoted literal.
func (c *Compiler) CharacterPattern(r rune) string {
	c.mu.RLock()
	p, ok := c.chars[r]
	c.mu.RUnlock()
	if ok {
		return p
	}

	alts, ok := c.subs[r]
	if !ok {
		p = regexp.QuoteMeta(string(r))
	} else {
		parts := make([]string, 0, len(alts)+1)
		for _, s := range append(append([]string(nil), alts...), string(r)) {
			if s == "" {
				continue
			}
			quoted := regexp.QuoteMeta(s)
			if utf8.RuneCountInString(s) > 1 {
				quoted = "(?:" + quoted + ")"
			}
			parts = append(parts, quoted)
		}
		p = "(?:" + strings.Join(parts, "|") + ")"
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.chars[r]; ok {
		return existing
	}
	c.chars[r] = p
	return p
}

// StringPattern returns a pattern matching s with OCR substitutions applied
// to each character and optional whitespace allowed between characters.
// Whitespace inside s is absorbed by those gaps.
func (c *Compiler) StringPattern(s string) string {
	c.mu.RLock()
	p, ok := c.strs[s]
	c.mu.RUnlock()
	if ok {
		return p
	}

	parts := make([]string, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		if c.HasSubstitutions(r) {
			parts = append(parts, c.CharacterPattern(r))
		} else {
			parts = append(parts, regexp.QuoteMeta(string(r)))
		}
	}
	p = strings.Join(parts, `\s*`)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.strs[s]; ok {
		return existing
	}
	c.strs[s] = p
	return p
}

// ListPatternString returns the uncompiled source of ListPattern(strings)
func (c *Compiler) ListPatternString(strings []string) string {
	return c.ListPattern(strings).String()
}

// ListPattern returns a compiled pattern matching any of the given strings
// or their upper-case variants. The result depends only on the set of
// strings: the same set in any order returns the identical *regexp.Regexp.
// Blank strings are ignored; a list without usable strings never matches.
func (c *Compiler) ListPattern(strs []string) *regexp.Regexp {
	set := labelSet(strs)
	key := strings.Join(set, "\x1f")

	c.mu.RLock()
	re, ok := c.lists[key]
	c.mu.RUnlock()
	if ok {
		return re
	}

	re = c.compileList(set)

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.lists[key]; ok {
		return existing
	}
	c.lists[key] = re
	return re
}

func (c *Compiler) compileList(set []string) *regexp.Regexp {
	seen := make(map[string]bool, len(set)*2)
	variants := make([]string, 0, len(set)*2)
	for _, s := range set {
		for _, v := range []string{s, strings.ToUpper(s)} {
			if !seen[v] {
				seen[v] = true
				variants = append(variants, v)
			}
		}
	}

	// Longest first so a label that prefixes another cannot cut it short
	// under leftmost-first alternation.
	sort.Slice(variants, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(variants[i]), utf8.RuneCountInString(variants[j])
		if li != lj {
			return li > lj
		}
		return variants[i] < variants[j]
	})

	alts := make([]string, 0, len(variants))
	for _, v := range variants {
		if p := c.StringPattern(v); p != "" {
			alts = append(alts, "(?:"+p+")")
		}
	}
	if len(alts) == 0 {
		return regexp.MustCompile(noMatch)
	}

	re, err := regexp.Compile(strings.Join(alts, "|"))
	if err != nil {
		return regexp.MustCompile(noMatch)
	}
	return re
}

// labelSet returns the sorted, de-duplicated, non-blank members of strs
func labelSet(strs []string) []string {
	seen := make(map[string]bool, len(strs))
	set := make([]string, 0, len(strs))
	for _, s := range strs {
		if strings.TrimSpace(s) == "" || seen[s] {
			continue
		}
		seen[s] = true
		set = append(set, s)
	}
	sort.Strings(set)
	return set
}
