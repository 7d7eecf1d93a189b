package fieldtype

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var reSpaces = regexp.MustCompile(`\s+`)

// normalize folds compatibility characters (full-width digits, ligatures)
// that some OCR layers emit into their plain forms
func normalize(s string) string {
	return norm.NFKC.String(s)
}

// collapseSpaces replaces whitespace runs with one space and trims the ends
func collapseSpaces(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// titleCase upper-cases the first letter of every word and lower-cases the rest.
// Letters after a hyphen, and after an apostrophe that follows a one-letter
// prefix (O'Brien, D'Angelo), start a new word. A Caser carries state, so one
// is created per call.
func titleCase(s string) string {
	runes := []rune(cases.Title(language.English).String(s))
	for i := 1; i < len(runes)-1; i++ {
		switch runes[i] {
		case '-':
			runes[i+1] = unicode.ToUpper(runes[i+1])
		case '\'':
			if unicode.IsLetter(runes[i-1]) && (i == 1 || !unicode.IsLetter(runes[i-2])) {
				runes[i+1] = unicode.ToUpper(runes[i+1])
			}
		}
	}
	return string(runes)
}

// isUpper reports whether s has at least one letter and no lower-case letters
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}
