// Package pattern compiles human-readable labels into regular expressions
// that tolerate the character confusions of OCR engines.
//
// A [Compiler] is configured with a substitution table listing, for each
// character, the strings a scanner tends to produce instead of it:
//
//	c := pattern.New(pattern.Substitutions{
//	    '0': {"o", "O"},
//	    'l': {"1", "I"},
//	})
//	re := c.ListPattern([]string{"Date of Birth", "DOB"})
//	loc := re.FindStringIndex(line.Text)
//
// Patterns are built at three levels, each memoized inside the compiler:
//
//   - [Compiler.CharacterPattern] - one character or any of its substitutes
//   - [Compiler.StringPattern] - a label, allowing whitespace between characters
//   - [Compiler.ListPattern] - any label of a set, plus upper-case variants
//
// List patterns are keyed by the set of labels, so callers passing the same
// labels in a different order share one compiled pattern.
package pattern
