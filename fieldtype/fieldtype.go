package fieldtype

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Type is the semantic type of a field
type Type string

const (
	TypeDate       Type = "date"
	TypeHumanName  Type = "human_name"
	TypeProperNoun Type = "proper_noun"
)

// ErrUnknownType is returned by New for a type without a handler
var ErrUnknownType = errors.New("unknown field type")

// String returns the configuration name of the type
func (t Type) String() string {
	return string(t)
}

// Valid reports whether t has a handler
func (t Type) Valid() bool {
	switch t {
	case TypeDate, TypeHumanName, TypeProperNoun:
		return true
	default:
		return false
	}
}

// Value is a normalized field value. The zero Value means "absent".
type Value struct {
	typ  Type
	date time.Time
	text string
}

// DateValue wraps a calendar date. The time of day and location are dropped.
func DateValue(t time.Time) Value {
	return Value{
		typ:  TypeDate,
		date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
	}
}

// TextValue wraps a textual value of the given type
func TextValue(typ Type, s string) Value {
	return Value{typ: typ, text: s}
}

// Type returns the type of the value, empty when absent
func (v Value) Type() Type {
	return v.typ
}

// IsZero reports whether the value is absent
func (v Value) IsZero() bool {
	return v.typ == ""
}

// Date returns the calendar date of a date value
func (v Value) Date() (time.Time, bool) {
	if v.typ != TypeDate {
		return time.Time{}, false
	}
	return v.date, true
}

// Text returns the text of a textual value
func (v Value) Text() string {
	return v.text
}

// String returns the canonical text form of the value
func (v Value) String() string {
	switch v.typ {
	case "":
		return ""
	case TypeDate:
		return v.date.Format(DateLayout)
	default:
		return v.text
	}
}

// Handler implements the per-type logic applied to candidate text: cleaning
// it, locating the value inside it, normalizing the value, and comparing
// values for training and evaluation.
//
// Absence is never an error: text that holds no recognizable value yields
// ok == false.
type Handler interface {
	// Type returns the semantic type handled
	Type() Type

	// Preprocess cleans raw line text before a value is searched for
	Preprocess(text string) string

	// FindValue returns the first span of text matching one of the value
	// patterns, trimmed
	FindValue(text string) (string, bool)

	// Extract normalizes a found span into a typed value
	Extract(text string) (Value, bool)

	// Format returns the canonical text form of v
	Format(v Value) string

	// Compare returns the similarity of two values in [0, 1]
	Compare(a, b Value) float64
}

// Options configures handler construction
type Options struct {
	// Patterns override the handler's default value patterns
	Patterns []string

	// FirstNames is the dictionary used to order human names
	FirstNames *FirstNames

	// MaxDate is the latest plausible date; later dates are moved back a
	// century. Zero means today.
	MaxDate time.Time

	// Now returns the current time, time.Now when nil
	Now func() time.Time
}

// New returns the handler for t
func New(t Type, opts Options) (Handler, error) {
	var defaults []string
	switch t {
	case TypeDate:
		defaults = datePatternSources()
	case TypeHumanName:
		defaults = []string{humanNamePattern}
	case TypeProperNoun:
		defaults = []string{properNounPattern}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t)
	}

	sources := defaults
	if len(opts.Patterns) > 0 {
		sources = opts.Patterns
	}
	patterns, err := compilePatterns(sources)
	if err != nil {
		return nil, fmt.Errorf("field type %s: %w", t, err)
	}
	base := valueFinder{patterns: patterns}

	switch t {
	case TypeDate:
		now := opts.Now
		if now == nil {
			now = time.Now
		}
		return &Date{valueFinder: base, maxDate: opts.MaxDate, now: now}, nil
	case TypeHumanName:
		names := opts.FirstNames
		if names == nil {
			names = NewFirstNames(nil)
		}
		return &HumanName{valueFinder: base, names: names}, nil
	default:
		return &ProperNoun{valueFinder: base}, nil
	}
}

func compilePatterns(sources []string) ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(sources))
	for _, src := range sources {
		re, err := regexp.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("invalid value pattern %q: %w", src, err)
		}
		patterns = append(patterns, re)
	}
	return patterns, nil
}

// valueFinder implements FindValue over an ordered list of patterns
type valueFinder struct {
	patterns []*regexp.Regexp
}

// FindValue returns the first non-blank match of the first pattern that has one
func (f valueFinder) FindValue(text string) (string, bool) {
	for _, re := range f.patterns {
		for _, m := range re.FindAllString(text, -1) {
			if s := strings.TrimSpace(m); s != "" {
				return s, true
			}
		}
	}
	return "", false
}
