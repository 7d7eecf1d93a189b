// Package feature computes numeric descriptors of candidates. The values
// feed the external scoring model that ranks a field's candidates.
package feature

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/tsawler/fieldscan/candidate"
	"github.com/tsawler/fieldscan/pattern"
)

// Kind names a feature implementation in configuration
type Kind string

const (
	KindLowerLeftX         Kind = "lower_left_x"
	KindLowerLeftY         Kind = "lower_left_y"
	KindLineHeight         Kind = "line_height"
	KindXBox               Kind = "x_box"
	KindYBox               Kind = "y_box"
	KindPageNum            Kind = "page_num"
	KindBoxRank            Kind = "box_rank"
	KindLabelOffsetX       Kind = "label_offset_x"
	KindLabelOffsetY       Kind = "label_offset_y"
	KindFinderID           Kind = "finder_id"
	KindWordCount          Kind = "word_count"
	KindLength             Kind = "length"
	KindDigitCount         Kind = "digit_count"
	KindAlphaCount         Kind = "alpha_count"
	KindAllCapsWordCount   Kind = "all_caps_word_count"
	KindInitCapsWordCount  Kind = "init_caps_word_count"
	KindInitLowerWordCount Kind = "init_lower_word_count"
	KindCharsInString      Kind = "chars_in_string"
	KindContainsString     Kind = "contains_string"
	KindDictWordCount      Kind = "dict_word_count"
	KindBoxPhrases         Kind = "box_phrases"
	KindRankValue          Kind = "rank_value"
)

var (
	// ErrUnknownFeature is returned by New for an unregistered kind
	ErrUnknownFeature = errors.New("unknown feature")

	// ErrInvalidParams is returned by New when a required parameter is
	// missing or has the wrong type
	ErrInvalidParams = errors.New("invalid feature parameters")
)

// Feature computes one value per candidate
type Feature interface {
	Compute(cands []*candidate.Candidate) map[candidate.ID]float64
}

// Func is a Feature whose value depends on a single candidate
type Func func(c *candidate.Candidate) float64

// Compute implements Feature
func (f Func) Compute(cands []*candidate.Candidate) map[candidate.ID]float64 {
	out := make(map[candidate.ID]float64, len(cands))
	for _, c := range cands {
		out[c.ID] = f(c)
	}
	return out
}

// Deps are shared resources some features need
type Deps struct {
	// Compiler builds phrase patterns for box_phrases
	Compiler *pattern.Compiler

	// BaseDir resolves relative file parameters
	BaseDir string
}

type constructor func(p Params, d Deps) (Feature, error)

var registry = map[Kind]constructor{
	KindLowerLeftX:         fixed(lowerLeftX),
	KindLowerLeftY:         fixed(lowerLeftY),
	KindLineHeight:         fixed(lineHeight),
	KindXBox:               fixed(xBox),
	KindYBox:               fixed(yBox),
	KindPageNum:            fixed(pageNum),
	KindBoxRank:            fixed(boxRank),
	KindLabelOffsetX:       fixed(labelOffsetX),
	KindLabelOffsetY:       fixed(labelOffsetY),
	KindFinderID:           fixed(finderID),
	KindWordCount:          fixed(wordCount),
	KindLength:             fixed(length),
	KindDigitCount:         fixed(digitCount),
	KindAlphaCount:         fixed(alphaCount),
	KindAllCapsWordCount:   fixed(allCapsWordCount),
	KindInitCapsWordCount:  fixed(initCapsWordCount),
	KindInitLowerWordCount: fixed(initLowerWordCount),
	KindCharsInString:      newCharsInString,
	KindContainsString:     newContainsString,
	KindDictWordCount:      newDictWordCount,
	KindBoxPhrases:         newBoxPhrases,
	KindRankValue:          newRankValue,
}

func fixed(f Func) constructor {
	return func(Params, Deps) (Feature, error) {
		return f, nil
	}
}

// New returns the feature registered for kind
func New(kind Kind, params Params, deps Deps) (Feature, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, kind)
	}
	f, err := ctor(params, deps)
	if err != nil {
		return nil, fmt.Errorf("feature %s: %w", kind, err)
	}
	return f, nil
}

// Kinds returns every registered kind in sorted order
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Params are the configuration parameters of one feature
type Params map[string]any

// String returns a required string parameter
func (p Params) String(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("%w: missing %q", ErrInvalidParams, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string", ErrInvalidParams, key)
	}
	return s, nil
}

// Strings returns a required list of strings. A single string is accepted
// as a list of one.
func (p Params) Strings(key string) ([]string, error) {
	switch v := p[key].(type) {
	case nil:
		return nil, fmt.Errorf("%w: missing %q", ErrInvalidParams, key)
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q must be a list of strings", ErrInvalidParams, key)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q must be a list of strings", ErrInvalidParams, key)
	}
}

// Bool returns an optional boolean parameter, false when missing
func (p Params) Bool(key string) (bool, error) {
	v, ok := p[key]
	if !ok {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q must be a boolean", ErrInvalidParams, key)
	}
	return b, nil
}

// path resolves a file parameter against the base directory
func (d Deps) path(name string) string {
	if filepath.IsAbs(name) || d.BaseDir == "" {
		return name
	}
	return filepath.Join(d.BaseDir, name)
}
