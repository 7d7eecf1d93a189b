// Package config loads field definitions from a YAML file and builds the
// fields they describe.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/spf13/viper"

	"github.com/tsawler/fieldscan/feature"
	"github.com/tsawler/fieldscan/fieldtype"
	"github.com/tsawler/fieldscan/finder"
)

// EnvPrefix prefixes environment variables that override top-level settings,
// such as FIELDSCAN_MAX_DATE
const EnvPrefix = "FIELDSCAN"

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Settings is the parsed configuration file
type Settings struct {
	// MaxDate is the latest plausible date as YYYY-MM-DD; empty means today
	MaxDate string `mapstructure:"max_date"`

	// FirstNames names a dictionary file, one name per line, resolved
	// relative to the configuration file
	FirstNames string `mapstructure:"first_names"`

	// Concurrency bounds the documents processed in parallel
	Concurrency int `mapstructure:"concurrency"`

	// LogLevel is one of debug, info, warn or error
	LogLevel string `mapstructure:"log_level"`

	Substitutions []Substitution          `mapstructure:"substitutions"`
	Fields        map[string]FieldConfig  `mapstructure:"fields"`
	IgnoreFields  map[string]IgnoreConfig `mapstructure:"ignore_fields"`

	baseDir string
}

// Substitution lists the strings OCR may produce in place of Char
type Substitution struct {
	Char string   `mapstructure:"char"`
	With []string `mapstructure:"with"`
}

// FieldConfig describes one field
type FieldConfig struct {
	Type     string          `mapstructure:"type"`
	Labels   []string        `mapstructure:"labels"`
	Patterns []string        `mapstructure:"patterns"`
	Finders  []FinderConfig  `mapstructure:"finders"`
	Features []FeatureConfig `mapstructure:"features"`
}

// FinderConfig describes one finder of a field. Options apply to the kinds
// noted.
type FinderConfig struct {
	ID   int    `mapstructure:"id"`
	Kind string `mapstructure:"kind"`

	// BBox is [x0, y0, x1, y1]
	BBox []float64 `mapstructure:"bbox"`

	// label
	MaxXGap  float64 `mapstructure:"max_xgap"`
	MaxYGap  float64 `mapstructure:"max_ygap"`
	Trailing bool    `mapstructure:"trailing"`

	// box_phrase
	Phrases        []string `mapstructure:"phrases"`
	CandidateLines []int    `mapstructure:"candidate_lines"`
	MinPage        *int     `mapstructure:"min_page"`
	MaxPage        int      `mapstructure:"max_page"`
	MinWidth       float64  `mapstructure:"min_width"`
	MaxWidth       float64  `mapstructure:"max_width"`
	MinHeight      float64  `mapstructure:"min_height"`
	MaxHeight      float64  `mapstructure:"max_height"`
}

// FeatureConfig describes one feature column of a field
type FeatureConfig struct {
	Name   string         `mapstructure:"name"`
	Kind   string         `mapstructure:"kind"`
	Params map[string]any `mapstructure:"params"`
}

// IgnoreConfig lists labels that are stripped from values but never
// extracted
type IgnoreConfig struct {
	Labels []string `mapstructure:"labels"`
}

// DefaultSettings returns the values used for settings a file leaves out
func DefaultSettings() Settings {
	return Settings{
		Concurrency: 4,
		LogLevel:    "info",
	}
}

// Load reads and validates the configuration file at path
func Load(path string) (*Settings, error) {
	v := viper.New()

	defaults := DefaultSettings()
	v.SetDefault("max_date", defaults.MaxDate)
	v.SetDefault("first_names", defaults.FirstNames)
	v.SetDefault("concurrency", defaults.Concurrency)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	s.baseDir = filepath.Dir(path)

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// BaseDir returns the directory relative file names are resolved against
func (s *Settings) BaseDir() string {
	return s.baseDir
}

// FieldNames returns the configured field names in sorted order
func (s *Settings) FieldNames() []string {
	return sortedKeys(s.Fields)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate reports every problem found in the settings. The returned error
// wraps ErrInvalidConfig and, where one applies, the sentinel of the
// package that rejected the value.
func (s *Settings) Validate() error {
	var problems []error
	add := func(err error) {
		problems = append(problems, err)
	}

	if s.MaxDate != "" {
		if _, err := time.Parse(fieldtype.DateLayout, s.MaxDate); err != nil {
			add(fmt.Errorf("max_date %q is not YYYY-MM-DD", s.MaxDate))
		}
	}
	if s.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
			add(fmt.Errorf("log_level %q is not debug, info, warn or error", s.LogLevel))
		}
	}
	if s.Concurrency < 0 {
		add(errors.New("concurrency must not be negative"))
	}
	for i, sub := range s.Substitutions {
		if utf8.RuneCountInString(sub.Char) != 1 {
			add(fmt.Errorf("substitutions[%d]: char %q must be a single character", i, sub.Char))
		}
	}
	if len(s.Fields) == 0 {
		add(errors.New("no fields configured"))
	}

	for _, name := range s.FieldNames() {
		for _, err := range s.Fields[name].validate() {
			add(fmt.Errorf("field %s: %w", name, err))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(problems...))
}

func (fc FieldConfig) validate() []error {
	var problems []error

	if !fieldtype.Type(fc.Type).Valid() {
		problems = append(problems, fmt.Errorf("%w: %q", fieldtype.ErrUnknownType, fc.Type))
	}

	ids := make(map[int]bool)
	for i, fd := range fc.Finders {
		kind, err := finder.ParseKind(fd.Kind)
		if err != nil {
			problems = append(problems, fmt.Errorf("finders[%d]: %w", i, err))
		}
		if ids[fd.ID] {
			problems = append(problems, fmt.Errorf("finders[%d]: duplicate id %d", i, fd.ID))
		}
		ids[fd.ID] = true

		if err := validateBBox(fd.BBox); err != nil {
			problems = append(problems, fmt.Errorf("finders[%d]: %w", i, err))
		}

		switch kind {
		case finder.KindLabel:
			if len(fc.Labels) == 0 {
				problems = append(problems, fmt.Errorf("finders[%d]: label finder needs field labels", i))
			}
		case finder.KindBoxPhrase:
			if len(fd.Phrases) == 0 {
				problems = append(problems, fmt.Errorf("finders[%d]: box_phrase finder needs phrases", i))
			}
			if len(fd.CandidateLines) == 0 {
				problems = append(problems, fmt.Errorf("finders[%d]: box_phrase finder needs candidate_lines", i))
			}
		}
	}

	names := make(map[string]bool)
	known := make(map[feature.Kind]bool)
	for _, k := range feature.Kinds() {
		known[k] = true
	}
	for i, ft := range fc.Features {
		if ft.Name == "" {
			problems = append(problems, fmt.Errorf("features[%d]: missing name", i))
		} else if names[ft.Name] {
			problems = append(problems, fmt.Errorf("features[%d]: duplicate name %q", i, ft.Name))
		}
		names[ft.Name] = true
		if !known[feature.Kind(ft.Kind)] {
			problems = append(problems, fmt.Errorf("features[%d]: %w: %q", i, feature.ErrUnknownFeature, ft.Kind))
		}
	}

	return problems
}

func validateBBox(bbox []float64) error {
	if len(bbox) == 0 {
		return nil
	}
	if len(bbox) != 4 {
		return fmt.Errorf("bbox must have 4 numbers, got %d", len(bbox))
	}
	if bbox[0] > bbox[2] || bbox[1] > bbox[3] {
		return fmt.Errorf("bbox %v must be [x0, y0, x1, y1] with x0 <= x1 and y0 <= y1", bbox)
	}
	if bbox[0] == bbox[2] || bbox[1] == bbox[3] {
		return fmt.Errorf("bbox %v has no area", bbox)
	}
	return nil
}
