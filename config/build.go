package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/tsawler/fieldscan/feature"
	"github.com/tsawler/fieldscan/field"
	"github.com/tsawler/fieldscan/fieldtype"
	"github.com/tsawler/fieldscan/finder"
	"github.com/tsawler/fieldscan/model"
	"github.com/tsawler/fieldscan/pattern"
)

// BuildOptions adjusts field construction
type BuildOptions struct {
	// Now is the clock used for the default maximum date, time.Now when nil
	Now func() time.Time
}

// Level returns the configured log level, Info when unset
func (s *Settings) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// SubstitutionTable converts the substitution list to a compiler table.
// Entries for the same character are merged.
func (s *Settings) SubstitutionTable() pattern.Substitutions {
	table := make(pattern.Substitutions)
	for _, sub := range s.Substitutions {
		r, _ := utf8.DecodeRuneInString(sub.Char)
		if r == utf8.RuneError {
			continue
		}
		table[r] = append(table[r], sub.With...)
	}
	return table
}

// Build constructs the configured fields in name order. All fields share one
// pattern compiler.
func (s *Settings) Build(opts BuildOptions) ([]*field.Field, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	compiler := pattern.New(s.SubstitutionTable())

	names := fieldtype.NewFirstNames(nil)
	if s.FirstNames != "" {
		var err error
		names, err = fieldtype.LoadFirstNames(s.resolve(s.FirstNames))
		if err != nil {
			return nil, err
		}
	}

	var maxDate time.Time
	if s.MaxDate != "" {
		maxDate, _ = time.Parse(fieldtype.DateLayout, s.MaxDate)
	}

	fields := make([]*field.Field, 0, len(s.Fields))
	for _, name := range s.FieldNames() {
		fc := s.Fields[name]

		h, err := fieldtype.New(fieldtype.Type(fc.Type), fieldtype.Options{
			Patterns:   fc.Patterns,
			FirstNames: names,
			MaxDate:    maxDate,
			Now:        opts.Now,
		})
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}

		strip := finder.NewStripper(compiler, s.foreignLabels(name))

		finders := make([]finder.Finder, 0, len(fc.Finders))
		for _, fd := range fc.Finders {
			finders = append(finders, fd.build(fc.Labels, compiler, h, strip))
		}

		features := make([]field.NamedFeature, 0, len(fc.Features))
		deps := feature.Deps{Compiler: compiler, BaseDir: s.baseDir}
		for _, ft := range fc.Features {
			f, err := feature.New(feature.Kind(ft.Kind), feature.Params(ft.Params), deps)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", name, err)
			}
			features = append(features, field.NamedFeature{Name: ft.Name, Feature: f})
		}

		f, err := field.New(name, fc.Labels, h, finders, features)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// foreignLabels returns the labels of every other field and of the ignored
// fields, in a stable order
func (s *Settings) foreignLabels(name string) []string {
	var labels []string
	for _, other := range s.FieldNames() {
		if other != name {
			labels = append(labels, s.Fields[other].Labels...)
		}
	}
	for _, ignored := range sortedKeys(s.IgnoreFields) {
		labels = append(labels, s.IgnoreFields[ignored].Labels...)
	}
	return labels
}

func (s *Settings) resolve(name string) string {
	if filepath.IsAbs(name) || s.baseDir == "" {
		return name
	}
	return filepath.Join(s.baseDir, name)
}

func (fd FinderConfig) build(labels []string, c *pattern.Compiler, h fieldtype.Handler, strip *finder.Stripper) finder.Finder {
	var area model.BBox
	if len(fd.BBox) == 4 {
		area = model.NewBBoxFromCorners(fd.BBox[0], fd.BBox[1], fd.BBox[2], fd.BBox[3])
	}

	if finder.Kind(fd.Kind) == finder.KindBoxPhrase {
		minPage := finder.NoPageLimit
		if fd.MinPage != nil {
			minPage = *fd.MinPage
		}
		return finder.NewBoxPhraseFinder(finder.BoxPhraseConfig{
			ID:             fd.ID,
			Phrases:        fd.Phrases,
			CandidateLines: fd.CandidateLines,
			Area:           area,
			MinPage:        minPage,
			MaxPage:        fd.MaxPage,
			MinWidth:       fd.MinWidth,
			MaxWidth:       fd.MaxWidth,
			MinHeight:      fd.MinHeight,
			MaxHeight:      fd.MaxHeight,
		}, c, h, strip)
	}

	return finder.NewLabelFinder(finder.LabelConfig{
		ID:       fd.ID,
		Labels:   labels,
		MaxXGap:  fd.MaxXGap,
		MaxYGap:  fd.MaxYGap,
		Area:     area,
		Trailing: fd.Trailing,
	}, c, h, strip)
}
