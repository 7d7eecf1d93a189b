// Package fieldscan provides a fluent API for proposing candidate values for
// configured fields in documents whose text came from an OCR layer.
//
// Basic usage:
//
//	settings, err := config.Load("fields.yaml")
//	if err != nil {
//	    // handle error
//	}
//	ext, err := fieldscan.NewFromSettings(settings, config.BuildOptions{})
//	if err != nil {
//	    // handle error
//	}
//	byField := ext.Candidates(doc)
//
// With options:
//
//	results, err := ext.
//	    Only("date_of_birth").
//	    WithConcurrency(8).
//	    WithLogger(logger).
//	    ExtractAll(ctx, docs)
//
// The field, finder and feature packages can also be used directly.
package fieldscan

import (
	"github.com/tsawler/fieldscan/config"
	"github.com/tsawler/fieldscan/field"
)

// New returns an Extractor over fields. Field names should be unique; results
// are keyed by name.
//
// Example:
//
//	byField := fieldscan.New(dob, name).Candidates(doc)
func New(fields ...*field.Field) *Extractor {
	return &Extractor{
		fields:  append([]*field.Field(nil), fields...),
		options: defaultOptions(),
	}
}

// NewFromSettings builds the configured fields and returns an Extractor using
// the configured concurrency.
//
// Example:
//
//	ext, err := fieldscan.NewFromSettings(settings, config.BuildOptions{})
func NewFromSettings(s *config.Settings, opts config.BuildOptions) (*Extractor, error) {
	fields, err := s.Build(opts)
	if err != nil {
		return nil, err
	}
	ext := New(fields...)
	if s.Concurrency > 0 {
		ext = ext.WithConcurrency(s.Concurrency)
	}
	return ext, nil
}
