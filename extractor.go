package fieldscan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/fieldscan/candidate"
	"github.com/tsawler/fieldscan/field"
	"github.com/tsawler/fieldscan/layout"
	"github.com/tsawler/fieldscan/model"
)

// ErrUnknownField is reported when a selected field name is not configured
var ErrUnknownField = errors.New("unknown field")

// Extractor provides a fluent interface for finding field candidates.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	fields []*field.Field

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// FieldResult holds what one field found in one document
type FieldResult struct {
	Candidates []*candidate.Candidate
	Features   map[candidate.ID]map[string]float64
}

// Result holds the findings for one document, keyed by field name
type Result struct {
	Document *model.Document
	Fields   map[string]FieldResult
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		fields:  e.fields,
		options: e.options.clone(),
		err:     e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Only restricts extraction to the named fields. Multiple calls are
// cumulative. Names that match no field are reported by ExtractAll and Err.
//
// Example:
//
//	byField := ext.Only("date_of_birth", "patient_name").Candidates(doc)
func (e *Extractor) Only(names ...string) *Extractor {
	newExt := e.clone()
	for _, name := range names {
		if newExt.err == nil && !e.hasField(name) {
			newExt.err = fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		newExt.options.only = append(newExt.options.only, name)
	}
	return newExt
}

// WithConcurrency bounds the documents ExtractAll processes at once. Values
// below 1 restore DefaultConcurrency.
//
// Example:
//
//	results, err := ext.WithConcurrency(8).ExtractAll(ctx, docs)
func (e *Extractor) WithConcurrency(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		n = DefaultConcurrency
	}
	newExt.options.concurrency = n
	return newExt
}

// WithLogger sets the logger for extraction runs. A nil logger restores
// slog.Default().
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Err returns the first configuration error, if any
func (e *Extractor) Err() error {
	return e.err
}

// Fields returns the selected fields in configured order
func (e *Extractor) Fields() []*field.Field {
	selected := make([]*field.Field, 0, len(e.fields))
	for _, f := range e.fields {
		if e.options.selects(f.Name()) {
			selected = append(selected, f)
		}
	}
	return selected
}

// Candidates runs every selected field over doc. The layout index is built
// once and shared by all fields. Every selected field has an entry, empty
// when nothing was found.
func (e *Extractor) Candidates(doc *model.Document) map[string][]*candidate.Candidate {
	idx := layout.NewIndex(doc)
	out := make(map[string][]*candidate.Candidate)
	for _, f := range e.Fields() {
		out[f.Name()] = f.CandidatesIndexed(doc, idx)
	}
	return out
}

// Extract finds the candidates of every selected field in doc and computes
// their features.
func (e *Extractor) Extract(doc *model.Document) Result {
	return e.extract(doc, e.logger())
}

// ExtractAll processes docs in parallel, bounded by the configured
// concurrency. Results are in input order. Cancelling ctx stops documents
// that have not started yet; the error is then the context's.
//
// Example:
//
//	results, err := ext.ExtractAll(ctx, docs)
func (e *Extractor) ExtractAll(ctx context.Context, docs []*model.Document) ([]Result, error) {
	if e.err != nil {
		return nil, e.err
	}

	runID := uuid.NewString()
	logger := e.logger().With("run", runID)
	logger.Debug("extraction started", "documents", len(docs), "fields", len(e.Fields()))

	results := make([]Result, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.concurrency)
	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.extract(doc, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extraction run %s: %w", runID, err)
	}

	logger.Debug("extraction finished", "documents", len(docs))
	return results, nil
}

func (e *Extractor) extract(doc *model.Document, logger *slog.Logger) Result {
	res := Result{
		Document: doc,
		Fields:   make(map[string]FieldResult),
	}
	if doc != nil {
		logger = logger.With("document", doc.Filename)
	}

	for name, cands := range e.Candidates(doc) {
		res.Fields[name] = FieldResult{Candidates: cands}
	}
	for _, f := range e.Fields() {
		fr := res.Fields[f.Name()]
		fr.Features = f.Features(fr.Candidates)
		res.Fields[f.Name()] = fr
		logger.Debug("field candidates", "field", f.Name(), "count", len(fr.Candidates))
	}
	return res
}

func (e *Extractor) logger() *slog.Logger {
	if e.options.logger == nil {
		return slog.Default()
	}
	return e.options.logger
}

func (e *Extractor) hasField(name string) bool {
	for _, f := range e.fields {
		if f.Name() == name {
			return true
		}
	}
	return false
}
