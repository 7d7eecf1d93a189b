package fieldscan

import "log/slog"

// DefaultConcurrency bounds the documents ExtractAll processes at once when
// no limit is configured
const DefaultConcurrency = 4

// ExtractOptions holds configuration for candidate extraction.
type ExtractOptions struct {
	// Field selection by name, nil means every field
	only []string

	// Processing options
	concurrency int
	logger      *slog.Logger // nil means slog.Default()
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		only:        nil,
		concurrency: DefaultConcurrency,
		logger:      nil,
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		concurrency: o.concurrency,
		logger:      o.logger,
	}

	if o.only != nil {
		newOpts.only = make([]string, len(o.only))
		copy(newOpts.only, o.only)
	}

	return newOpts
}

// selects reports whether the named field is part of the selection
func (o ExtractOptions) selects(name string) bool {
	if o.only == nil {
		return true
	}
	for _, n := range o.only {
		if n == name {
			return true
		}
	}
	return false
}
