package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/fieldscan"
)

// record is one candidate as printed by the CLI
type record struct {
	Document     string             `json:"document" yaml:"document"`
	Field        string             `json:"field" yaml:"field"`
	ID           string             `json:"id" yaml:"id"`
	Page         int                `json:"page" yaml:"page"`
	Match        string             `json:"match" yaml:"match"`
	Value        string             `json:"value" yaml:"value"`
	LabelOffsetX float64            `json:"label_offset_x" yaml:"label_offset_x"`
	LabelOffsetY float64            `json:"label_offset_y" yaml:"label_offset_y"`
	Features     map[string]float64 `json:"features,omitempty" yaml:"features,omitempty"`
}

// records flattens results in document order, then field order
func records(results []fieldscan.Result, fields []string) []record {
	out := []record{}
	for _, res := range results {
		for _, name := range fields {
			fr := res.Fields[name]
			for _, c := range fr.Candidates {
				out = append(out, record{
					Document:     res.Document.Filename,
					Field:        name,
					ID:           c.ID.String(),
					Page:         c.Page(),
					Match:        c.Match,
					Value:        c.Formatted,
					LabelOffsetX: c.LabelOffsetX(),
					LabelOffsetY: c.LabelOffsetY(),
					Features:     fr.Features[c.ID],
				})
			}
		}
	}
	return out
}

// writeOutput writes data to w in the given format
func writeOutput(w io.Writer, format string, data any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(data)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(data)
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}
