package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/fieldscan/feature"
	"github.com/tsawler/fieldscan/fieldtype"
	"github.com/tsawler/fieldscan/finder"
	"github.com/tsawler/fieldscan/model"
)

// writeConfig marshals doc as YAML into a temporary directory and returns
// the file path
func writeConfig(t *testing.T, doc map[string]any) string {
	t.Helper()
	data, err := yaml.Marshal(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "fieldscan.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func validConfig() map[string]any {
	return map[string]any{
		"max_date":    "2020-12-31",
		"first_names": "names.txt",
		"log_level":   "debug",
		"substitutions": []any{
			map[string]any{"char": "0", "with": []string{"o", "O"}},
			map[string]any{"char": "l", "with": []string{"1", "I"}},
		},
		"fields": map[string]any{
			"date_of_birth": map[string]any{
				"type":   "date",
				"labels": []string{"Date of Birth", "DOB"},
				"finders": []any{
					map[string]any{"id": 0, "kind": "label", "max_xgap": 300, "max_ygap": 40, "bbox": []int{0, 0, 612, 792}},
				},
				"features": []any{
					map[string]any{"name": "x", "kind": "lower_left_x"},
					map[string]any{"name": "slashes", "kind": "chars_in_string", "params": map[string]any{"string": "/"}},
				},
			},
			"patient_name": map[string]any{
				"type":   "human_name",
				"labels": []string{"Patient Name", "Name"},
				"finders": []any{
					map[string]any{"id": 0, "kind": "label"},
					map[string]any{"id": 1, "kind": "box_phrase", "phrases": []string{"Patient"}, "candidate_lines": []int{1}},
				},
			},
		},
		"ignore_fields": map[string]any{
			"address": map[string]any{"labels": []string{"Address"}},
		},
	}
}

func writeNames(t *testing.T, path string) {
	t.Helper()
	names := filepath.Join(filepath.Dir(path), "names.txt")
	require.NoError(t, os.WriteFile(names, []byte("john\nmary\n"), 0o644))
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, validConfig())

	s, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2020-12-31", s.MaxDate)
	assert.Equal(t, 4, s.Concurrency, "default concurrency")
	assert.Equal(t, slog.LevelDebug, s.Level())
	assert.Equal(t, filepath.Dir(path), s.BaseDir())
	assert.Equal(t, []string{"date_of_birth", "patient_name"}, s.FieldNames())

	dob := s.Fields["date_of_birth"]
	assert.Equal(t, "date", dob.Type)
	require.Len(t, dob.Finders, 1)
	assert.Equal(t, []float64{0, 0, 612, 792}, dob.Finders[0].BBox)
	assert.Equal(t, 300.0, dob.Finders[0].MaxXGap)
	assert.Equal(t, "/", dob.Features[1].Params["string"])

	table := s.SubstitutionTable()
	assert.Equal(t, []string{"o", "O"}, table['0'])
	assert.Equal(t, []string{"1", "I"}, table['l'])
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, validConfig())
	t.Setenv("FIELDSCAN_MAX_DATE", "1999-01-01")
	t.Setenv("FIELDSCAN_CONCURRENCY", "8")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1999-01-01", s.MaxDate)
	assert.Equal(t, 8, s.Concurrency)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg map[string]any)
		sentinel error
		message  string
	}{
		{
			name: "unknown type",
			mutate: func(cfg map[string]any) {
				fieldConfig(cfg, "date_of_birth")["type"] = "currency"
			},
			sentinel: fieldtype.ErrUnknownType,
		},
		{
			name: "unknown finder kind",
			mutate: func(cfg map[string]any) {
				fieldConfig(cfg, "date_of_birth")["finders"] = []any{map[string]any{"id": 0, "kind": "table"}}
			},
			sentinel: finder.ErrUnknownKind,
		},
		{
			name: "unknown feature",
			mutate: func(cfg map[string]any) {
				fieldConfig(cfg, "date_of_birth")["features"] = []any{map[string]any{"name": "c", "kind": "colour"}}
			},
			sentinel: feature.ErrUnknownFeature,
		},
		{
			name: "short bbox",
			mutate: func(cfg map[string]any) {
				fieldConfig(cfg, "date_of_birth")["finders"] = []any{map[string]any{"id": 0, "kind": "label", "bbox": []int{0, 0, 612}}}
			},
			message: "bbox must have 4 numbers",
		},
		{
			name: "inverted bbox",
			mutate: func(cfg map[string]any) {
				fieldConfig(cfg, "date_of_birth")["finders"] = []any{map[string]any{"id": 0, "kind": "label", "bbox": []int{612, 0, 0, 792}}}
			},
			message: "x0 <= x1",
		},
		{
			name: "flat bbox",
			mutate: func(cfg map[string]any) {
				fieldConfig(cfg, "date_of_birth")["finders"] = []any{map[string]any{"id": 0, "kind": "label", "bbox": []int{0, 0, 100, 0}}}
			},
			message: "has no area",
		},
		{
			name: "duplicate finder id",
			mutate: func(cfg map[string]any) {
				fieldConfig(cfg, "patient_name")["finders"] = []any{
					map[string]any{"id": 1, "kind": "label"},
					map[string]any{"id": 1, "kind": "box_phrase", "phrases": []string{"Patient"}, "candidate_lines": []int{1}},
				}
			},
			message: "duplicate id 1",
		},
		{
			name: "box phrase without lines",
			mutate: func(cfg map[string]any) {
				fieldConfig(cfg, "patient_name")["finders"] = []any{map[string]any{"id": 0, "kind": "box_phrase", "phrases": []string{"Patient"}}}
			},
			message: "needs candidate_lines",
		},
		{
			name: "bad max date",
			mutate: func(cfg map[string]any) {
				cfg["max_date"] = "31/12/2020"
			},
			message: "max_date",
		},
		{
			name: "long substitution char",
			mutate: func(cfg map[string]any) {
				cfg["substitutions"] = []any{map[string]any{"char": "rn", "with": []string{"m"}}}
			},
			message: "single character",
		},
		{
			name: "no fields",
			mutate: func(cfg map[string]any) {
				delete(cfg, "fields")
			},
			message: "no fields configured",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			_, err := Load(writeConfig(t, cfg))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
			if tt.message != "" {
				assert.Contains(t, err.Error(), tt.message)
			}
		})
	}
}

func fieldConfig(cfg map[string]any, name string) map[string]any {
	return cfg["fields"].(map[string]any)[name].(map[string]any)
}

func TestBuild(t *testing.T) {
	path := writeConfig(t, validConfig())
	writeNames(t, path)

	s, err := Load(path)
	require.NoError(t, err)

	fields, err := s.Build(BuildOptions{})
	require.NoError(t, err)
	require.Len(t, fields, 2)

	dob, name := fields[0], fields[1]
	assert.Equal(t, "date_of_birth", dob.Name())
	assert.Equal(t, fieldtype.TypeDate, dob.Type())
	assert.Equal(t, []string{"x", "slashes"}, dob.FeatureNames())
	assert.Equal(t, fieldtype.TypeHumanName, name.Type())
	require.Len(t, name.Finders(), 2)
	assert.Equal(t, finder.KindBoxPhrase, name.Finders()[1].Kind())

	doc := model.NewDocument("form.pdf", 1)
	box := doc.AddBox(0, model.NewBBoxFromCorners(0, 0, 612, 792), false)
	doc.AddLine(box, "Name: SMITH JOHN DOB: O1/15/2O3O Address: 1 Main St", model.NewBBoxFromCorners(50, 700, 550, 712), false)

	dates := dob.Candidates(doc)
	require.Len(t, dates, 1)
	// max_date pushes 2030 back a century
	assert.Equal(t, "1930-01-15", dates[0].Formatted)

	names := name.Candidates(doc)
	require.NotEmpty(t, names)
	// the dictionary puts JOHN first
	assert.Equal(t, "John Smith", names[0].Formatted)
	for _, c := range names {
		assert.NotContains(t, c.Match, "DOB")
		assert.NotContains(t, c.Match, "Address")
	}
}

func TestBuild_MissingFirstNames(t *testing.T) {
	s, err := Load(writeConfig(t, validConfig()))
	require.NoError(t, err)

	_, err = s.Build(BuildOptions{})
	assert.Error(t, err)
}

func TestBuild_DefaultMaxDateUsesClock(t *testing.T) {
	cfg := validConfig()
	delete(cfg, "max_date")
	delete(cfg, "first_names")
	s, err := Load(writeConfig(t, cfg))
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2010, time.June, 1, 0, 0, 0, 0, time.UTC) }
	fields, err := s.Build(BuildOptions{Now: now})
	require.NoError(t, err)

	v, ok := fields[0].Parse("01/15/2015")
	require.True(t, ok)
	assert.Equal(t, "1915-01-15", v.String())
}
