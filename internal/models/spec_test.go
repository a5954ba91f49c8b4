package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRunSpec_YAMLRoundTrip(t *testing.T) {
	yamlContent := `
name: weekly-graph
description: weekly graph features
transcript_dir: ./transcripts
metadata: ./metadata.csv
output: features.csv
config:
  level: week
  parallel: true
  max_workers: 8
  remove_stopwords: true
features:
  - type: graph
    config:
      remove_stopwords: true
  - type: lexical_diversity
    name: lexdiv
    config:
      windows: [10, 25, 50]
`
	var spec RunSpec
	require.NoError(t, yaml.Unmarshal([]byte(yamlContent), &spec))
	require.NoError(t, spec.Validate())

	assert.Equal(t, "weekly-graph", spec.Name)
	assert.Equal(t, "week", spec.Config.Level)
	assert.True(t, spec.Config.Concurrent)
	assert.Equal(t, 8, spec.Config.Workers)
	require.Len(t, spec.Extractors, 2)
	assert.Equal(t, "graph", spec.Extractors[0].Type)
	assert.Equal(t, "lexdiv", spec.Extractors[1].Identifier)
	assert.Equal(t, []any{10, 25, 50}, spec.Extractors[1].Parameters["windows"])
}

func TestRunSpec_Validate(t *testing.T) {
	valid := func() RunSpec {
		return RunSpec{
			Name:          "run",
			TranscriptDir: "t",
			MetadataPath:  "m",
			Config:        RunConfig{Level: "call"},
			Extractors:    []ExtractorConfig{{Type: "graph"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*RunSpec)
		wantErr string
	}{
		{"valid", func(s *RunSpec) {}, ""},
		{"missing name", func(s *RunSpec) { s.Name = "" }, "must have a name"},
		{"missing transcript dir", func(s *RunSpec) { s.TranscriptDir = "" }, "transcript_dir"},
		{"missing metadata", func(s *RunSpec) { s.MetadataPath = "" }, "metadata"},
		{"bad level", func(s *RunSpec) { s.Config.Level = "month" }, "invalid level"},
		{"negative workers", func(s *RunSpec) { s.Config.Workers = -1 }, "max_workers"},
		{"no features", func(s *RunSpec) { s.Extractors = nil }, "at least one feature set"},
		{"untyped feature", func(s *RunSpec) { s.Extractors = []ExtractorConfig{{}} }, "must have a type"},
		{
			"duplicate names",
			func(s *RunSpec) {
				s.Extractors = []ExtractorConfig{{Type: "graph"}, {Type: "graph"}}
			},
			"duplicate feature set name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := valid()
			tt.mutate(&spec)
			err := spec.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadRunSpec_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	content := []byte(`
name: call-run
transcript_dir: ./t
metadata: ./m.csv
config:
  level: call
features:
  - type: graph
`)
	require.NoError(t, os.WriteFile(path, content, 0o644))

	spec, err := LoadRunSpec(path)
	require.NoError(t, err)
	assert.Equal(t, "call-run", spec.Name)

	_, err = LoadRunSpec(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParseLevelAndKeyFields(t *testing.T) {
	tests := []struct {
		in     string
		want   Level
		fields []string
	}{
		{"segment", LevelSegment, []string{"call_id", "segment_id"}},
		{"call", LevelCall, []string{"call_id"}},
		{"day", LevelDay, []string{"subject_id", "week", "day"}},
		{"Week", LevelWeek, []string{"subject_id", "week"}},
		{" subject ", LevelSubject, []string{"subject_id"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			lvl, err := ParseLevel(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lvl)
			assert.Equal(t, tt.fields, lvl.KeyFields())
		})
	}

	_, err := ParseLevel("hour")
	assert.Error(t, err)
}

func TestParseSegmentSpan(t *testing.T) {
	start, end, err := ParseSegmentSpan("subj1_call9_120_340")
	require.NoError(t, err)
	assert.Equal(t, 120, start)
	assert.Equal(t, 340, end)

	_, _, err = ParseSegmentSpan("noidhere")
	assert.Error(t, err)

	_, _, err = ParseSegmentSpan("call_abc_def")
	assert.Error(t, err)
}

func TestRequireSameNames(t *testing.T) {
	a := FeatureVector{"x": 1, "y": 2}
	b := FeatureVector{"y": 3, "x": 4}
	assert.NoError(t, RequireSameNames(a, b))

	c := FeatureVector{"x": 1}
	assert.Error(t, RequireSameNames(a, c))

	d := FeatureVector{"x": 1, "z": 2}
	assert.Error(t, RequireSameNames(a, d))
}
