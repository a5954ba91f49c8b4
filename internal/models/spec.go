package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunSpec is a complete extraction run specification, loaded from YAML.
type RunSpec struct {
	Name          string            `yaml:"name"`
	Description   string            `yaml:"description,omitempty"`
	TranscriptDir string            `yaml:"transcript_dir"`
	MetadataPath  string            `yaml:"metadata"`
	OutputPath    string            `yaml:"output"`
	Config        RunConfig         `yaml:"config"`
	Extractors    []ExtractorConfig `yaml:"features"`
}

// RunConfig controls grouping and execution behavior.
type RunConfig struct {
	Level           string `yaml:"level"`
	Concurrent      bool   `yaml:"parallel,omitempty"`
	Workers         int    `yaml:"max_workers,omitempty"`
	RemoveStopwords bool   `yaml:"remove_stopwords,omitempty"`
}

// ExtractorConfig selects one feature extractor plus its parameters. The
// Parameters map is decoded into the extractor's own argument struct at
// construction time.
type ExtractorConfig struct {
	Type       string         `yaml:"type"`
	Identifier string         `yaml:"name,omitempty"`
	Parameters map[string]any `yaml:"config,omitempty"`
}

// LoadRunSpec loads and validates a spec from a YAML file.
func LoadRunSpec(path string) (*RunSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var spec RunSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return &spec, nil
}

// Validate checks that the spec is usable before any work starts.
func (s *RunSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("spec must have a name")
	}
	if s.TranscriptDir == "" {
		return fmt.Errorf("spec must set transcript_dir")
	}
	if s.MetadataPath == "" {
		return fmt.Errorf("spec must set metadata")
	}
	if _, err := ParseLevel(s.Config.Level); err != nil {
		return err
	}
	if s.Config.Workers < 0 {
		return fmt.Errorf("max_workers must be >= 0, got %d", s.Config.Workers)
	}
	if len(s.Extractors) == 0 {
		return fmt.Errorf("spec must list at least one feature set")
	}
	seen := map[string]bool{}
	for i, ec := range s.Extractors {
		if ec.Type == "" {
			return fmt.Errorf("features[%d] must have a type", i)
		}
		name := ec.Identifier
		if name == "" {
			name = ec.Type
		}
		if seen[name] {
			return fmt.Errorf("duplicate feature set name %q", name)
		}
		seen[name] = true
	}
	return nil
}
