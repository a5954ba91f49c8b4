// Package wizard collects a starter run spec interactively.
package wizard

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/phonolab/sgraph/internal/features"
	"github.com/phonolab/sgraph/internal/models"
)

// Answers holds all fields collected during the interactive wizard.
type Answers struct {
	Name          string
	Description   string
	TranscriptDir string
	MetadataPath  string
	OutputPath    string
	Level         string
	Parallel      bool
	FeatureSets   []string
}

const specTemplate = `name: {{ .Name }}
{{- if .Description }}
description: {{ .Description }}
{{- end }}
transcript_dir: {{ .TranscriptDir }}
metadata: {{ .MetadataPath }}
output: {{ .OutputPath }}

config:
  level: {{ .Level }}
{{- if .Parallel }}
  parallel: true
  max_workers: 4
{{- end }}

features:
{{- range .FeatureSets }}
  - type: {{ . }}
{{- end }}
`

// Run runs an interactive huh form to collect a starter spec. If
// initialName is non-empty, it pre-populates the name field.
func Run(in io.Reader, out io.Writer, initialName string) (*Answers, error) {
	answers := &Answers{
		Name:        initialName,
		OutputPath:  "features.csv",
		Level:       string(models.LevelCall),
		FeatureSets: []string{string(features.TypeGraph)},
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Run name").
				Description("A short name for this extraction run").
				Placeholder("weekly-batch").
				Value(&answers.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Description("What is this run for? (optional)").
				Value(&answers.Description),
			huh.NewInput().
				Title("Transcript directory").
				Description("Directory with one subdirectory per call").
				Placeholder("data/transcripts").
				Value(&answers.TranscriptDir).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("transcript directory is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Metadata file").
				Description("CSV or JSON table of call scheduling info").
				Placeholder("data/calls.csv").
				Value(&answers.MetadataPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("metadata file is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Output file").
				Description("Where to write the feature table").
				Value(&answers.OutputPath),
			huh.NewSelect[string]().
				Title("Aggregation level").
				Options(
					huh.NewOption("segment", string(models.LevelSegment)),
					huh.NewOption("call", string(models.LevelCall)),
					huh.NewOption("day", string(models.LevelDay)),
					huh.NewOption("week", string(models.LevelWeek)),
					huh.NewOption("subject", string(models.LevelSubject)),
				).
				Value(&answers.Level),
			huh.NewMultiSelect[string]().
				Title("Feature sets").
				Options(
					huh.NewOption("speech graph", string(features.TypeGraph)),
					huh.NewOption("lexical diversity", string(features.TypeLexicalDiversity)),
					huh.NewOption("part of speech", string(features.TypePOS)),
					huh.NewOption("non-verbal", string(features.TypeNonVerbal)),
					huh.NewOption("verbosity", string(features.TypeVerbosity)),
				).
				Value(&answers.FeatureSets).
				Validate(func(selected []string) error {
					if len(selected) == 0 {
						return fmt.Errorf("pick at least one feature set")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Run groups in parallel?").
				Value(&answers.Parallel),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	answers.Name = strings.TrimSpace(answers.Name)
	answers.Description = strings.TrimSpace(answers.Description)
	answers.TranscriptDir = strings.TrimSpace(answers.TranscriptDir)
	answers.MetadataPath = strings.TrimSpace(answers.MetadataPath)
	answers.OutputPath = strings.TrimSpace(answers.OutputPath)
	return answers, nil
}

// GenerateSpecYAML renders a starter spec file from the answers.
func GenerateSpecYAML(answers *Answers) (string, error) {
	tmpl, err := template.New("spec").Parse(specTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, answers); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}
