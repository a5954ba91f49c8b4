package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phonolab/sgraph/internal/wizard"
)

var (
	initOutput string
	initForce  bool
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [name]",
		Short: "Interactively create a starter spec file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initCommandE,
	}

	cmd.Flags().StringVarP(&initOutput, "output", "o", "", "Spec file to write (default: <name>.yaml)")
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing spec file")

	return cmd
}

func initCommandE(cmd *cobra.Command, args []string) error {
	initialName := ""
	if len(args) > 0 {
		initialName = args[0]
	}

	answers, err := wizard.Run(cmd.InOrStdin(), cmd.OutOrStdout(), initialName)
	if err != nil {
		return err
	}

	content, err := wizard.GenerateSpecYAML(answers)
	if err != nil {
		return err
	}

	path := initOutput
	if path == "" {
		path = answers.Name + ".yaml"
	}
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing spec: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
