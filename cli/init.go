package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/kestrel-ml/kestrel/project"
)

type InitCmd struct {
	Dir string `help:"Directory to create the .kestrel config in." arg:"" optional:"" default:"."`
}

// Run interactively builds a .kestrel configuration file.
func (cmd *InitCmd) Run(ctx *kong.Context, globals *Globals) error {
	target := filepath.Join(cmd.Dir, ".kestrel")

	if _, err := os.Stat(target); err == nil {
		overwrite, err := promptYesNo(fmt.Sprintf("%s already exists. Overwrite?", target))
		if err != nil {
			return err
		}
		if !overwrite {
			printInfof(ctx.Stdout, "keeping existing %s", target)
			return nil
		}
	}

	var sourcePath string
	var extensions []string
	var packages []string

	extOptions := make([]huh.Option[string], 0, len(project.KnownExtensions))
	for _, ext := range project.KnownExtensions {
		extOptions = append(extOptions, huh.NewOption(ext, ext))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Source directory").
				Value(&sourcePath),
			huh.NewMultiSelect[string]().
				Title("Language extensions").
				Options(extOptions...).
				Value(&extensions),
			huh.NewMultiSelect[string]().
				Title("Packages").
				Options(
					huh.NewOption("stdio", "stdio"),
					huh.NewOption("math", "math"),
					huh.NewOption("str", "str"),
				).
				Value(&packages),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}

	cfg := project.Config{
		Extensions: extensions,
		Packages:   packages,
	}
	if sourcePath != "" {
		cfg.SourcePaths = []string{sourcePath}
	}

	if err := project.WriteConfig(target, cfg); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("wrote %s", target))
	return nil
}

// promptYesNo prompts the user with a yes/no question.
// Returns false by default if stdin is not a terminal.
func promptYesNo(question string) (bool, error) {
	if !isTerminal() {
		return false, nil
	}

	var confirm bool
	form := huh.NewConfirm().
		Title(question).
		WithButtonAlignment(lipgloss.Left).
		Value(&confirm)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to read response: %w", err)
	}
	return confirm, nil
}
