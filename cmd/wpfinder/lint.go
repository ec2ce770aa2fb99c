package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/wpfinder/pkg/finder"
	"github.com/jaspreet-dot-casa/wpfinder/pkg/report"
	"github.com/jaspreet-dot-casa/wpfinder/pkg/validation"
)

func newLintCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [path]",
		Short: "Check the manifest's WordPress layout declarations",
		Long: `Lint the manifest of the installation root found from path (default: the
current directory). When no root is found, the manifest in path itself is linted
so the reason it was rejected is reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, opts, args)
		},
	}
}

// runLint validates the manifest of the located root.
func runLint(cmd *cobra.Command, opts *rootOptions, args []string) error {
	env, err := opts.load(cmd)
	if err != nil {
		return err
	}

	paths, err := startPaths(args)
	if err != nil {
		return err
	}
	dir := paths[0]

	locator := finder.NewLocator(env.manifestName)
	locator.SetLogger(env.logger)
	if locator.Locate(dir) {
		dir = locator.ComposerRoot()
	}

	validator := validation.NewValidator(env.manifestName)
	result := validator.ValidateManifest(dir)

	out := cmd.OutOrStdout()
	if err := report.RenderIssues(out, result); err != nil {
		return err
	}

	if result.HasErrors() {
		return fmt.Errorf("validation failed with %d error(s)", result.ErrorCount())
	}

	if len(result.Issues) == 0 {
		fmt.Fprintln(out, report.SuccessStyle.Render("Manifest is valid."))
	} else {
		fmt.Fprintf(out, "\nValidation passed with %d warning(s).\n", result.WarningCount())
	}

	return nil
}
