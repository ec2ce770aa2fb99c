// Package main provides the wpfinder CLI for locating Composer-managed WordPress installations.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/wpfinder/pkg/globalconfig"
)

// version is set via -ldflags during build
var version = "dev"

func main() {
	rootCmd := newRootCmd()

	// Cobra handles error printing
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	manifestName string
	envFile      string
	verbose      bool
}

// environment is everything a subcommand needs after flags, config file and
// process environment have been combined.
type environment struct {
	cfg          *globalconfig.Config
	manifestName string
	logger       *log.Logger
}

// newRootCmd creates the root command for wpfinder
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "wpfinder",
		Short: "Locate Composer-managed WordPress installations",
		Long: `wpfinder walks up from a directory until it finds a Composer manifest that
declares a WordPress layout, then prints the derived directories.

Recognised layouts:
  - extra.wordpress-install-dir  (johnpbloch/wordpress-core-installer)
  - extra.webroot-dir            (fancyguy/webroot-installer)
  - extra.custom-installer with a type:wordpress-core entry

The manifest name defaults to composer.json and can be changed with --manifest,
the COMPOSER environment variable, or the config file.`,
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.manifestName, "manifest", "m", "", "Manifest file name (overrides COMPOSER)")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Dotenv file to read COMPOSER from")
	rootCmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Log every candidate directory to stderr")

	rootCmd.AddCommand(
		newLocateCmd(opts),
		newLintCmd(opts),
		newConfigCmd(),
	)

	return rootCmd
}

// load combines the config file, flags and process environment.
func (o *rootOptions) load(cmd *cobra.Command) (*environment, error) {
	cfg, err := globalconfig.LoadOrCreate()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if o.envFile != "" {
		cfg.EnvFile = o.envFile
	}

	name, err := cfg.ResolveManifestName(o.manifestName, os.Getenv(globalconfig.EnvManifestName))
	if err != nil {
		return nil, err
	}

	logger := log.New(io.Discard, "", 0)
	if o.verbose {
		logger = log.New(cmd.ErrOrStderr(), "wpfinder: ", 0)
	}

	return &environment{cfg: cfg, manifestName: name, logger: logger}, nil
}

// startPaths returns args as absolute paths, or the working directory when empty.
func startPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		return []string{cwd}, nil
	}

	paths := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", arg, err)
		}
		paths = append(paths, abs)
	}
	return paths, nil
}
