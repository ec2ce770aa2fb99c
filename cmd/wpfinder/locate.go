package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/wpfinder/pkg/finder"
	"github.com/jaspreet-dot-casa/wpfinder/pkg/globalconfig"
	"github.com/jaspreet-dot-casa/wpfinder/pkg/manifest"
	"github.com/jaspreet-dot-casa/wpfinder/pkg/report"
)

func newLocateCmd(opts *rootOptions) *cobra.Command {
	var jsonOut bool
	var field string

	cmd := &cobra.Command{
		Use:   "locate [path...]",
		Short: "Find the installation root and its directories",
		Long: `Search upward from each path (default: the current directory) for a manifest
declaring a WordPress layout and print the resolved directories.

Examples:
  wpfinder locate                          # Search from the current directory
  wpfinder locate --field web-root         # Print only the web root
  wpfinder locate --json site-a site-b     # Several searches as JSON`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLocate(cmd, opts, args, jsonOut, field)
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	cmd.Flags().StringVarP(&field, "field", "f", "", "Print a single directory (composer-root, web-root, vendor-dir, plugins-dir, mu-plugins-dir, themes-dir, dropins-dir)")

	return cmd
}

func runLocate(cmd *cobra.Command, opts *rootOptions, args []string, jsonOut bool, field string) error {
	if field != "" {
		if _, err := report.Lookup(finder.Resolution{}, field); err != nil {
			return err
		}
	}

	env, err := opts.load(cmd)
	if err != nil {
		return err
	}

	paths, err := startPaths(args)
	if err != nil {
		return err
	}

	reader, err := manifest.NewCachedReader(manifest.FileReader{}, env.cfg.CacheSize)
	if err != nil {
		return err
	}

	results := locateAll(paths, env, reader)

	out := cmd.OutOrStdout()
	switch {
	case field != "":
		for _, r := range results {
			if !r.Found {
				continue
			}
			value, err := report.Lookup(*r.Resolution, field)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, value)
		}
	case jsonOut || env.cfg.Output == globalconfig.OutputJSON:
		if err := report.RenderJSON(out, results); err != nil {
			return err
		}
	default:
		if err := report.RenderText(out, results); err != nil {
			return err
		}
	}

	for _, r := range results {
		if !r.Found {
			return fmt.Errorf("no WordPress installation found from %s (manifest %s)", r.Start, env.manifestName)
		}
	}

	return nil
}

// locateAll searches from every path concurrently, one Locator per path.
// Results keep the order of paths.
func locateAll(paths []string, env *environment, reader manifest.Reader) []report.Located {
	results := make([]report.Located, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, start string) {
			defer wg.Done()

			locator := finder.NewLocatorWithReader(env.manifestName, reader)
			locator.SetLogger(env.logger)

			results[idx] = report.Located{Start: start}
			res, err := locator.Find(start)
			if err != nil {
				results[idx].Error = err.Error()
				return
			}
			results[idx].Found = true
			results[idx].Resolution = &res
		}(i, path)
	}

	wg.Wait()
	return results
}
