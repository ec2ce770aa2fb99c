// Package report renders resolutions and lint results for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jaspreet-dot-casa/wpfinder/pkg/finder"
	"github.com/jaspreet-dot-casa/wpfinder/pkg/validation"
)

// Field is one named directory of a resolution.
type Field struct {
	Name  string // flag value, e.g. "web-root"
	Label string // display label
	Value string
}

// FieldNames lists the names accepted by Lookup, in display order.
var FieldNames = []string{
	"composer-root",
	"web-root",
	"vendor-dir",
	"plugins-dir",
	"mu-plugins-dir",
	"themes-dir",
	"dropins-dir",
}

// Fields returns the directories of res in display order.
func Fields(res finder.Resolution) []Field {
	return []Field{
		{Name: "composer-root", Label: "Composer root", Value: res.ComposerRoot},
		{Name: "web-root", Label: "Web root", Value: res.WebRoot},
		{Name: "vendor-dir", Label: "Vendor", Value: res.VendorDir},
		{Name: "plugins-dir", Label: "Plugins", Value: res.PluginsDir},
		{Name: "mu-plugins-dir", Label: "MU plugins", Value: res.MuPluginsDir},
		{Name: "themes-dir", Label: "Themes", Value: res.ThemesDir},
		{Name: "dropins-dir", Label: "Drop-ins", Value: res.DropinsDir},
	}
}

// Lookup returns the directory called name.
func Lookup(res finder.Resolution, name string) (string, error) {
	for _, f := range Fields(res) {
		if f.Name == name {
			return f.Value, nil
		}
	}
	return "", fmt.Errorf("unknown field %q (valid: %s)", name, strings.Join(FieldNames, ", "))
}

// Located pairs a start path with the outcome of searching from it.
type Located struct {
	Start      string             `json:"start"`
	Found      bool               `json:"found"`
	Resolution *finder.Resolution `json:"resolution,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// RenderText writes a human-readable listing of each search.
func RenderText(w io.Writer, results []Located) error {
	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}

		if !r.Found {
			if _, err := fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("not found"), r.Start); err != nil {
				return err
			}
			continue
		}

		title := "WordPress installation"
		if r.Resolution.Convention != "" {
			title += fmt.Sprintf(" (%s)", r.Resolution.Convention)
		}
		if _, err := fmt.Fprintln(w, TitleStyle.Render(title)); err != nil {
			return err
		}

		for _, f := range Fields(*r.Resolution) {
			if _, err := fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render(f.Label), ValueStyle.Render(f.Value)); err != nil {
				return err
			}
		}
	}
	return nil
}

// RenderJSON writes v as indented JSON.
func RenderJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderIssues writes lint issues in "[SEVERITY] file: message (field)" form.
func RenderIssues(w io.Writer, result *validation.Result) error {
	for _, issue := range result.Issues {
		prefix := WarningStyle.Render("[WARNING]")
		if issue.Severity == validation.SeverityError {
			prefix = ErrorStyle.Render("[ERROR]")
		}

		var err error
		if issue.Field != "" {
			_, err = fmt.Fprintf(w, "%s %s: %s (%s)\n", prefix, issue.File, issue.Message, issue.Field)
		} else {
			_, err = fmt.Fprintf(w, "%s %s: %s\n", prefix, issue.File, issue.Message)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
