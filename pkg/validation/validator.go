// Package validation lints Composer manifests that declare a WordPress layout.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaspreet-dot-casa/wpfinder/pkg/finder"
	"github.com/jaspreet-dot-casa/wpfinder/pkg/manifest"
)

// Severity represents the severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a validation issue found in a manifest.
type Issue struct {
	File     string   `json:"file"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result holds all validation results.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if there are any error-level issues.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

// Validator lints the manifest of an installation root.
type Validator struct {
	ManifestName string
	reader       manifest.Reader
}

// NewValidator creates a new Validator for manifests called manifestName.
func NewValidator(manifestName string) *Validator {
	if strings.TrimSpace(manifestName) == "" {
		manifestName = finder.DefaultManifestName
	}
	return &Validator{ManifestName: strings.TrimSpace(manifestName), reader: manifest.FileReader{}}
}

// ValidateManifest lints the manifest in dir and returns the result.
func (v *Validator) ValidateManifest(dir string) *Result {
	path := filepath.Join(dir, v.ManifestName)
	result := &Result{Issues: []Issue{}}

	doc, err := v.reader.Read(path)
	if err != nil {
		msg := fmt.Sprintf("failed to parse manifest: %v", err)
		if errors.Is(err, os.ErrNotExist) {
			msg = v.ManifestName + " file not found"
		}
		result.Issues = append(result.Issues, Issue{
			File:     path,
			Message:  msg,
			Severity: SeverityError,
		})
		return result
	}

	l := &linter{file: path, doc: doc}
	l.checkConventions()
	l.checkVendorDir()
	l.checkInstallerPaths()

	result.Issues = append(result.Issues, l.issues...)
	return result
}

type linter struct {
	file   string
	doc    *manifest.Node
	issues []Issue
}

func (l *linter) add(severity Severity, field, format string, args ...interface{}) {
	l.issues = append(l.issues, Issue{
		File:     l.file,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
		Severity: severity,
	})
}

// checkConventions reports web root declarations that are malformed, missing
// or shadowed by an earlier convention.
func (l *linter) checkConventions() {
	for _, key := range []string{"wordpress-install-dir", "webroot-dir"} {
		if v := l.doc.Lookup("extra", key); v != nil && v.Kind != manifest.KindString {
			l.add(SeverityError, "extra."+key, "must be a string, got %s", v.Kind)
		}
	}

	custom := l.doc.Lookup("extra", "custom-installer")
	if custom != nil && !custom.IsObject() {
		l.add(SeverityError, "extra.custom-installer", "must be an object mapping paths to type lists, got %s", custom.Kind)
	}

	var coreEntries []string
	for _, entry := range custom.Entries() {
		if entry.Value.ContainsString(finder.TagCore) {
			coreEntries = append(coreEntries, entry.Key)
		}
	}

	_, convention, ok := finder.WebRootOf(l.doc)
	if !ok {
		l.add(SeverityError, "extra", "no WordPress layout declared: set extra.wordpress-install-dir, extra.webroot-dir or a %s entry in extra.custom-installer", finder.TagCore)
		return
	}

	switch convention {
	case finder.ConventionInstallDir:
		if l.doc.Has("extra", "webroot-dir") {
			l.add(SeverityWarning, "extra.webroot-dir", "ignored because extra.wordpress-install-dir is set")
		}
		if len(coreEntries) > 0 {
			l.add(SeverityWarning, "extra.custom-installer", "%s entry ignored because extra.wordpress-install-dir is set", finder.TagCore)
		}
	case finder.ConventionWebrootDir:
		if len(coreEntries) > 0 {
			l.add(SeverityWarning, "extra.custom-installer", "%s entry ignored because extra.webroot-dir is set", finder.TagCore)
		}
	case finder.ConventionCustomInstaller:
		if len(coreEntries) > 1 {
			l.add(SeverityWarning, "extra.custom-installer", "%d paths declare %s; the last (%q) is used", len(coreEntries), finder.TagCore, coreEntries[len(coreEntries)-1])
		}
	}
}

func (l *linter) checkVendorDir() {
	if v := l.doc.Lookup("config", "vendor-dir"); v != nil && v.Kind != manifest.KindString {
		l.add(SeverityWarning, "config.vendor-dir", "must be a string, got %s; the default vendor directory is used", v.Kind)
	}
}

// checkInstallerPaths reports malformed installer declarations and content
// types claimed by more than one path.
func (l *linter) checkInstallerPaths() {
	known := map[string]bool{finder.TagCore: true}
	for _, tag := range finder.ContentTags {
		known[tag] = true
	}

	declared := make(map[string][]string)

	for _, key := range finder.InstallerKeys {
		field := "extra." + key
		mapping := l.doc.Lookup("extra", key)
		if mapping == nil {
			continue
		}
		if !mapping.IsObject() {
			// custom-installer is already reported by checkConventions.
			if key != "custom-installer" {
				l.add(SeverityWarning, field, "must be an object mapping paths to type lists, got %s", mapping.Kind)
			}
			continue
		}

		for _, entry := range mapping.Entries() {
			entryField := fmt.Sprintf("%s[%q]", field, entry.Key)
			if !entry.Value.IsArray() {
				l.add(SeverityWarning, entryField, "type list must be an array, got %s", entry.Value.Kind)
				continue
			}

			for _, tag := range entry.Value.Strings() {
				if strings.HasPrefix(tag, "type:wordpress-") && !known[tag] {
					l.add(SeverityWarning, entryField, "unknown installer type %q", tag)
				}
			}

			for _, tag := range finder.ContentTags {
				if !entry.Value.ContainsString(tag) {
					continue
				}
				declared[tag] = append(declared[tag], entry.Key)
				if finder.SanitizeInstallerPath(entry.Key) == "" {
					l.add(SeverityWarning, entryField, "%s path resolves to the project root", tag)
				}
			}
		}
	}

	for _, tag := range finder.ContentTags {
		if paths := declared[tag]; len(paths) > 1 {
			l.add(SeverityWarning, "extra", "%d paths declare %s; the last (%q) is used", len(paths), tag, paths[len(paths)-1])
		}
	}
}
