// Package finder locates the root of a Composer-managed WordPress installation
// and derives its web root, vendor directory and content directories from the
// manifest found there.
package finder

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaspreet-dot-casa/wpfinder/pkg/manifest"
	"github.com/jaspreet-dot-casa/wpfinder/pkg/project"
)

// DefaultManifestName is used when no manifest name is configured.
const DefaultManifestName = "composer.json"

// ErrNotFound is returned by Find when no ancestor holds a valid manifest.
var ErrNotFound = errors.New("no WordPress installation found")

// LinkStrategy controls how symbolic links are treated during a walk.
type LinkStrategy int

const (
	// ResolveLinks replaces every symlinked directory with its target before testing it.
	ResolveLinks LinkStrategy = iota
	// KeepLinks tests directories exactly as the walk reaches them.
	KeepLinks
)

// String returns the strategy name.
func (s LinkStrategy) String() string {
	switch s {
	case ResolveLinks:
		return "resolve-links"
	case KeepLinks:
		return "keep-links"
	default:
		return "unknown"
	}
}

// passes is the order in which walks are attempted; the first success wins.
var passes = []LinkStrategy{ResolveLinks, KeepLinks}

// Locator searches upward from a start path for a WordPress installation root.
// A Locator holds the result of its last search and must not be shared
// between goroutines; use one Locator per concurrent search.
type Locator struct {
	manifestName string
	reader       manifest.Reader
	logger       *log.Logger
	result       Resolution
}

// NewLocator creates a Locator that looks for manifestName in each candidate
// directory. A blank name selects DefaultManifestName.
func NewLocator(manifestName string) *Locator {
	return NewLocatorWithReader(manifestName, manifest.FileReader{})
}

// NewLocatorWithReader creates a Locator with a custom manifest reader.
func NewLocatorWithReader(manifestName string, reader manifest.Reader) *Locator {
	name := strings.TrimSpace(manifestName)
	if name == "" {
		name = DefaultManifestName
	}
	if reader == nil {
		reader = manifest.FileReader{}
	}

	return &Locator{
		manifestName: name,
		reader:       reader,
		logger:       log.New(io.Discard, "", 0),
	}
}

// SetLogger routes per-candidate diagnostics to logger.
func (l *Locator) SetLogger(logger *log.Logger) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	l.logger = logger
}

// ManifestName returns the manifest file name searched for.
func (l *Locator) ManifestName() string {
	return l.manifestName
}

// Locate searches from startPath toward the filesystem root and reports
// whether an installation root was found. The previous result is always
// discarded first, so after a failed search every accessor returns "".
func (l *Locator) Locate(startPath string) bool {
	l.result = Resolution{}

	for _, strategy := range passes {
		if res, ok := l.search(startPath, strategy); ok {
			l.result = res
			return true
		}
	}

	l.logger.Printf("no installation root found from %s", startPath)
	return false
}

// Find is Locate returning the Resolution, or ErrNotFound.
func (l *Locator) Find(startPath string) (Resolution, error) {
	if !l.Locate(startPath) {
		return Resolution{}, fmt.Errorf("%w from %s", ErrNotFound, startPath)
	}
	return l.result, nil
}

// Result returns the last resolution; the zero value when unresolved.
func (l *Locator) Result() Resolution { return l.result }

// WebRoot returns the public web directory holding WordPress core.
func (l *Locator) WebRoot() string { return l.result.WebRoot }

// ComposerRoot returns the directory holding the manifest.
func (l *Locator) ComposerRoot() string { return l.result.ComposerRoot }

// VendorDir returns the Composer vendor directory.
func (l *Locator) VendorDir() string { return l.result.VendorDir }

// PluginsDir returns the plugins directory.
func (l *Locator) PluginsDir() string { return l.result.PluginsDir }

// MuPluginsDir returns the must-use plugins directory.
func (l *Locator) MuPluginsDir() string { return l.result.MuPluginsDir }

// ThemesDir returns the themes directory.
func (l *Locator) ThemesDir() string { return l.result.ThemesDir }

// DropinsDir returns the drop-ins directory.
func (l *Locator) DropinsDir() string { return l.result.DropinsDir }

// search runs one walk with the given link strategy.
func (l *Locator) search(start string, strategy LinkStrategy) (Resolution, bool) {
	normalize := func(dir string) string { return dir }
	if strategy == ResolveLinks {
		normalize = l.resolveLink
	}

	l.logger.Printf("searching from %s (%s)", start, strategy)

	var found Resolution
	_, ok := project.Walk(start, normalize, func(dir string) bool {
		res, valid := l.evaluate(dir)
		if valid {
			found = res
		}
		return valid
	})

	return found, ok
}

// resolveLink returns the target of path when path itself is a symbolic link.
func (l *Locator) resolveLink(path string) string {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return path
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		l.logger.Printf("cannot resolve link %s: %v", path, err)
		return path
	}

	if abs, err := filepath.Abs(resolved); err == nil {
		resolved = abs
	}

	return resolved
}

// evaluate tests a single candidate directory.
func (l *Locator) evaluate(dir string) (Resolution, bool) {
	if dir == "" {
		return Resolution{}, false
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return Resolution{}, false
	}

	manifestPath := filepath.Join(dir, l.manifestName)
	doc, err := l.reader.Read(manifestPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			l.logger.Printf("skipping %s: %v", dir, err)
		}
		return Resolution{}, false
	}

	res, ok := Resolve(dir, doc)
	if !ok {
		l.logger.Printf("skipping %s: %s declares no WordPress layout", dir, l.manifestName)
		return Resolution{}, false
	}

	res.Manifest = manifestPath
	l.logger.Printf("found installation root %s (%s)", dir, res.Convention)
	return res, true
}
