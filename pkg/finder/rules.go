package finder

import (
	"regexp"
	"strings"

	"github.com/jaspreet-dot-casa/wpfinder/pkg/manifest"
)

// Installer type tags recognised in extra.installer-paths and extra.custom-installer.
const (
	TagCore     = "type:wordpress-core"
	TagPlugin   = "type:wordpress-plugin"
	TagMuPlugin = "type:wordpress-muplugin"
	TagTheme    = "type:wordpress-theme"
	TagDropin   = "type:wordpress-dropin"
)

// ContentTags lists the content type tags in scan order.
var ContentTags = []string{TagPlugin, TagMuPlugin, TagTheme, TagDropin}

// InstallerKeys lists the extra.* mappings scanned for content directories, in order.
var InstallerKeys = []string{"installer-paths", "custom-installer"}

// placeholderRe matches a templated segment such as "{$name}" and the
// whitespace before it.
var placeholderRe = regexp.MustCompile(`\s*\{[^}]*\}`)

// SanitizeInstallerPath removes placeholder tokens and trailing slashes from an
// installer path declaration.
func SanitizeInstallerPath(path string) string {
	path = strings.TrimRight(path, "/")
	path = placeholderRe.ReplaceAllString(path, "")
	path = strings.TrimSpace(path)
	return strings.TrimRight(path, "/")
}

func joinPath(base, rel string) string {
	return base + "/" + strings.TrimRight(rel, "/")
}

// WebRootOf classifies doc by the first matching convention and returns the
// web root path relative to the manifest directory.
func WebRootOf(doc *manifest.Node) (string, Convention, bool) {
	if dir, ok := doc.String("extra", "wordpress-install-dir"); ok {
		return dir, ConventionInstallDir, true
	}

	if dir, ok := doc.String("extra", "webroot-dir"); ok {
		return dir, ConventionWebrootDir, true
	}

	var (
		webRoot string
		found   bool
	)
	// Last core entry wins.
	for _, entry := range doc.Lookup("extra", "custom-installer").Entries() {
		if entry.Value.ContainsString(TagCore) {
			webRoot = entry.Key
			found = true
		}
	}
	if found {
		return webRoot, ConventionCustomInstaller, true
	}

	return "", "", false
}

// Resolve derives the installation layout of dir from its parsed manifest.
// The boolean is false unless every directory could be set; in that case the
// returned Resolution is the zero value.
func Resolve(dir string, doc *manifest.Node) (Resolution, bool) {
	if dir == "" || !doc.IsObject() {
		return Resolution{}, false
	}

	var res Resolution

	if webRoot, convention, ok := WebRootOf(doc); ok {
		res.ComposerRoot = dir
		res.WebRoot = joinPath(dir, webRoot)
		res.Convention = convention
	}

	if res.ComposerRoot != "" {
		if vendor, ok := doc.String("config", "vendor-dir"); ok {
			res.VendorDir = joinPath(res.ComposerRoot, vendor)
		} else {
			res.VendorDir = res.ComposerRoot + "/vendor"
		}
	}

	if res.WebRoot != "" {
		targets := map[string]*string{
			TagPlugin:   &res.PluginsDir,
			TagMuPlugin: &res.MuPluginsDir,
			TagTheme:    &res.ThemesDir,
			TagDropin:   &res.DropinsDir,
		}

		for _, key := range InstallerKeys {
			for _, entry := range doc.Lookup("extra", key).Entries() {
				for _, tag := range ContentTags {
					if entry.Value.ContainsString(tag) {
						*targets[tag] = joinPath(dir, SanitizeInstallerPath(entry.Key))
					}
				}
			}
		}

		if res.PluginsDir == "" {
			res.PluginsDir = res.WebRoot + "/wp-content/plugins"
		}
		if res.MuPluginsDir == "" {
			res.MuPluginsDir = res.WebRoot + "/wp-content/mu-plugins"
		}
		if res.ThemesDir == "" {
			res.ThemesDir = res.WebRoot + "/wp-content/themes"
		}
		if res.DropinsDir == "" {
			res.DropinsDir = res.WebRoot + "/wp-content"
		}
	}

	if !res.Complete() {
		return Resolution{}, false
	}

	return res, true
}
