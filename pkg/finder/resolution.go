package finder

// Convention names the manifest key that identified the web root.
type Convention string

const (
	// ConventionInstallDir is johnpbloch/wordpress-core-installer's extra.wordpress-install-dir.
	ConventionInstallDir Convention = "wordpress-install-dir"
	// ConventionWebrootDir is fancyguy/webroot-installer's extra.webroot-dir.
	ConventionWebrootDir Convention = "webroot-dir"
	// ConventionCustomInstaller is oomphinc/composer-installers-extender style extra.custom-installer.
	ConventionCustomInstaller Convention = "custom-installer"
)

// Resolution is the set of directories derived from a WordPress installation
// root. The zero value is the unresolved state.
type Resolution struct {
	ComposerRoot string `json:"composer_root"`
	WebRoot      string `json:"web_root"`
	VendorDir    string `json:"vendor_dir"`
	PluginsDir   string `json:"plugins_dir"`
	MuPluginsDir string `json:"mu_plugins_dir"`
	ThemesDir    string `json:"themes_dir"`
	DropinsDir   string `json:"dropins_dir"`

	// Informational; not part of completeness.
	Manifest   string     `json:"manifest,omitempty"`
	Convention Convention `json:"convention,omitempty"`
}

// Complete reports whether every directory is set.
func (r Resolution) Complete() bool {
	return r.ComposerRoot != "" &&
		r.WebRoot != "" &&
		r.VendorDir != "" &&
		r.PluginsDir != "" &&
		r.MuPluginsDir != "" &&
		r.ThemesDir != "" &&
		r.DropinsDir != ""
}

// IsZero reports whether r is the unresolved state.
func (r Resolution) IsZero() bool {
	return r == Resolution{}
}
