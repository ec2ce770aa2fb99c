package finder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/wpfinder/pkg/manifest"
)

func parse(t *testing.T, content string) *manifest.Node {
	t.Helper()
	doc, err := manifest.Parse([]byte(content))
	require.NoError(t, err)
	return doc
}

func TestSanitizeInstallerPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "web/app/plugins/{$name}/", want: "web/app/plugins"},
		{in: "web/app/plugins/{name}", want: "web/app/plugins"},
		{in: "web/app/mu-plugins/", want: "web/app/mu-plugins"},
		{in: "content/themes/ {$vendor}/{$name}", want: "content/themes"},
		{in: "  wp-content  ", want: "wp-content"},
		{in: "{$name}", want: ""},
		{in: "plain", want: "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeInstallerPath(tt.in))
		})
	}
}

func TestWebRootOf(t *testing.T) {
	tests := []struct {
		name           string
		content        string
		wantDir        string
		wantConvention Convention
		wantOK         bool
	}{
		{
			name:           "install dir",
			content:        `{"extra": {"wordpress-install-dir": "wp"}}`,
			wantDir:        "wp",
			wantConvention: ConventionInstallDir,
			wantOK:         true,
		},
		{
			name:           "webroot dir",
			content:        `{"extra": {"webroot-dir": "public"}}`,
			wantDir:        "public",
			wantConvention: ConventionWebrootDir,
			wantOK:         true,
		},
		{
			name:           "install dir wins over later conventions",
			content:        `{"extra": {"custom-installer": {"core": ["type:wordpress-core"]}, "webroot-dir": "public", "wordpress-install-dir": "wp"}}`,
			wantDir:        "wp",
			wantConvention: ConventionInstallDir,
			wantOK:         true,
		},
		{
			name:           "webroot dir wins over custom installer",
			content:        `{"extra": {"custom-installer": {"core": ["type:wordpress-core"]}, "webroot-dir": "public"}}`,
			wantDir:        "public",
			wantConvention: ConventionWebrootDir,
			wantOK:         true,
		},
		{
			name:           "custom installer last core entry wins",
			content:        `{"extra": {"custom-installer": {"first": ["type:wordpress-core"], "plugins": ["type:wordpress-plugin"], "second/": ["type:wordpress-core"]}}}`,
			wantDir:        "second/",
			wantConvention: ConventionCustomInstaller,
			wantOK:         true,
		},
		{
			name:    "non-string install dir is ignored",
			content: `{"extra": {"wordpress-install-dir": 5}}`,
		},
		{
			name:    "custom installer without core",
			content: `{"extra": {"custom-installer": {"plugins": ["type:wordpress-plugin"]}}}`,
		},
		{
			name:    "no extra",
			content: `{"name": "acme/site"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, convention, ok := WebRootOf(parse(t, tt.content))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDir, dir)
			assert.Equal(t, tt.wantConvention, convention)
		})
	}
}

func TestResolve_Defaults(t *testing.T) {
	res, ok := Resolve("/srv/site", parse(t, `{"extra": {"wordpress-install-dir": "web/"}}`))
	require.True(t, ok)

	assert.Equal(t, Resolution{
		ComposerRoot: "/srv/site",
		WebRoot:      "/srv/site/web",
		VendorDir:    "/srv/site/vendor",
		PluginsDir:   "/srv/site/web/wp-content/plugins",
		MuPluginsDir: "/srv/site/web/wp-content/mu-plugins",
		ThemesDir:    "/srv/site/web/wp-content/themes",
		DropinsDir:   "/srv/site/web/wp-content",
		Convention:   ConventionInstallDir,
	}, res)
}

func TestResolve_VendorDir(t *testing.T) {
	res, ok := Resolve("/srv/site", parse(t, `{"extra": {"webroot-dir": "web"}, "config": {"vendor-dir": "lib/"}}`))
	require.True(t, ok)
	assert.Equal(t, "/srv/site/lib", res.VendorDir)

	res, ok = Resolve("/srv/site", parse(t, `{"extra": {"webroot-dir": "web"}, "config": {"vendor-dir": false}}`))
	require.True(t, ok)
	assert.Equal(t, "/srv/site/vendor", res.VendorDir)
}

func TestResolve_InstallerPaths(t *testing.T) {
	doc := parse(t, `{
		"extra": {
			"wordpress-install-dir": "web/wp",
			"installer-paths": {
				"web/app/mu-plugins/{$name}/": ["type:wordpress-muplugin"],
				"web/app/plugins/{$name}/": ["type:wordpress-plugin", "acme/special"],
				"web/app/themes/{$name}/": ["type:wordpress-theme"],
				"web/app/": ["type:wordpress-dropin"]
			}
		}
	}`)

	res, ok := Resolve("/srv/site", doc)
	require.True(t, ok)

	assert.Equal(t, "/srv/site/web/wp", res.WebRoot)
	assert.Equal(t, "/srv/site/web/app/plugins", res.PluginsDir)
	assert.Equal(t, "/srv/site/web/app/mu-plugins", res.MuPluginsDir)
	assert.Equal(t, "/srv/site/web/app/themes", res.ThemesDir)
	assert.Equal(t, "/srv/site/web/app", res.DropinsDir)
}

func TestResolve_ThemesDefaultIsThemes(t *testing.T) {
	doc := parse(t, `{"extra": {"webroot-dir": "web", "installer-paths": {"web/app/plugins/{$name}": ["type:wordpress-plugin"]}}}`)

	res, ok := Resolve("/srv/site", doc)
	require.True(t, ok)

	assert.Equal(t, "/srv/site/web/app/plugins", res.PluginsDir)
	assert.Equal(t, "/srv/site/web/wp-content/themes", res.ThemesDir)
}

func TestResolve_LastDeclarationWins(t *testing.T) {
	doc := parse(t, `{
		"extra": {
			"webroot-dir": "web",
			"installer-paths": {
				"first/plugins/{$name}": ["type:wordpress-plugin"],
				"second/plugins/{$name}": ["type:wordpress-plugin"]
			},
			"custom-installer": {
				"custom/themes/{$name}": ["type:wordpress-theme"]
			}
		}
	}`)

	res, ok := Resolve("/srv/site", doc)
	require.True(t, ok)
	assert.Equal(t, "/srv/site/second/plugins", res.PluginsDir)
	assert.Equal(t, "/srv/site/custom/themes", res.ThemesDir)
}

func TestResolve_CustomInstallerOverridesInstallerPaths(t *testing.T) {
	doc := parse(t, `{
		"extra": {
			"custom-installer": {
				"public/": ["type:wordpress-core"],
				"public/ext/plugins/{$name}": ["type:wordpress-plugin"]
			},
			"installer-paths": {
				"public/content/plugins/{$name}": ["type:wordpress-plugin"]
			}
		}
	}`)

	res, ok := Resolve("/srv/site", doc)
	require.True(t, ok)
	assert.Equal(t, ConventionCustomInstaller, res.Convention)
	assert.Equal(t, "/srv/site/public", res.WebRoot)
	assert.Equal(t, "/srv/site/public/ext/plugins", res.PluginsDir)
}

func TestResolve_Rejects(t *testing.T) {
	_, ok := Resolve("/srv/site", parse(t, `{"extra": {"installer-paths": {"plugins/{$name}": ["type:wordpress-plugin"]}}}`))
	assert.False(t, ok)

	_, ok = Resolve("", parse(t, `{"extra": {"webroot-dir": "web"}}`))
	assert.False(t, ok)

	_, ok = Resolve("/srv/site", nil)
	assert.False(t, ok)
}
