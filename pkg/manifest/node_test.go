package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "empty object", content: `{}`},
		{name: "nested object", content: `{"extra": {"webroot-dir": "web"}, "n": 1.5, "ok": true, "x": null}`},
		{name: "empty file", content: ``, wantErr: ErrMalformed},
		{name: "truncated", content: `{"extra": {`, wantErr: ErrMalformed},
		{name: "trailing garbage", content: `{} {}`, wantErr: ErrMalformed},
		{name: "top-level array", content: `["web"]`, wantErr: ErrNotObject},
		{name: "top-level string", content: `"web"`, wantErr: ErrNotObject},
		{name: "top-level null", content: `null`, wantErr: ErrNotObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse([]byte(tt.content))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, node)
				return
			}
			require.NoError(t, err)
			assert.True(t, node.IsObject())
		})
	}
}

// nested returns an object whose "a" member holds arrays nested so the whole
// document is depth levels deep.
func nested(depth int) string {
	return `{"a":` + strings.Repeat("[", depth-1) + strings.Repeat("]", depth-1) + `}`
}

func TestParse_DepthLimit(t *testing.T) {
	node, err := Parse([]byte(nested(MaxDepth)))
	require.NoError(t, err)
	assert.True(t, node.Lookup("a").IsArray())

	node, err = Parse([]byte(nested(MaxDepth + 1)))
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Nil(t, node)

	// Unterminated nesting far past the limit fails without exhausting the stack.
	node, err = Parse([]byte(`{"a":` + strings.Repeat("[", 1<<20)))
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Nil(t, node)
}

func TestParse_InvalidUTF8(t *testing.T) {
	node, err := Parse([]byte("{\"extra\": {\"webroot-dir\": \"web\xff\"}}"))
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Nil(t, node)

	node, err = Parse([]byte(`{"extra": {"webroot-dir": "wéb"}}`))
	require.NoError(t, err)
	dir, ok := node.String("extra", "webroot-dir")
	assert.True(t, ok)
	assert.Equal(t, "wéb", dir)
}

func TestParse_KeepsKeyOrder(t *testing.T) {
	node, err := Parse([]byte(`{"z": 1, "a": 2, "m": 3}`))
	require.NoError(t, err)

	var keys []string
	for _, e := range node.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"z", "a", "m"}, keys)
}

func TestParse_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	node, err := Parse([]byte(`{"a": "first", "b": "x", "a": "second"}`))
	require.NoError(t, err)

	entries := node.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Key)
	assert.Equal(t, "second", entries[0].Value.Text())
}

func TestNode_Lookup(t *testing.T) {
	node, err := Parse([]byte(`{
		"extra": {
			"wordpress-install-dir": "wp",
			"count": 3,
			"installer-paths": {"web/app/plugins/{$name}/": ["type:wordpress-plugin", 7]}
		},
		"config": "not-an-object"
	}`))
	require.NoError(t, err)

	v, ok := node.String("extra", "wordpress-install-dir")
	assert.True(t, ok)
	assert.Equal(t, "wp", v)

	_, ok = node.String("extra", "count")
	assert.False(t, ok, "numbers are not strings")
	assert.Equal(t, "3", node.Lookup("extra", "count").Text())
	assert.Equal(t, KindNumber, node.Lookup("extra", "count").Kind)

	_, ok = node.String("config", "vendor-dir")
	assert.False(t, ok, "lookup through a non-object must fail")
	assert.False(t, node.Has("missing", "path"))

	paths := node.Lookup("extra", "installer-paths").Entries()
	require.Len(t, paths, 1)
	assert.Equal(t, "web/app/plugins/{$name}/", paths[0].Key)
	assert.Equal(t, []string{"type:wordpress-plugin"}, paths[0].Value.Strings())
	assert.True(t, paths[0].Value.ContainsString("type:wordpress-plugin"))
	assert.False(t, paths[0].Value.ContainsString("7"))
}

func TestNode_NilSafe(t *testing.T) {
	var n *Node

	assert.Nil(t, n.Lookup("a"))
	assert.Nil(t, n.Entries())
	assert.Nil(t, n.Items())
	assert.Empty(t, n.Strings())
	assert.False(t, n.IsObject())
	assert.False(t, n.Bool())
	assert.Equal(t, "", n.Text())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "object", KindObject.String())
	assert.Equal(t, "array", KindArray.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
