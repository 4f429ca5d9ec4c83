package foundation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOption(t *testing.T) {
	some := Some("cem")
	v, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, "cem", v)
	assert.False(t, some.IsNone())
	assert.Equal(t, "Some(cem)", some.String())

	none := None[string]()
	assert.True(t, none.IsNone())
	_, ok = none.Get()
	assert.False(t, ok)
	assert.Equal(t, "None", none.String())
}

const lookupDoc = `{
  "outFile": "README.md",
  "logging": {"level": "debug"},
  "modules": [
    {"path": "src/button.ts", "exports": [{"kind": "js", "name": "Button"}]},
    {"path": "src/index.ts"}
  ]
}`

func TestLookup(t *testing.T) {
	var root any
	require.NoError(t, json.Unmarshal([]byte(lookupDoc), &root))

	cases := []struct {
		path string
		want any
	}{
		{"outFile", "README.md"},
		{"logging.level", "debug"},
		{"modules[0].path", "src/button.ts"},
		{"modules.1.path", "src/index.ts"},
		{"modules[0].exports[0].name", "Button"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			got, ok := Lookup(root, tc.path, "").Get()
			require.True(t, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	whole, ok := Lookup(root, "", ".").Get()
	require.True(t, ok)
	assert.Equal(t, root, whole)
}

func TestLookup_MissingPathsAreNone(t *testing.T) {
	var root any
	require.NoError(t, json.Unmarshal([]byte(lookupDoc), &root))

	for _, path := range []string{
		"missing",
		"logging.level.deeper",
		"modules[9].path",
		"modules[-1]",
		"modules[x]",
		"outFile[0]",
	} {
		assert.True(t, Lookup(root, path, ".").IsNone(), path)
	}
	assert.True(t, Lookup(nil, "a", ".").IsNone())
}

func TestLookup_PresentNullIsSome(t *testing.T) {
	var root any
	require.NoError(t, json.Unmarshal([]byte(`{"importRoot": null, "modules": [null]}`), &root))

	for _, path := range []string{"importRoot", "modules[0]"} {
		got := Lookup(root, path, ".")
		require.False(t, got.IsNone(), path)
		v, ok := got.Get()
		assert.True(t, ok)
		assert.Nil(t, v)
	}
	assert.True(t, Lookup(root, "importRoot.deeper", ".").IsNone())
}

func TestLookup_CustomSeparatorAndYAMLMaps(t *testing.T) {
	var root map[any]any
	require.NoError(t, yaml.Unmarshal([]byte("logging:\n  format: json\n"), &root))

	got, ok := Lookup(root, "logging/format", "/").Get()
	require.True(t, ok)
	assert.Equal(t, "json", got)
}
