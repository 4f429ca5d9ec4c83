package jsdoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
)

func TestParseExplain(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("testdata", "explain.json"))
	require.NoError(t, err)

	entries, err := ParseExplain(data)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	class := entries[0]
	assert.Equal(t, KindClass, class.Kind)
	assert.Equal(t, "Button", class.Name)
	assert.Equal(t, "A clickable button. See {@link Icon}.", class.Description)
	assert.Empty(t, class.Examples)

	ctor := entries[1]
	assert.Equal(t, KindConstructor, ctor.Kind)
	assert.Equal(t, "Creates a button.", ctor.Description)
	require.Len(t, ctor.Params, 1)
	assert.Equal(t, "label", ctor.Params[0].Name)
	assert.Equal(t, []string{"const b = new Button('Ok');"}, ctor.Examples)

	assert.Equal(t, "disabled", entries[2].Name)
	assert.Equal(t, []string{"boolean"}, entries[2].TypeNames())
	assert.Equal(t, "Button", entries[2].MemberOf)

	focus := entries[3]
	assert.Equal(t, "focus", focus.Name)
	assert.Equal(t, []string{"FocusOptions", "undefined"}, focus.Params[0].Type.Names)
	require.Len(t, focus.Returns, 1)
	assert.Equal(t, []string{"void"}, focus.Returns[0].Type.Names)
	assert.Nil(t, focus.TypeNames())
}

func TestParseExplain_ClassWithoutClassDescStaysWhole(t *testing.T) {
	entries, err := ParseExplain([]byte(`[{"kind":"class","name":"Plain","description":"Just a class."}]`))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, KindClass, entries[0].Kind)
	assert.Equal(t, "Just a class.", entries[0].Description)
}

func TestParseExplain_MalformedIsValidationError(t *testing.T) {
	_, err := ParseExplain([]byte(`{"kind":`))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestDecode(t *testing.T) {
	entries, err := Decode(strings.NewReader(`[
		{"kind":"function","scope":"global","name":"getValue","params":[{"name":"obj","type":{"names":["Object"]}}]},
		{"kind":"typedef","name":"Shape"}
	]`))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, KindFunction, entries[0].Kind)
	assert.Equal(t, ScopeGlobal, entries[0].Scope)
	assert.Equal(t, Kind("typedef"), entries[1].Kind)

	_, err = Decode(strings.NewReader("not json"))
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestPartition(t *testing.T) {
	entries := []Entry{
		{Kind: KindMember, Scope: ScopeInstance, Name: "a", MemberOf: "Widget"},
		{Kind: KindClass, Name: "Widget"},
		{Kind: KindFunction, Scope: ScopeGlobal, Name: "make"},
		{Kind: KindClass, Name: "Second"},
		{Kind: KindConstructor, Name: "Widget"},
		{Kind: KindMember, Scope: ScopeGlobal, Name: "VERSION"},
		{Kind: KindFunction, Scope: ScopeInstance, Name: "run", MemberOf: "Other"},
		{Kind: KindMember, Scope: ScopeInstance, Name: "b"},
		{Kind: KindMember, Scope: "static", Name: "skipped"},
		{Kind: "typedef", Name: "ignored"},
	}

	docs := Partition("dist/widget/widget.js", entries)

	assert.Equal(t, "dist/widget/widget.js", docs.Path)
	class, ok := docs.Class.Get()
	require.True(t, ok)
	assert.Equal(t, "Widget", class.Name)
	assert.False(t, docs.Constructor.IsNone())
	assert.Equal(t, "Widget", docs.Owner)

	names := func(es []Entry) []string {
		out := make([]string, 0, len(es))
		for _, e := range es {
			out = append(out, e.Name)
		}
		return out
	}
	assert.Equal(t, []string{"a", "b"}, names(docs.InstanceMembers))
	assert.Equal(t, []string{"VERSION"}, names(docs.GlobalMembers))
	assert.Equal(t, []string{"run"}, names(docs.InstanceFunctions))
	assert.Equal(t, []string{"make"}, names(docs.GlobalFunctions))
}

func TestPartition_Empty(t *testing.T) {
	docs := Partition("dist/x.js", nil)
	assert.True(t, docs.Class.IsNone())
	assert.True(t, docs.Constructor.IsNone())
	assert.Empty(t, docs.Owner)
	assert.Empty(t, docs.InstanceMembers)
}
