package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestResolveLinks(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no tags", "Plain text with [a link](x) and {braces}.", "Plain text with [a link](x) and {braces}."},
		{"internal anchor lowercased", "See {@link Foo.Bar}", "See [Foo.Bar](#foo.bar)"},
		{"internal anchor", "See {@link foo.bar}", "See [foo.bar](#foo.bar)"},
		{"external keeps case", "See [Docs]{@link https://example.com/X}", "See [Docs](https://example.com/X)"},
		{"explicit label beats bracket", "[Custom Label]{@tutorial setup|Guide}", "[Guide](#setup)"},
		{"space separated label", "{@link Widget the widget}", "[the widget](#widget)"},
		{"bracket label", "[the widget]{@link Widget}", "[the widget](#widget)"},
		{"blank label falls back", "{@link Widget }", "[Widget](#widget)"},
		{"tutorial", "Read {@tutorial getting-started}.", "Read [getting-started](#getting-started)."},
		{
			"multiple tags",
			"Use {@link A} or [b]{@link B}, see {@tutorial c|C}.",
			"Use [A](#a) or [b](#b), see [C](#c).",
		},
		{"identical tags", "{@link X} and {@link X}", "[X](#x) and [X](#x)"},
		{"unknown tag untouched", "{@see Foo}", "{@see Foo}"},
		{"unterminated untouched", "{@link Foo", "{@link Foo"},
		{"no line spanning", "{@link Foo\n}", "{@link Foo\n}"},
		{"empty target untouched", "{@link }", "{@link }"},
		{"stray bracket is text", "a] {@link B}", "a] [B](#b)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveLinks(tc.in))
		})
	}
}

func TestResolveLinks_IsNoOpOnResolvedOutput(t *testing.T) {
	inputs := []string{
		"See {@link foo.bar}",
		"See [Docs]{@link https://example.com/x}",
		"[Custom Label]{@tutorial setup|Guide} and {@link Other}",
	}
	for _, in := range inputs {
		once := ResolveLinks(in)
		assert.Equal(t, once, ResolveLinks(once))
	}
}

func TestFindLinkRefs(t *testing.T) {
	refs := FindLinkRefs("x [Docs]{@link https://example.com/x} y {@tutorial Setup}")
	require.Len(t, refs, 2)

	assert.Equal(t, TagLink, refs[0].Tag)
	assert.Equal(t, "https://example.com/x", refs[0].Target)
	assert.Equal(t, "Docs", refs[0].Display)
	assert.True(t, refs[0].External)
	assert.Equal(t, 2, refs[0].Start)

	assert.Equal(t, TagTutorial, refs[1].Tag)
	assert.False(t, refs[1].External)
	assert.Equal(t, "#setup", refs[1].Destination())
}

func TestFindLinkRefs_BracketCannotReachIntoPreviousTag(t *testing.T) {
	in := "[a{@link A}]{@link B}"
	refs := FindLinkRefs(in)
	require.Len(t, refs, 2)
	assert.Equal(t, "B", refs[1].Display)
	assert.Equal(t, "[a[A](#a)][B](#b)", ResolveLinks(in))
}

// Resolved tags must come out as links a CommonMark parser recognizes.
func TestResolveLinks_ParsesAsMarkdownLinks(t *testing.T) {
	src := []byte(ResolveLinks("Use {@link Foo}, [docs]{@link https://example.com/a} and {@tutorial setup|Setup}."))

	var dests []string
	root := goldmark.New().Parser().Parse(text.NewReader(src))
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if link, ok := n.(*gmast.Link); ok && entering {
			dests = append(dests, string(link.Destination))
		}
		return gmast.WalkContinue, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"#foo", "https://example.com/a", "#setup"}, dests)
}
