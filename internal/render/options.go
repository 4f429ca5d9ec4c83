// Package render turns partitioned documentation entries into README
// sections and assembles sections into documents.
//
// Rendering is pure: output depends only on the entries and Options, and
// entries are never re-sorted.
package render

import "git.home.luguber.info/inful/jsdocmd/internal/markdown"

// Options controls import synthesis and code fence normalization.
type Options struct {
	// KeepImports leaves the compiled output directory in synthesized import
	// paths even when ImportRoot is set.
	KeepImports bool
	// ImportRoot replaces the first occurrence of OutputDir in import paths.
	ImportRoot string
	// OutputDir is the compiled output directory (config key "dir").
	OutputDir string
	// FenceLanguages lists the fence tags that get a line break after them.
	// Nil selects markdown.DefaultFenceLanguages.
	FenceLanguages []string

	// fences is built once per module by prepared.
	fences *markdown.Normalizer
}

// prepared returns a copy of o with its fence normalizer built.
func (o Options) prepared() Options {
	if o.fences == nil {
		o.fences = markdown.NewNormalizer(o.FenceLanguages)
	}
	return o
}

// text resolves link tags and normalizes code fences in free-form doc text.
func (o Options) text(s string) string {
	if s == "" {
		return ""
	}
	return o.normalize(markdown.ResolveLinks(s))
}

func (o Options) normalize(s string) string {
	if o.fences == nil {
		o = o.prepared()
	}
	return o.fences.Normalize(s)
}
