package jsdoc

import (
	"encoding/json"
	"io"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
)

// Decode reads a JSON array of already parsed entries.
func Decode(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, ferrors.ValidationError("decode documentation entries").WithCause(err).Build()
	}
	return entries, nil
}

// doclet is the subset of a raw `jsdoc -X` record the renderer needs.
type doclet struct {
	Entry
	ClassDesc    string `json:"classdesc"`
	Access       string `json:"access"`
	Undocumented bool   `json:"undocumented"`
	Ignore       bool   `json:"ignore"`
}

// ParseExplain turns raw `jsdoc -X` output into renderable entries.
//
// Undocumented, ignored, private and package doclets are dropped. A class
// doclet with a class description becomes two entries: the class, described
// by the class description, followed by its constructor carrying the
// doclet's own description, params and examples.
func ParseExplain(data []byte) ([]Entry, error) {
	var doclets []doclet
	if err := json.Unmarshal(data, &doclets); err != nil {
		return nil, ferrors.ValidationError("parse jsdoc explain output").WithCause(err).Build()
	}

	entries := make([]Entry, 0, len(doclets))
	for _, d := range doclets {
		if d.Undocumented || d.Ignore || d.Access == "private" || d.Kind == "package" {
			continue
		}
		if d.Kind == KindClass && d.ClassDesc != "" {
			entries = append(entries, splitClass(d)...)
			continue
		}
		entries = append(entries, d.Entry)
	}
	return entries, nil
}

func splitClass(d doclet) []Entry {
	class := Entry{
		Kind:        KindClass,
		Scope:       d.Scope,
		Name:        d.Name,
		Description: d.ClassDesc,
		MemberOf:    d.MemberOf,
	}
	ctor := Entry{
		Kind:        KindConstructor,
		Scope:       d.Scope,
		Name:        d.Name,
		Description: d.Description,
		MemberOf:    d.MemberOf,
		Params:      d.Params,
		Examples:    d.Examples,
	}
	return []Entry{class, ctor}
}
