// Package manifest loads a custom-elements manifest and selects the modules
// that get a README.
package manifest

import (
	"encoding/json"
	"os"
	"path"
	"strings"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
	"git.home.luguber.info/inful/jsdocmd/internal/util/sets"
)

// Export is one declaration exported by a module.
type Export struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// Module is one source file entry of the manifest.
type Module struct {
	Path    string   `json:"path"`
	Exports []Export `json:"exports"`
}

// Manifest is the subset of custom-elements.json the generator reads.
type Manifest struct {
	SchemaVersion string   `json:"schemaVersion"`
	Modules       []Module `json:"modules"`
}

// Load reads and decodes the manifest at p.
func Load(p string) (*Manifest, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.NotFoundError("custom elements manifest not found").WithCause(err).
				WithContext("path", p).
				Build()
		}
		return nil, ferrors.FileSystemError("read custom elements manifest").WithCause(err).
			WithContext("path", p).
			Build()
	}
	return Parse(data, p)
}

// Parse decodes manifest bytes; source names the origin in errors.
func Parse(data []byte, source string) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, ferrors.ManifestError("invalid custom elements manifest").WithCause(err).
			WithContext("path", source).
			Build()
	}
	return &m, nil
}

// Filter selects modules for documentation.
type Filter struct {
	// ExcludePaths are lowercase substrings; a module path containing any of
	// them (case-insensitively) is skipped.
	ExcludePaths []string
	// ExcludeKinds skips modules exporting any declaration of these kinds.
	ExcludeKinds []string
}

// Group is the set of documented modules sharing one directory.
type Group struct {
	Dir   string
	Files []string
}

// Accepts reports whether the module should be documented.
func (f Filter) Accepts(m Module) bool {
	if !strings.HasSuffix(m.Path, ".ts") && !strings.HasSuffix(m.Path, ".js") {
		return false
	}
	if strings.HasSuffix(m.Path, "index.ts") || strings.HasSuffix(m.Path, "index.js") {
		return false
	}

	lower := strings.ToLower(m.Path)
	for _, p := range f.ExcludePaths {
		if p != "" && strings.Contains(lower, strings.ToLower(p)) {
			return false
		}
	}

	excluded := sets.New(f.ExcludeKinds...)
	hasJS := false
	for _, ex := range m.Exports {
		if excluded.Has(ex.Kind) {
			return false
		}
		if ex.Kind == "js" {
			hasJS = true
		}
	}
	return hasJS
}

// Group keeps the accepted modules and groups them by directory. Groups and
// the files within them keep manifest order.
func (m *Manifest) Group(f Filter) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, mod := range m.Modules {
		if !f.Accepts(mod) {
			continue
		}
		dir := path.Dir(mod.Path)
		i, ok := index[dir]
		if !ok {
			i = len(groups)
			index[dir] = i
			groups = append(groups, Group{Dir: dir})
		}
		groups[i].Files = append(groups[i].Files, mod.Path)
	}
	return groups
}

// Dirs returns the directory of every group, in order.
func Dirs(groups []Group) []string {
	dirs := make([]string, 0, len(groups))
	for _, g := range groups {
		dirs = append(dirs, g.Dir)
	}
	return dirs
}

// CompiledPath maps a source module path to its compiled counterpart by
// replacing the first srcDir with outDir and the first ".ts" with ".js".
func CompiledPath(src, srcDir, outDir string) string {
	p := src
	if srcDir != "" {
		p = strings.Replace(p, srcDir, outDir, 1)
	}
	return strings.Replace(p, ".ts", ".js", 1)
}
