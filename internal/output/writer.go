// Package output writes rendered documents next to the sources they describe.
package output

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"

	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
)

// Result describes one write.
type Result struct {
	Path    string
	Digest  string // hex BLAKE3-256 of the content
	Changed bool
}

// Writer writes documents, skipping files whose content is unchanged.
type Writer struct {
	// Root is prepended to relative directories; empty means the working directory.
	Root string
	// DryRun computes results without touching the filesystem.
	DryRun bool
}

// Digest returns the hex BLAKE3-256 digest of content.
func Digest(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Write stores content at dir/name, creating dir when needed.
func (w Writer) Write(dir, name, content string) (Result, error) {
	target := filepath.Join(w.Root, dir, name)
	data := []byte(content)
	res := Result{Path: target, Digest: Digest(data)}

	existing, err := os.ReadFile(target)
	switch {
	case err == nil:
		if Digest(existing) == res.Digest {
			return res, nil
		}
	case !os.IsNotExist(err):
		return res, ferrors.FileSystemError("read existing document").WithCause(err).
			WithContext("path", target).
			Build()
	}

	res.Changed = true
	if w.DryRun {
		return res, nil
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return res, ferrors.FileSystemError("create output directory").WithCause(err).
			WithContext("path", target).
			Build()
	}
	if err := os.WriteFile(target, data, 0o644); err != nil { // #nosec G306 -- README files are meant to be world-readable
		return res, ferrors.FileSystemError("write document").WithCause(err).
			WithContext("path", target).
			Build()
	}
	return res, nil
}
