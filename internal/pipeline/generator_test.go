package pipeline

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/jsdocmd/internal/config"
	ferrors "git.home.luguber.info/inful/jsdocmd/internal/foundation/errors"
	"git.home.luguber.info/inful/jsdocmd/internal/jsdoc"
	"git.home.luguber.info/inful/jsdocmd/internal/metrics"
	"git.home.luguber.info/inful/jsdocmd/internal/output"
	"git.home.luguber.info/inful/jsdocmd/internal/render"
)

const testManifest = `{
  "schemaVersion": "1.0.0",
  "modules": [
    {"path": "src/button/button.ts", "exports": [{"kind": "js", "name": "Button"}]},
    {"path": "src/button/icon-button.ts", "exports": [{"kind": "js", "name": "IconButton"}]},
    {"path": "src/button/define.ts", "exports": [{"kind": "custom-element-definition", "name": "x-button"}]},
    {"path": "src/utils/Utilities.js", "exports": [{"kind": "js", "name": "getValue"}]}
  ]
}`

type fakeToolchain struct{ calls int }

func (f *fakeToolchain) Ensure(context.Context) error {
	f.calls++
	return nil
}

// fakeExtractor serves canned entries per compiled path. The first file
// finishes last so ordering is exercised.
type fakeExtractor struct {
	mu      sync.Mutex
	entries map[string][]jsdoc.Entry
	seen    []string
	fail    error
}

func (f *fakeExtractor) Extract(ctx context.Context, file string) ([]jsdoc.Entry, error) {
	f.mu.Lock()
	f.seen = append(f.seen, file)
	f.mu.Unlock()
	if f.fail != nil {
		return nil, f.fail
	}
	if strings.HasSuffix(file, "button/button.js") {
		select {
		case <-time.After(30 * time.Millisecond):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.entries[file], nil
}

func setup(t *testing.T) (*config.Config, string) {
	t.Helper()
	root := t.TempDir()
	manifestPath := filepath.Join(root, "custom-elements.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(testManifest), 0o600))

	cfg := config.Default()
	cfg.CustomElements = manifestPath
	cfg.ImportRoot = "@acme/ui"
	return cfg, root
}

func sampleEntries() map[string][]jsdoc.Entry {
	return map[string][]jsdoc.Entry{
		"dist/button/button.js": {
			{Kind: jsdoc.KindClass, Name: "Button", Description: "Clickable. See {@link IconButton}."},
		},
		"dist/button/icon-button.js": {
			{Kind: jsdoc.KindClass, Name: "IconButton"},
		},
		"dist/utils/Utilities.js": {
			{Kind: jsdoc.KindFunction, Scope: jsdoc.ScopeGlobal, Name: "getValue", Description: "Reads a nested value."},
		},
	}
}

func TestGenerator_Run(t *testing.T) {
	cfg, root := setup(t)
	tc := &fakeToolchain{}
	ex := &fakeExtractor{entries: sampleEntries()}
	reg := prom.NewRegistry()

	gen := NewGenerator(cfg,
		WithToolchain(tc),
		WithExtractor(ex),
		WithWriter(output.Writer{Root: root}),
		WithRecorder(metrics.NewPrometheusRecorder(reg)),
	)

	report, err := gen.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, tc.calls)
	assert.NotEmpty(t, report.RunID)
	require.Len(t, report.Documents, 2)
	assert.Equal(t, 2, report.Changed())
	assert.Len(t, ex.seen, 3)

	buttonDoc, err := os.ReadFile(filepath.Join(root, "src", "button", "README.md"))
	require.NoError(t, err)
	doc := string(buttonDoc)
	assert.Less(t, strings.Index(doc, "# `Button`"), strings.Index(doc, "# `IconButton`"), "sections keep manifest order")
	assert.Contains(t, doc, "Clickable. See [IconButton](#iconbutton).")
	assert.Equal(t, 2, strings.Count(doc, render.Separator))

	utilDoc, err := os.ReadFile(filepath.Join(root, "src", "utils", "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(utilDoc), "import { getValue } from '@acme/ui/utils';")

	again, err := gen.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, again.Changed())
	assert.NotEqual(t, report.RunID, again.RunID)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestGenerator_ExtractorFailureStopsRun(t *testing.T) {
	cfg, root := setup(t)
	boom := ferrors.ToolchainError("jsdoc crashed").Build()
	var logs bytes.Buffer

	gen := NewGenerator(cfg,
		WithToolchain(&fakeToolchain{}),
		WithExtractor(&fakeExtractor{fail: boom}),
		WithWriter(output.Writer{Root: root}),
		WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	_, err := gen.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, logs.String(), "category=toolchain")
	_, statErr := os.Stat(filepath.Join(root, "src", "button", "README.md"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerator_MissingManifest(t *testing.T) {
	cfg, root := setup(t)
	cfg.CustomElements = filepath.Join(root, "nope.json")

	gen := NewGenerator(cfg, WithToolchain(&fakeToolchain{}), WithExtractor(&fakeExtractor{}), WithWriter(output.Writer{Root: root}))
	_, err := gen.Run(context.Background())
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestGenerator_EmptyModuleStillGetsSection(t *testing.T) {
	cfg, root := setup(t)
	gen := NewGenerator(cfg,
		WithToolchain(&fakeToolchain{}),
		WithExtractor(&fakeExtractor{entries: map[string][]jsdoc.Entry{}}),
		WithWriter(output.Writer{Root: root, DryRun: true}),
	)

	report, err := gen.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Documents, 2)
	assert.Equal(t, 2, report.Documents[0].Sections)
	assert.Equal(t, output.Digest([]byte(render.Separator+"\r\n\r\n"+render.Separator)), report.Documents[0].Digest)
}

func TestRenderOptionsAndFilter(t *testing.T) {
	cfg := config.Default()
	cfg.KeepImports = true
	cfg.ImportRoot = "pkg"

	opts := RenderOptions(cfg)
	assert.True(t, opts.KeepImports)
	assert.Equal(t, "dist", opts.OutputDir)
	assert.Equal(t, []string{"js"}, opts.FenceLanguages)

	f := Filter(cfg)
	assert.Equal(t, []string{"stories", "story", "internal", "test"}, f.ExcludePaths)
}
