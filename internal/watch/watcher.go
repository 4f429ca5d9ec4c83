// Package watch reruns a build whenever watched sources change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/jsdocmd/internal/logfields"
	"git.home.luguber.info/inful/jsdocmd/internal/util/sets"
)

// DefaultDebounce is the quiet period between the last event and a rebuild.
const DefaultDebounce = 300 * time.Millisecond

// Watcher triggers Rebuild after changes below Dirs or to one of Files.
type Watcher struct {
	// Dirs are watched recursively. Missing directories are skipped.
	Dirs []string
	// Files are watched through their parent directory; sibling events are dropped.
	Files []string
	// IgnoreNames are base names that never trigger a rebuild, such as the
	// generated document itself.
	IgnoreNames []string
	Debounce    time.Duration
	Rebuild     func(ctx context.Context) error
	Logger      *slog.Logger

	// ready is closed once every watch is registered. Used by tests.
	ready chan struct{}
}

type filter struct {
	dirs   []string
	files  sets.Set[string]
	ignore sets.Set[string]
}

// Run blocks until ctx is done. Rebuild failures are logged and watching
// continues.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Rebuild == nil {
		return fmt.Errorf("watch: no rebuild function")
	}
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()

	f, err := w.register(fw, logger)
	if err != nil {
		return err
	}
	if w.ready != nil {
		close(w.ready)
	}

	rebuildReq := make(chan struct{}, 1)
	trigger, stop := debouncer(debounce, rebuildReq)
	defer stop()

	workerCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(workerCtx, logger, rebuildReq)
	}()
	defer wg.Wait()
	defer cancel()

	logger.Info("Watching for changes", slog.Any("dirs", f.dirs), slog.Int("files", len(w.Files)))
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !f.relevant(ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create == fsnotify.Create && f.underDir(ev.Name) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					addDirsRecursive(fw, ev.Name, logger)
				}
			}
			logger.Debug("File change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) register(fw *fsnotify.Watcher, logger *slog.Logger) (*filter, error) {
	f := &filter{
		files:  sets.New[string](),
		ignore: sets.New(w.IgnoreNames...),
	}
	for _, dir := range w.Dirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", dir, err)
		}
		if fi, err := os.Stat(abs); err != nil || !fi.IsDir() {
			logger.Debug("Skipping missing watch dir", logfields.Dir(abs))
			continue
		}
		f.dirs = append(f.dirs, abs)
		addDirsRecursive(fw, abs, logger)
	}
	for _, file := range w.Files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", file, err)
		}
		f.files.Add(abs)
		if err := fw.Add(filepath.Dir(abs)); err != nil {
			logger.Warn("watch add failed", logfields.Dir(filepath.Dir(abs)), logfields.Error(err))
		}
	}
	if len(f.dirs) == 0 && len(f.files) == 0 {
		return nil, fmt.Errorf("watch: nothing to watch")
	}
	return f, nil
}

// worker runs one rebuild at a time. rebuildReq holds at most one request,
// so changes during a rebuild collapse into a single follow-up run.
func (w *Watcher) worker(ctx context.Context, logger *slog.Logger, rebuildReq <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-rebuildReq:
			logger.Info("Change detected; regenerating")
			if err := w.Rebuild(ctx); err != nil {
				logger.Warn("Rebuild failed", logfields.Error(err))
			}
		}
	}
}

func debouncer(d time.Duration, rebuildReq chan<- struct{}) (trigger, stop func()) {
	var mu sync.Mutex
	var timer *time.Timer

	trigger = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	stop = func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	return trigger, stop
}

func (f *filter) relevant(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if f.files.Has(abs) {
		return true
	}
	base := filepath.Base(abs)
	if shouldIgnoreEvent(base) || f.ignore.Has(base) {
		return false
	}
	return f.underDir(abs)
}

func (f *filter) underDir(path string) bool {
	for _, dir := range f.dirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func addDirsRecursive(fw *fsnotify.Watcher, root string, logger *slog.Logger) {
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			logger.Warn("watch add failed", logfields.Dir(path), logfields.Error(err))
		}
		return nil
	})
}

// shouldIgnoreEvent reports hidden files and editor leftovers.
func shouldIgnoreEvent(base string) bool {
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".swx") ||
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#") {
		return true
	}
	return base == "Thumbs.db"
}
