// Package watch reports changes to a repository's branches and tags by
// watching its git directory with fsnotify.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDelay coalesces the burst of events one git command produces.
const DefaultDelay = 350 * time.Millisecond

// RefWatcher calls OnChange after references under a git directory change.
type RefWatcher struct {
	gitDir   string
	delay    time.Duration
	onChange func()
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

// Option configures a RefWatcher.
type Option func(*RefWatcher)

// WithDelay sets the debounce delay.
func WithDelay(delay time.Duration) Option {
	return func(w *RefWatcher) { w.delay = delay }
}

// WithLogger sets the logger for watcher events.
func WithLogger(logger *slog.Logger) Option {
	return func(w *RefWatcher) { w.logger = logger }
}

// NewRefWatcher starts watching gitDir, its refs/ tree and packed-refs.
// onChange runs on its own goroutine, at most once per quiet period.
func NewRefWatcher(gitDir string, onChange func(), opts ...Option) (*RefWatcher, error) {
	w := &RefWatcher{
		gitDir:   gitDir,
		delay:    DefaultDelay,
		onChange: onChange,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(w)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	w.watcher = watcher

	if err := w.add(gitDir); err != nil {
		return nil, errors.Join(err, watcher.Close())
	}
	refsDir := filepath.Join(gitDir, "refs")
	if err := w.addTree(refsDir); err != nil {
		return nil, errors.Join(err, watcher.Close())
	}
	return w, nil
}

// Run delivers change notifications until ctx is done, then closes the
// watcher.
func (w *RefWatcher) Run(ctx context.Context) error {
	debouncer := NewDebouncer(w.delay, w.onChange)
	defer debouncer.Stop()
	defer w.watcher.Close() //nolint:errcheck // nothing to report after shutdown

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				w.followNewDir(ev.Name)
			}
			if !w.relevant(ev) {
				continue
			}
			w.logger.DebugContext(ctx, "ref change",
				slog.String("op", ev.Op.String()),
				slog.String("path", ev.Name),
			)
			debouncer.Trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.ErrorContext(ctx, "fsnotify error", slog.Any("error", err))
		}
	}
}

func (w *RefWatcher) add(path string) error {
	w.logger.Debug("adding path to FS watcher", slog.String("path", path))
	if err := w.watcher.Add(path); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	return nil
}

// addTree watches root and every directory below it. A missing root is
// not an error; a repository without refs/tags yet is normal.
func (w *RefWatcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.add(path)
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// followNewDir watches directories created under refs/, such as the
// "feature" directory of a new feature/x branch.
func (w *RefWatcher) followNewDir(path string) {
	if !w.underRefs(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addTree(path); err != nil {
		w.logger.Error("watch new ref directory", slog.String("path", path), slog.Any("error", err))
	}
}

func (w *RefWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	if ignoredPath(ev.Name) {
		return false
	}
	if w.underRefs(ev.Name) {
		return true
	}
	return filepath.Clean(ev.Name) == filepath.Join(w.gitDir, "packed-refs")
}

func (w *RefWatcher) underRefs(path string) bool {
	rel, err := filepath.Rel(filepath.Join(w.gitDir, "refs"), path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ignoredPath filters git's lock files; the rename that publishes the
// final file is reported separately.
func ignoredPath(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".lock" || ext == ".ipc"
}
