package jobs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"resumatch/internal/errors"
	"resumatch/internal/types"

	"github.com/fsnotify/fsnotify"
)

// LoadCatalogFile reads a JSON array of postings from disk.
func LoadCatalogFile(path string) ([]types.JobPosting, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
				"Job catalog file does not exist", err).WithContext("file", path)
		}
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Cannot read job catalog file", err).WithContext("file", path)
	}

	var jobs []types.JobPosting
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			"Job catalog file is not a valid JSON array of postings", err).
			WithContext("file", path)
	}
	return jobs, nil
}

// CatalogWatcher reloads a MemoryStore from a catalog file whenever the file
// changes on disk.
type CatalogWatcher struct {
	store   *MemoryStore
	path    string
	watcher *fsnotify.Watcher
	logger  *errors.Logger

	// debounce interval, editors often fire several events per save
	debounce time.Duration
}

// NewCatalogWatcher creates a watcher for the given catalog file. The parent
// directory is watched so atomic rename-style saves are picked up too.
func NewCatalogWatcher(store *MemoryStore, path string, logger *errors.Logger) (*CatalogWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeInvalidConfig,
			"Failed to create file watcher", err)
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
			"Failed to watch job catalog directory", err).WithContext("file", path)
	}

	return &CatalogWatcher{
		store:    store,
		path:     path,
		watcher:  watcher,
		logger:   logger,
		debounce: 500 * time.Millisecond,
	}, nil
}

// Start runs the watch loop until the context is canceled.
func (w *CatalogWatcher) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *CatalogWatcher) run(ctx context.Context) {
	defer func() { _ = w.watcher.Close() }()

	var timer *time.Timer
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("Job catalog watcher stopped")
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Job catalog watcher error", "error", err.Error())

		case <-reload:
			w.reload()
		}
	}
}

func (w *CatalogWatcher) reload() {
	jobs, err := LoadCatalogFile(w.path)
	if err != nil {
		w.logger.LogError(err, "Job catalog reload failed, keeping previous catalog",
			"file", w.path)
		return
	}

	w.store.replaceAll(jobs)
	w.logger.Info("Job catalog reloaded", "file", w.path, "jobs", len(jobs))
}
