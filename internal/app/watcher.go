package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/opstate/internal/domain"
	"github.com/bft-labs/opstate/internal/ports"
	"github.com/bft-labs/opstate/pkg/log"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// WatcherConfig holds configuration for a Watcher.
type WatcherConfig struct {
	// Dir is the directory holding the state file.
	Dir string

	// FileName is the state file name inside Dir.
	FileName string

	// Debounce is the delay to wait after a change before loading.
	// Default: 100 milliseconds
	Debounce time.Duration

	// OnState receives every state observed, including the one present at start.
	OnState func(domain.State)

	// OnError receives load failures. May be nil.
	OnError func(error)
}

// Watcher reports changes of the state file as they are committed.
// Only completed renames and writes trigger a reload, so a temp file being
// written next to the state file is never reported.
type Watcher struct {
	cfg    WatcherConfig
	repo   ports.StateRepository
	logger ports.Logger
}

// NewWatcher creates a watcher that loads state through repo.
func NewWatcher(repo ports.StateRepository, logger ports.Logger, cfg WatcherConfig) *Watcher {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Watcher{cfg: cfg, repo: repo, logger: logger}
}

// Run watches until ctx is cancelled. The directory must already exist.
// Handlers are called on the calling goroutine.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.cfg.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.cfg.Dir, err)
	}
	w.logger.Debug("watching operation state", log.String("dir", w.cfg.Dir))

	w.deliver(ctx, true)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != w.cfg.FileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.cfg.Debounce)
			}
			timerC = timer.C

		case <-timerC:
			timerC = nil
			w.deliver(ctx, false)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("state watcher error", log.Err(err))
		}
	}
}

// deliver loads the state and hands it to the handlers. A missing file at
// startup is not reported.
func (w *Watcher) deliver(ctx context.Context, initial bool) {
	st, err := w.repo.Load(ctx)
	if err != nil {
		if initial && errors.Is(err, domain.ErrNotFound) {
			w.logger.Debug("no operation state yet")
			return
		}
		w.logger.Warn("reload operation state failed", log.Err(err))
		if w.cfg.OnError != nil {
			w.cfg.OnError(err)
		}
		return
	}
	if w.cfg.OnState != nil {
		w.cfg.OnState(st)
	}
}
