// Package watch re-runs an action when a file changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/httpmethods/pkg/log"
)

// DefaultDelay is how long a file must stay quiet before the action runs.
const DefaultDelay = 100 * time.Millisecond

// File calls fn each time path is written or re-created, until ctx is done.
// Bursts of events within delay collapse into one call. Calls never overlap.
//
// The parent directory is watched rather than the file itself so that editors
// which save by rename keep triggering.
func File(ctx context.Context, path string, delay time.Duration, logger log.Logger, fn func(context.Context)) error {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Info("watching for changes", log.String("path", abs))

	fire := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
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
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(delay, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			logger.Debug("file changed", log.String("path", abs))
			fn(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", log.Err(err))
		}
	}
}
