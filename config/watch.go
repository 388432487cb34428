package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
)

// WatchDebounce coalesces the burst of events editors emit on save
var WatchDebounce = 100 * time.Millisecond

// Watch reloads the config at path whenever it is written or created and
// passes the result to fn. Reload failures are passed as err with a nil cfg.
// The parent directory is watched so atomic rename-on-save is seen.
// Blocks until ctx is done, then returns nil.
func Watch(ctx context.Context, path string, fn func(cfg *Config, err error)) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expand config path %q: %w", path, err)
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	// Stopped timer, armed by the first relevant event
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

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
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				debounce.Reset(WatchDebounce)
			}

		case werr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("watch config: %w", werr))

		case <-debounce.C:
			cfg, err := Load(abs)
			if err != nil {
				fn(nil, err)
				continue
			}
			fn(cfg, nil)
		}
	}
}
