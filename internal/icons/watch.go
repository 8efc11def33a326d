// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package icons

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"go.astrophena.name/base/logger"

	"github.com/fsnotify/fsnotify"
)

// used in tests
var (
	watchReadyHook func()      // called when Watch started watching
	regenerateHook func(error) // called after each regeneration with its result
)

// debouncer delays execution of a function until a specified duration has
// passed without any new events.
type debouncer struct {
	mu sync.Mutex
	d  time.Duration
	f  func()
	t  *time.Timer
}

func newDebouncer(d time.Duration, f func()) *debouncer {
	return &debouncer{
		d: d,
		f: f,
	}
}

// Do schedules a function to be executed.
func (d *debouncer) Do() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.t != nil {
		d.t.Stop()
	}

	d.t = time.AfterFunc(d.d, d.f)
}

// Stop cancels a scheduled execution, if any.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.t != nil {
		d.t.Stop()
	}
}

// Watch generates icons and then regenerates them each time the source image
// changes, until ctx is canceled.
func Watch(ctx context.Context, c *Config) error {
	if c == nil {
		c = &Config{}
	}
	c.setDefaults()

	logger.Info(ctx, "performing an initial generation")
	if err := Generate(c); err != nil {
		logger.Error(ctx, "initial generation failed", slog.Any("err", err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Editors often replace a file instead of writing to it, so watch the
	// parent directory rather than the file itself.
	if err := watcher.Add(filepath.Dir(c.Src)); err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		stopped bool
	)
	// Wait for a generation in progress to finish before returning.
	defer func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
	}()
	regenerate := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		logger.Info(ctx, "triggering generation")
		err := Generate(c)
		if err != nil {
			logger.Error(ctx, "failed to regenerate icons", slog.Any("err", err))
		}
		if regenerateHook != nil {
			regenerateHook(err)
		}
	}
	// Saving an image usually produces a burst of events.
	debouncer := newDebouncer(250*time.Millisecond, regenerate)
	defer debouncer.Stop()

	logger.Info(ctx, "started watching for changes", slog.String("src", c.Src))
	if watchReadyHook != nil {
		watchReadyHook()
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !shouldRegenerate(c.Src, event) {
				continue
			}
			logger.Info(ctx, "detected change, scheduling generation",
				slog.String("name", event.Name),
				slog.Any("op", event.Op),
			)
			debouncer.Do()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error(ctx, "watcher error", slog.Any("err", err))
		case <-ctx.Done():
			logger.Info(ctx, "stopped watching")
			return nil
		}
	}
}

func shouldRegenerate(src string, event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != filepath.Clean(src) {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write)
}
