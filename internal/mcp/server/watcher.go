// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to backing files as resource URIs. It watches each
// file's parent directory so editors that replace files by rename are seen.
// Content is never cached; clients re-read the resource.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	logger    *slog.Logger
	notify    func(uri string)

	// debounceDelay coalesces bursts of events for the same file
	debounceDelay time.Duration

	// watched maps absolute file paths to resource URIs
	watched map[string]string

	// dirs counts watched files per directory
	dirs map[string]int

	// pending holds debounce timers by URI
	pending map[string]*time.Timer

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// WatcherConfig configures the file watcher.
type WatcherConfig struct {
	// Notify is called with the resource URI once a change settles (required)
	Notify func(uri string)

	// Logger is used for structured logging (optional)
	Logger *slog.Logger

	// DebounceDelay defaults to 200ms
	DebounceDelay time.Duration
}

// NewWatcher creates a watcher and starts its event loop.
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	if cfg.Notify == nil {
		return nil, fmt.Errorf("notify callback is required")
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	debounceDelay := cfg.DebounceDelay
	if debounceDelay == 0 {
		debounceDelay = 200 * time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{
		fsWatcher:     fsWatcher,
		logger:        logger,
		notify:        cfg.Notify,
		debounceDelay: debounceDelay,
		watched:       make(map[string]string),
		dirs:          make(map[string]int),
		pending:       make(map[string]*time.Timer),
		ctx:           ctx,
		cancel:        cancel,
	}

	w.wg.Add(1)
	go w.processEvents()

	return w, nil
}

// Watch reports changes to path as updates of uri. The file need not exist yet,
// but its directory must.
func (w *Watcher) Watch(path, uri string) error {
	if uri == "" {
		return fmt.Errorf("resource uri is required")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	dir := filepath.Dir(absPath)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.watched[absPath]; exists {
		w.watched[absPath] = uri
		return nil
	}
	if w.dirs[dir] == 0 {
		if err := w.fsWatcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.watched[absPath] = uri

	w.logger.Debug("watching file for resource", slog.String("path", absPath), slog.String("resource", uri))
	return nil
}

// Unwatch stops reporting changes to path.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	uri, exists := w.watched[absPath]
	if !exists {
		return nil
	}
	delete(w.watched, absPath)

	dir := filepath.Dir(absPath)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		_ = w.fsWatcher.Remove(dir)
	}

	if timer, ok := w.pending[uri]; ok {
		timer.Stop()
		delete(w.pending, uri)
	}
	return nil
}

func (w *Watcher) processEvents() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				w.handleFileChange(event.Name)
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("file watcher error", "error", err)

		case <-w.ctx.Done():
			return
		}
	}
}

func (w *Watcher) handleFileChange(changedPath string) {
	absPath, err := filepath.Abs(changedPath)
	if err != nil {
		return
	}

	w.mu.Lock()
	uri, ok := w.watched[absPath]
	w.mu.Unlock()
	if !ok {
		return
	}

	w.logger.Debug("watched file changed", slog.String("path", absPath), slog.String("resource", uri))
	w.schedule(uri)
}

// schedule restarts the debounce timer for uri.
func (w *Watcher) schedule(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, exists := w.pending[uri]; exists {
		timer.Stop()
	}
	w.pending[uri] = time.AfterFunc(w.debounceDelay, func() {
		w.fire(uri)
	})
}

func (w *Watcher) fire(uri string) {
	w.mu.Lock()
	delete(w.pending, uri)
	w.mu.Unlock()

	if w.ctx.Err() != nil {
		return
	}
	w.logger.Info("resource changed on disk", slog.String("resource", uri))
	w.notify(uri)
}

// Close stops the watcher and cancels pending notifications.
func (w *Watcher) Close() error {
	w.cancel()

	w.mu.Lock()
	for uri, timer := range w.pending {
		timer.Stop()
		delete(w.pending, uri)
	}
	w.mu.Unlock()

	err := w.fsWatcher.Close()
	w.wg.Wait()
	return err
}
