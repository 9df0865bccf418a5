// Package watcher notifies the viewer when an input file changes on disk so
// the whole tree or sample set can be reloaded. Reload replaces the loaded
// data wholesale; nothing here mutates a live tree.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Hub watches a fixed set of files and emits a debounced signal per change
// burst. Editors that write via rename are handled by watching the parent
// directories rather than the files themselves.
type Hub struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	changes chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	lastEvent time.Time
	debounce  time.Duration
}

// New creates a hub for the given file paths. Call Start to begin watching.
func New(paths ...string) (*Hub, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		watcher:  w,
		files:    make(map[string]bool, len(paths)),
		changes:  make(chan struct{}, 1),
		ctx:      ctx,
		cancel:   cancel,
		debounce: 200 * time.Millisecond,
	}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			cancel()
			w.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		h.files[abs] = true
	}
	return h, nil
}

// Start begins watching the parent directories of the registered files.
func (h *Hub) Start() error {
	dirs := make(map[string]bool)
	for f := range h.files {
		dirs[filepath.Dir(f)] = true
	}
	for d := range dirs {
		if err := h.watcher.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}
	go h.watchLoop()
	return nil
}

// Changes returns the channel that receives one signal per debounced change
// burst. The channel has capacity 1; a pending signal coalesces with later
// ones.
func (h *Hub) Changes() <-chan struct{} {
	return h.changes
}

// Stop shuts the hub down. The changes channel is not closed, so a consumer
// blocked on it should also select on its own done signal.
func (h *Hub) Stop() {
	h.cancel()
	h.watcher.Close()
}

func (h *Hub) watchLoop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case event, ok := <-h.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !h.files[abs] {
				continue
			}

			now := time.Now()
			if now.Sub(h.lastEvent) < h.debounce {
				continue
			}
			h.lastEvent = now

			select {
			case h.changes <- struct{}{}:
			default:
				// Signal already pending; coalesce.
			}

		case _, ok := <-h.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
