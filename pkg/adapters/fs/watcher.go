package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/marginalia/pkg/core"
)

// debounceWindow coalesces bursts of filesystem events for the same set.
// Editors and atomic renames routinely fire several events per save.
const debounceWindow = 50 * time.Millisecond

// Watch observes the project root for external changes to memo set record
// files and emits one debounced event per changed set. The channel closes
// when ctx is cancelled or the watcher fails.
//
// Hosts use this to reload the store when memo files are edited outside the
// session (another process, a git checkout, a sync tool).
func (g *Gateway) Watch(ctx context.Context) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(g.root); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch project root: %w", err)
	}

	events := make(chan core.Event)
	debouncer := newDebouncer(debounceWindow)
	g.setWatcherActive(true)

	go func() {
		defer close(events)
		defer watcher.Close()
		defer g.setWatcherActive(false)
		defer debouncer.stop()

		for {
			select {
			case <-ctx.Done():
				return

			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				e, relevant := g.mapEvent(ev)
				if !relevant {
					continue
				}
				debouncer.add(e.Set, e, func(out core.Event) {
					select {
					case events <- out:
					case <-ctx.Done():
					}
				})

			case wErr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if g.logger != nil {
					g.logger.Error("fsnotify error", "error", wErr)
				}
			}
		}
	}()

	return events, nil
}

// mapEvent filters filesystem events down to memo set record file changes.
func (g *Gateway) mapEvent(ev fsnotify.Event) (core.Event, bool) {
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, TempFilePrefix) {
		return core.Event{}, false
	}
	if ok, _ := doublestar.Match(g.structuredPattern(), name); !ok {
		return core.Event{}, false
	}

	var etype core.EventType
	switch {
	case ev.Has(fsnotify.Create):
		etype = core.EventCreate
	case ev.Has(fsnotify.Write):
		etype = core.EventModify
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		etype = core.EventDelete
	default:
		return core.Event{}, false
	}

	return core.Event{
		Type:      etype,
		Set:       strings.TrimSuffix(name, g.structuredMarker()),
		Timestamp: time.Now().Unix(),
	}, true
}

// debouncer coalesces events per key, keeping the latest event and firing it
// once the window elapses without further activity on that key.
type debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		timers: make(map[string]*time.Timer),
	}
}

func (d *debouncer) add(key string, ev core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		delete(d.timers, key)
		stopped := d.stopped
		d.mu.Unlock()
		if !stopped {
			fire(ev)
		}
	})
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
