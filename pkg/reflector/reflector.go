// Package reflector recomputes and applies the visual overlays and lens
// affordances for open files from the store's current record list.
//
// The engine owns every overlay handle it applies, bagged per file. A refresh
// for a file always detaches the previous bag before applying anything new,
// so repeated refreshes can never leak or duplicate overlays, and deleting
// the last memo of a file leaves it clean.
package reflector

import (
	"log/slog"
	"sync"

	"github.com/aretw0/marginalia/pkg/core"
	"github.com/aretw0/marginalia/pkg/render"
)

const (
	// labelPreviewLen caps the inline label preview.
	labelPreviewLen = 80
	// lensPreviewLen caps the memo excerpt quoted in lens titles.
	lensPreviewLen = 10
)

// Engine applies overlays and computes lenses for open files.
type Engine struct {
	mu        sync.Mutex
	records   []core.Tagged
	bags      map[string]map[string][]core.OverlayHandle // filePath -> record id -> handles
	listeners []func()
	logger    *slog.Logger
}

// NewEngine creates an Engine with no records. The logger may be nil.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{
		bags:   make(map[string]map[string][]core.OverlayHandle),
		logger: logger,
	}
}

// OnLensesChanged registers a callback fired whenever the lens set must be
// re-queried by the host. Callbacks run synchronously on the mutating call.
func (e *Engine) OnLensesChanged(fn func()) {
	e.mu.Lock()
	e.listeners = append(e.listeners, fn)
	e.mu.Unlock()
}

// SetRecords replaces the engine's view of the full record list and notifies
// lens listeners. It does not touch applied overlays; call Refresh for each
// visible editor to bring those in line.
func (e *Engine) SetRecords(records []core.Tagged) {
	e.mu.Lock()
	e.records = records
	listeners := append([]func(){}, e.listeners...)
	e.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Refresh recomputes the overlays for the file behind the given editor from
// the given full record list.
//
// All previously applied overlays for that file are detached first,
// unconditionally, even when the new record subsequence is empty. Afterwards
// the applied overlays are in 1:1 correspondence with the records anchored to
// that file: one inline label at the start line and one highlight over the
// recorded span per record.
func (e *Engine) Refresh(ed core.Editor, records []core.Tagged) {
	e.SetRecords(records)

	filePath := ed.Path()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.teardownLocked(filePath)

	bag := make(map[string][]core.OverlayHandle)
	count := 0
	for _, tagged := range records {
		rec := tagged.Record
		if rec.FilePath != filePath {
			continue
		}

		label := ed.ApplyLabel(rec.StartLine, labelText(rec), render.Markdown(rec))
		highlight := ed.ApplyHighlight(rec.Span())
		bag[rec.ID] = []core.OverlayHandle{label, highlight}
		count++
	}
	e.bags[filePath] = bag

	if e.logger != nil {
		e.logger.Debug("overlays refreshed", "filePath", filePath, "records", count)
	}
}

// Teardown detaches every overlay applied for the given file, e.g. when the
// host closes the document.
func (e *Engine) Teardown(filePath string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.teardownLocked(filePath)
}

// teardownLocked detaches and forgets the file's bag. Caller holds the lock.
func (e *Engine) teardownLocked(filePath string) {
	for _, handles := range e.bags[filePath] {
		for _, h := range handles {
			h.Detach()
		}
	}
	delete(e.bags, filePath)
}

// OverlayCount reports the number of live overlay handles for a file.
func (e *Engine) OverlayCount(filePath string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, handles := range e.bags[filePath] {
		n += len(handles)
	}
	return n
}

func labelText(rec core.Record) string {
	return "📝 " + core.Truncate(rec.Memo, labelPreviewLen)
}
