// Package session orchestrates the interactive memo commands for one project
// root: adding, updating and removing memos, and reflecting store state onto
// open editors.
//
// All mutations run on the host's event loop, one handler at a time; the only
// suspension points are the interactive prompts, and a dismissed prompt
// aborts the whole command without touching store or disk. After the last
// prompt a command runs straight through: build the record, mutate the store,
// write the set, refresh reflection.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/marginalia/pkg/capture"
	"github.com/aretw0/marginalia/pkg/core"
	"github.com/aretw0/marginalia/pkg/reflector"
)

// newSetOption is the quick-pick entry for creating a memo set.
const newSetOption = "[Create new memo set]"

// Config wires a Session's collaborators. Gateway, Prompter and Notifier are
// required; RemoteLinker and Logger may be nil.
type Config struct {
	Gateway      core.Gateway
	Prompter     core.Prompter
	Notifier     core.Notifier
	RemoteLinker core.RemoteLinker
	Logger       *slog.Logger
}

// Session is the live memo state for one project root.
type Session struct {
	store    *core.Store
	engine   *reflector.Engine
	gateway  core.Gateway
	prompter core.Prompter
	notify   core.Notifier
	linker   core.RemoteLinker
	logger   *slog.Logger
}

// New creates a Session and seeds its store from the memo sets already on
// disk. Discovery happens once here; afterwards the in-memory store is the
// single source of truth and disk is only written, not re-read (unless the
// host reloads on watch events).
func New(cfg Config) (*Session, error) {
	if cfg.Gateway == nil {
		return nil, errors.New("session requires a gateway")
	}
	if cfg.Prompter == nil || cfg.Notifier == nil {
		return nil, errors.New("session requires a prompter and a notifier")
	}

	s := &Session{
		store:    core.NewStore(cfg.Logger),
		engine:   reflector.NewEngine(cfg.Logger),
		gateway:  cfg.Gateway,
		prompter: cfg.Prompter,
		notify:   cfg.Notifier,
		linker:   cfg.RemoteLinker,
		logger:   cfg.Logger,
	}

	index, err := cfg.Gateway.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load memo sets: %w", err)
	}
	s.store.Seed(index)
	s.engine.SetRecords(s.store.All())

	return s, nil
}

// Store exposes the session's record index.
func (s *Session) Store() *core.Store { return s.store }

// Engine exposes the reflection engine, e.g. so the host can register the
// lens provider and its change notification.
func (s *Session) Engine() *reflector.Engine { return s.engine }

// AddMemo runs the interactive add flow against the given editor: choose or
// create a memo set, input the memo text, capture the selection, persist and
// reflect. Dismissing any prompt aborts with no state change.
func (s *Session) AddMemo(ctx context.Context, ed core.Editor) error {
	if ed == nil {
		s.notify.Error("No active editor")
		return nil
	}
	span, ok := ed.Selection()
	if !ok {
		s.notify.Error("Nothing selected")
		return nil
	}

	set, ok := s.chooseSet()
	if !ok {
		s.notify.Error("Please select a memo set")
		return nil
	}

	memoText, ok := s.prompter.Input("Input memo")
	if !ok {
		s.notify.Error("Please input a memo")
		return nil
	}

	rec, err := capture.Build(ctx, memoText, ed, span, s.linker)
	if err != nil {
		return fmt.Errorf("failed to capture selection: %w", err)
	}

	if err := s.store.Add(set, rec); err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}
	if err := s.flush(set); err != nil {
		return err
	}
	s.engine.Refresh(ed, s.store.All())

	s.notify.Info("Added memo!")
	return nil
}

// UpdateMemo replaces the memo text of the record identified by
// (filePath, id), as invoked from an update lens.
func (s *Session) UpdateMemo(ctx context.Context, ed core.Editor, filePath, id string) error {
	tagged, ok := s.store.Find(filePath, id)
	if !ok {
		s.notify.Error("Memo not found")
		return nil
	}

	memoText, ok := s.prompter.Input("Update memo")
	if !ok {
		s.notify.Error("Please input a memo")
		return nil
	}

	updated := tagged.Record
	updated.Memo = memoText
	if err := s.store.Update(id, updated); err != nil {
		return fmt.Errorf("failed to update record: %w", err)
	}
	if err := s.flush(tagged.Set); err != nil {
		return err
	}
	s.reflect(ed)

	s.notify.Info("Updated memo!")
	return nil
}

// RemoveMemo deletes the record identified by (filePath, id), as invoked
// from a remove lens.
func (s *Session) RemoveMemo(ed core.Editor, filePath, id string) error {
	tagged, ok := s.store.Find(filePath, id)
	if !ok {
		s.notify.Error("Memo not found")
		return nil
	}

	if err := s.store.Delete(id, filePath); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	if err := s.flush(tagged.Set); err != nil {
		return err
	}
	s.reflect(ed)

	s.notify.Info("Removed memo!")
	return nil
}

// FileOpened reflects the store's current state onto a newly opened or
// focused editor.
func (s *Session) FileOpened(ed core.Editor) {
	s.engine.Refresh(ed, s.store.All())
}

// Reload replays the on-disk memo sets into a fresh index, e.g. after a
// watch event reported an external change.
func (s *Session) Reload() error {
	index, err := s.gateway.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to reload memo sets: %w", err)
	}
	s.store.Seed(index)
	s.engine.SetRecords(s.store.All())
	return nil
}

// Watch observes external changes to the memo set artifacts and reloads the
// store on each, until ctx is cancelled. The gateway must support watching.
func (s *Session) Watch(ctx context.Context) error {
	w, ok := s.gateway.(core.Watchable)
	if !ok {
		return errors.New("gateway does not support watching")
	}

	events, err := w.Watch(ctx)
	if err != nil {
		return err
	}

	go func() {
		for event := range events {
			if s.logger != nil {
				s.logger.Debug("memo set changed on disk", "event", event.String())
			}
			if err := s.Reload(); err != nil && s.logger != nil {
				s.logger.Warn("reload after external change failed", "error", err)
			}
		}
	}()
	return nil
}

// chooseSet asks the user to pick an existing memo set or create a new one.
func (s *Session) chooseSet() (string, bool) {
	titles, err := s.gateway.DiscoverTitles()
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to discover memo sets", "error", err)
		}
		titles = nil
	}

	options := append([]string{newSetOption}, titles...)
	selected, ok := s.prompter.Pick("Create new memo set or select an existing one", options)
	if !ok {
		return "", false
	}
	if selected != newSetOption {
		return selected, true
	}

	title, ok := s.prompter.Input("Input memo set title")
	if !ok || title == "" {
		return "", false
	}
	return title, true
}

// flush overwrites the on-disk artifacts of one memo set with the store's
// current authoritative view of it.
func (s *Session) flush(set string) error {
	records := make([]core.Record, 0)
	for _, tagged := range s.store.BySet(set) {
		records = append(records, tagged.Record)
	}

	if _, _, err := s.gateway.WriteSet(set, records); err != nil {
		return fmt.Errorf("failed to write memo set %q: %w", set, err)
	}
	return nil
}

// reflect refreshes overlays when an editor is visible, and otherwise only
// re-derives the lens state.
func (s *Session) reflect(ed core.Editor) {
	if ed != nil {
		s.engine.Refresh(ed, s.store.All())
		return
	}
	s.engine.SetRecords(s.store.All())
}
