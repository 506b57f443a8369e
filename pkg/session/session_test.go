package session_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/marginalia/pkg/adapters/fs"
	"github.com/aretw0/marginalia/pkg/core"
	"github.com/aretw0/marginalia/pkg/session"
)

// scriptedPrompter replays canned answers; a nil entry means "dismissed".
type scriptedPrompter struct {
	picks  []*string
	inputs []*string
}

func answer(s string) *string { return &s }

func (p *scriptedPrompter) Pick(_ string, _ []string) (string, bool) {
	if len(p.picks) == 0 {
		return "", false
	}
	next := p.picks[0]
	p.picks = p.picks[1:]
	if next == nil {
		return "", false
	}
	return *next, true
}

func (p *scriptedPrompter) Input(_ string) (string, bool) {
	if len(p.inputs) == 0 {
		return "", false
	}
	next := p.inputs[0]
	p.inputs = p.inputs[1:]
	if next == nil {
		return "", false
	}
	return *next, true
}

type recordingNotifier struct {
	infos  []string
	errors []string
}

func (n *recordingNotifier) Info(msg string)  { n.infos = append(n.infos, msg) }
func (n *recordingNotifier) Error(msg string) { n.errors = append(n.errors, msg) }

type fakeEditor struct {
	path      string
	lines     []string
	selection core.Span
	live      int
}

type fakeHandle struct{ ed *fakeEditor }

func (h *fakeHandle) Detach() { h.ed.live-- }

func (e *fakeEditor) Path() string   { return e.path }
func (e *fakeEditor) LineCount() int { return len(e.lines) }

func (e *fakeEditor) Line(n int) (string, error) {
	if n < 0 || n >= len(e.lines) {
		return "", fmt.Errorf("line %d out of range", n)
	}
	return e.lines[n], nil
}

func (e *fakeEditor) Selection() (core.Span, bool) { return e.selection, true }

func (e *fakeEditor) ApplyLabel(int, string, string) core.OverlayHandle {
	e.live++
	return &fakeHandle{ed: e}
}

func (e *fakeEditor) ApplyHighlight(core.Span) core.OverlayHandle {
	e.live++
	return &fakeHandle{ed: e}
}

// appEditor returns an editor over src/app.ts with lines 10-12 selected
// (zero-based 9-11, chars 0-5).
func appEditor() *fakeEditor {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return &fakeEditor{
		path:      "src/app.ts",
		lines:     lines,
		selection: core.Span{StartLine: 9, StartCharacter: 0, EndLine: 11, EndCharacter: 5},
	}
}

func setupSession(t *testing.T, prompter *scriptedPrompter) (*session.Session, *recordingNotifier, string) {
	t.Helper()

	root := t.TempDir()
	gw := fs.NewGateway(fs.Config{Root: root, Suffix: "code_memo"})
	require.NoError(t, gw.Initialize())

	notifier := &recordingNotifier{}
	s, err := session.New(session.Config{
		Gateway:  gw,
		Prompter: prompter,
		Notifier: notifier,
	})
	require.NoError(t, err)

	return s, notifier, root
}

func readSet(t *testing.T, root, name string) []core.Record {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, name))
	require.NoError(t, err)
	var records []core.Record
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestAddMemo(t *testing.T) {
	prompter := &scriptedPrompter{
		picks:  []*string{answer("[Create new memo set]")},
		inputs: []*string{answer("Review"), answer("check null guard")},
	}
	s, notifier, root := setupSession(t, prompter)
	ed := appEditor()

	require.NoError(t, s.AddMemo(context.Background(), ed))

	records := readSet(t, root, "Review.code_memo.json")
	require.Len(t, records, 1)
	assert.Equal(t, "check null guard", records[0].Memo)
	assert.Equal(t, "src/app.ts", records[0].FilePath)
	assert.Equal(t, 9, records[0].StartLine)
	assert.Equal(t, "line 10\nline 11\nline 12", records[0].SelectedText)

	md, err := os.ReadFile(filepath.Join(root, "Review.code_memo.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "# Review\n"))
	assert.Contains(t, string(md), "check null guard")
	assert.Contains(t, string(md), "[[file](src/app.ts#L10)]")
	assert.Contains(t, string(md), "```ts\nline 10\nline 11\nline 12\n```")

	// One label and one highlight reflected onto the editor.
	assert.Equal(t, 2, ed.live)
	assert.Equal(t, []string{"Added memo!"}, notifier.infos)
}

func TestAddMemo_DismissedPromptAborts(t *testing.T) {
	cases := []struct {
		name     string
		prompter *scriptedPrompter
	}{
		{
			name:     "Dismissed Set Pick",
			prompter: &scriptedPrompter{picks: []*string{nil}},
		},
		{
			name: "Dismissed Title Input",
			prompter: &scriptedPrompter{
				picks:  []*string{answer("[Create new memo set]")},
				inputs: []*string{nil},
			},
		},
		{
			name: "Dismissed Memo Input",
			prompter: &scriptedPrompter{
				picks:  []*string{answer("[Create new memo set]")},
				inputs: []*string{answer("Review"), nil},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, notifier, root := setupSession(t, c.prompter)
			ed := appEditor()

			require.NoError(t, s.AddMemo(context.Background(), ed))

			assert.Zero(t, s.Store().Len(), "aborted command must not mutate the store")
			entries, _ := os.ReadDir(root)
			assert.Empty(t, entries, "aborted command must not touch disk")
			assert.NotEmpty(t, notifier.errors)
			assert.Zero(t, ed.live)
		})
	}
}

func TestAddMemo_NoEditor(t *testing.T) {
	s, notifier, _ := setupSession(t, &scriptedPrompter{})

	require.NoError(t, s.AddMemo(context.Background(), nil))
	assert.Equal(t, []string{"No active editor"}, notifier.errors)
}

func TestAddMemo_ExistingSet(t *testing.T) {
	prompter := &scriptedPrompter{
		picks:  []*string{answer("[Create new memo set]"), answer("Review")},
		inputs: []*string{answer("Review"), answer("first"), answer("second")},
	}
	s, _, root := setupSession(t, prompter)
	ed := appEditor()

	require.NoError(t, s.AddMemo(context.Background(), ed))
	require.NoError(t, s.AddMemo(context.Background(), ed))

	records := readSet(t, root, "Review.code_memo.json")
	require.Len(t, records, 2)
	assert.Equal(t, "first", records[0].Memo)
	assert.Equal(t, "second", records[1].Memo)
}

func TestUpdateMemo(t *testing.T) {
	prompter := &scriptedPrompter{
		picks:  []*string{answer("[Create new memo set]")},
		inputs: []*string{answer("Review"), answer("check null guard"), answer("fixed")},
	}
	s, _, root := setupSession(t, prompter)
	ed := appEditor()

	require.NoError(t, s.AddMemo(context.Background(), ed))
	id := s.Store().All()[0].Record.ID

	require.NoError(t, s.UpdateMemo(context.Background(), ed, "src/app.ts", id))

	records := readSet(t, root, "Review.code_memo.json")
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID, "update must preserve identity")
	assert.Equal(t, "fixed", records[0].Memo)

	// Still exactly one overlay pair after the refresh.
	assert.Equal(t, 2, ed.live)
}

func TestUpdateMemo_NotFound(t *testing.T) {
	s, notifier, _ := setupSession(t, &scriptedPrompter{})

	require.NoError(t, s.UpdateMemo(context.Background(), nil, "src/app.ts", "ghost"))
	assert.Equal(t, []string{"Memo not found"}, notifier.errors)
}

func TestRemoveMemo(t *testing.T) {
	prompter := &scriptedPrompter{
		picks:  []*string{answer("[Create new memo set]")},
		inputs: []*string{answer("Review"), answer("check null guard")},
	}
	s, _, root := setupSession(t, prompter)
	ed := appEditor()

	require.NoError(t, s.AddMemo(context.Background(), ed))
	id := s.Store().All()[0].Record.ID

	require.NoError(t, s.RemoveMemo(ed, "src/app.ts", id))

	data, err := os.ReadFile(filepath.Join(root, "Review.code_memo.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)), "emptied set must serialize as []")

	assert.Zero(t, s.Store().Len())
	assert.Zero(t, ed.live, "overlays must disappear with the memo")
}

func TestFileOpened_ReflectsSeededState(t *testing.T) {
	prompter := &scriptedPrompter{
		picks:  []*string{answer("[Create new memo set]")},
		inputs: []*string{answer("Review"), answer("check null guard")},
	}
	s, _, root := setupSession(t, prompter)
	require.NoError(t, s.AddMemo(context.Background(), appEditor()))

	// A second session over the same root sees the persisted state.
	gw := fs.NewGateway(fs.Config{Root: root, Suffix: "code_memo"})
	reopened, err := session.New(session.Config{
		Gateway:  gw,
		Prompter: &scriptedPrompter{},
		Notifier: &recordingNotifier{},
	})
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Store().Len())

	ed := appEditor()
	reopened.FileOpened(ed)
	assert.Equal(t, 2, ed.live)

	// Opening a file with no memos applies nothing.
	other := &fakeEditor{path: "src/other.ts", lines: []string{"x"}}
	reopened.FileOpened(other)
	assert.Zero(t, other.live)
}

func TestReload_PicksUpExternalChanges(t *testing.T) {
	s, _, root := setupSession(t, &scriptedPrompter{})
	require.Zero(t, s.Store().Len())

	external := []core.Record{{
		ID:       "ext-1",
		FilePath: "src/app.ts",
		Memo:     "written by another process",
	}}
	data, _ := json.MarshalIndent(external, "", "  ")
	require.NoError(t, os.WriteFile(filepath.Join(root, "External.code_memo.json"), data, 0644))

	require.NoError(t, s.Reload())

	assert.Equal(t, 1, s.Store().Len())
	tagged, ok := s.Store().Find("src/app.ts", "ext-1")
	require.True(t, ok)
	assert.Equal(t, "External", tagged.Set)
}
