package reflector

import (
	"fmt"

	"github.com/aretw0/marginalia/pkg/core"
)

// Command identifies the action a lens invokes.
type Command string

const (
	CommandUpdate Command = "marginalia.updateMemo"
	CommandRemove Command = "marginalia.removeMemo"
)

// Lens is an actionable affordance positioned at a record's range. FilePath
// and ID are the invocation arguments for the command.
type Lens struct {
	Span     core.Span
	Title    string
	Command  Command
	FilePath string
	ID       string
}

// Lenses recomputes the affordances for the given file from the engine's
// current record list: one update and one remove lens per record, in record
// order. The result is rebuilt from scratch on every call, never patched.
func (e *Engine) Lenses(filePath string) []Lens {
	e.mu.Lock()
	records := e.records
	e.mu.Unlock()

	var lenses []Lens
	for _, tagged := range records {
		rec := tagged.Record
		if rec.FilePath != filePath {
			continue
		}

		preview := core.Truncate(rec.Memo, lensPreviewLen)
		lenses = append(lenses,
			Lens{
				Span:     rec.Span(),
				Title:    fmt.Sprintf("Update %q", preview),
				Command:  CommandUpdate,
				FilePath: rec.FilePath,
				ID:       rec.ID,
			},
			Lens{
				Span:     rec.Span(),
				Title:    fmt.Sprintf("Remove %q", preview),
				Command:  CommandRemove,
				FilePath: rec.FilePath,
				ID:       rec.ID,
			},
		)
	}
	return lenses
}
