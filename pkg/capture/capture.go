// Package capture builds memo records from raw editor selections.
//
// It is a pure transformation: no storage, no overlay state. The only
// external touch is the optional remote link lookup, which is best-effort.
package capture

import (
	"context"
	"strings"
	"time"

	"github.com/aretw0/marginalia/pkg/core"
)

// lookupTimeout bounds the remote link lookup so a hung external process
// cannot stall the add-memo flow.
const lookupTimeout = 3 * time.Second

// Build constructs a Record from the memo text, the document the selection
// lives in, and the selection span.
//
// The selected text snapshot covers every whole line the span touches,
// from StartLine through EndLine inclusive, joined with newlines. Characters
// beyond the span's end column on the last line are included deliberately:
// the snapshot is a readable excerpt, not an exact slice.
//
// The linker may be nil; lookup failure of any kind degrades to no link.
func Build(ctx context.Context, memo string, doc core.Document, span core.Span, linker core.RemoteLinker) (core.Record, error) {
	lines := make([]string, 0, span.EndLine-span.StartLine+1)
	for n := span.StartLine; n <= span.EndLine; n++ {
		text, err := doc.Line(n)
		if err != nil {
			return core.Record{}, err
		}
		lines = append(lines, text)
	}

	rec := core.Record{
		ID:             core.NewID(),
		FilePath:       doc.Path(),
		StartLine:      span.StartLine,
		StartCharacter: span.StartCharacter,
		EndLine:        span.EndLine,
		EndCharacter:   span.EndCharacter,
		Memo:           memo,
		SelectedText:   strings.Join(lines, "\n"),
	}

	if linker != nil {
		lookupCtx, cancel := context.WithTimeout(ctx, lookupTimeout)
		defer cancel()

		if url, ok := linker.FileURL(lookupCtx, doc.Path()); ok {
			rec.RemoteLink = url
		}
	}

	return rec, nil
}
