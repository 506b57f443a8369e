package core

import "context"

// This file defines the capability surface the core consumes from its host
// (an editor integration) and from its persistence adapter. Adhering to these
// interfaces keeps the domain independent of any concrete editor API or
// storage mechanism.

// Document gives line-indexed read access to an open source file.
type Document interface {
	// Path returns the project-relative path of the backing file.
	Path() string

	// Line returns the full text of the zero-based line n, without the
	// trailing newline.
	Line(n int) (string, error)

	// LineCount returns the number of lines in the document.
	LineCount() int
}

// OverlayHandle is an applied visual decoration. Detach removes it from the
// editor and releases it; a detached handle is dead and must not be reused.
type OverlayHandle interface {
	Detach()
}

// Editor is an open, visible document the core can decorate.
type Editor interface {
	Document

	// Selection returns the current selection span, or false when nothing
	// is selected.
	Selection() (Span, bool)

	// ApplyLabel attaches an after-line text label at (line, 0). The hover
	// text is shown when the user inspects the label.
	ApplyLabel(line int, text, hover string) OverlayHandle

	// ApplyHighlight attaches a background highlight over the given span.
	ApplyHighlight(span Span) OverlayHandle
}

// Prompter is the interactive input surface. Both methods return ok=false
// when the user dismisses the prompt; handlers must treat that as a no-op
// abort.
type Prompter interface {
	// Pick asks the user to choose one of the given options.
	Pick(prompt string, options []string) (string, bool)

	// Input asks the user for a single line of free text.
	Input(prompt string) (string, bool)
}

// Notifier surfaces transient messages to the user.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// Gateway translates between the Store's in-memory shape and the per-set
// on-disk artifacts in the project root.
type Gateway interface {
	// DiscoverTitles lists the titles of all memo sets present on disk.
	DiscoverTitles() ([]string, error)

	// LoadAll reads every memo set record file and re-indexes the records
	// by file path, the exact shape Store.Seed consumes. A malformed file
	// is skipped with a warning; it never aborts loading of the others.
	LoadAll() (map[string][]Tagged, error)

	// WriteSet overwrites both artifacts for one memo set with the given
	// complete, current record list. It returns the structured (JSON) and
	// narrative (Markdown) file paths.
	WriteSet(title string, records []Record) (structuredPath, narrativePath string, err error)
}

// Watchable is implemented by gateways that can observe external changes to
// the on-disk memo set artifacts.
type Watchable interface {
	// Watch emits one event per externally changed memo set until ctx is
	// cancelled. The returned channel is closed on cancellation.
	Watch(ctx context.Context) (<-chan Event, error)
}

// RemoteLinker derives a permanent remote URL for a project-relative file,
// typically from the project's git checkout. Lookup is best-effort: any
// failure (no repository, no remote, unrecognized host) yields ok=false,
// never an error.
type RemoteLinker interface {
	FileURL(ctx context.Context, relPath string) (url string, ok bool)
}
