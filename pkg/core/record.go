package core

import (
	"strings"

	"github.com/google/uuid"
)

// Record is the central entity of the domain: one memo anchored to a span of
// source code. The span coordinates are zero-based and captured at creation
// time; they are never re-validated against the current file content.
type Record struct {
	ID             string `json:"id"`
	FilePath       string `json:"filePath"`
	RemoteLink     string `json:"remoteLink,omitempty"`
	StartLine      int    `json:"startLine"`
	StartCharacter int    `json:"startCharacter"`
	EndLine        int    `json:"endLine"`
	EndCharacter   int    `json:"endCharacter"`
	Memo           string `json:"memo"`
	SelectedText   string `json:"selectedText"`
}

// Span is a zero-based region of a document, end-inclusive on EndLine.
type Span struct {
	StartLine      int
	StartCharacter int
	EndLine        int
	EndCharacter   int
}

// Span returns the record's anchor as a Span.
func (r Record) Span() Span {
	return Span{
		StartLine:      r.StartLine,
		StartCharacter: r.StartCharacter,
		EndLine:        r.EndLine,
		EndCharacter:   r.EndCharacter,
	}
}

// Tagged pairs a Record with the title of the memo set it belongs to.
// It is the unit both store views and the persistence index are built from.
type Tagged struct {
	Set    string
	Record Record
}

// NewID generates a fresh record identifier.
func NewID() string {
	return uuid.NewString()
}

// NormalizeTitle makes a user-chosen memo set title safe to use as a file
// name component. Path separators are replaced, nothing else is touched so
// the title stays recognizable.
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "/", "_")
	return strings.ReplaceAll(title, "\\", "_")
}

// Truncate shortens s to at most n runes, appending an ellipsis marker when
// anything was cut off.
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
