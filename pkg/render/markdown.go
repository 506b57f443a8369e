// Package render produces the human-readable Markdown form of a memo record.
//
// The output is shared byte-for-byte between the reflection engine's hover
// surface and the gateway's exported narrative file, so Markdown must stay
// pure and deterministic.
package render

import (
	"fmt"
	"path"
	"strings"

	"github.com/aretw0/marginalia/pkg/core"
)

// Markdown renders one record as a Markdown block: the memo text, a link to
// the local file at the start line, optionally a link to the remote permalink
// with a line/character range suffix, then a fenced code block containing the
// captured text tagged with the file's extension.
//
// Line and character fragments are one-based, matching what code hosts expect
// in URL fragments.
func Markdown(r core.Record) string {
	var b strings.Builder

	b.WriteString(r.Memo)
	b.WriteString("  \n")
	fmt.Fprintf(&b, "[[file](%s#L%d)]", r.FilePath, r.StartLine+1)

	if r.RemoteLink != "" {
		fmt.Fprintf(&b, " [[remote](%s#L%dC%d-L%dC%d)]",
			r.RemoteLink,
			r.StartLine+1, r.StartCharacter+1,
			r.EndLine+1, r.EndCharacter+1,
		)
	}

	b.WriteString("\n\n")
	fmt.Fprintf(&b, "```%s\n%s\n```\n", fileExt(r.FilePath), r.SelectedText)

	return b.String()
}

// fileExt returns the extension without the leading dot, used as the fence
// language tag. An extensionless file yields an untagged fence.
func fileExt(filePath string) string {
	ext := path.Ext(filePath)
	return strings.TrimPrefix(ext, ".")
}
