// Package marginalia is the Composition Root for the marginalia application.
//
// It connects the core memo domain (store, reflection engine, capture) with
// the infrastructure adapters (filesystem persistence, git permalinks) using
// the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Marginalia treats code-reading notes as durable data. A memo anchors free
// text to an exact span of source code and survives alongside the project as
// plain files: a structured JSON record file per memo set, plus a regenerated
// Markdown narrative anyone can read without tooling. Editor hosts plug in
// through narrow capability interfaces; the core never talks to a concrete
// editor API.
//
// Features:
//
//   - **Anchored memos**: each record pins a file, a line/character span, a
//     verbatim snapshot of the selected text, and an optional remote permalink.
//   - **Two consistent views**: the in-memory store indexes every record by
//     source file and by memo set, kept in step on every mutation.
//   - **Leak-free reflection**: overlays for a file are fully torn down and
//     rebuilt on every refresh, so repeated refreshes never duplicate or leak.
//   - **Whole-file persistence**: every set mutation overwrites that set's
//     artifacts atomically; narrative files are regenerated, never patched.
//   - **Watchable**: external edits to memo files can be observed and the
//     store reloaded.
//
// Usage:
//
//	// Wire a session with host-provided prompt and message surfaces
//	sess, err := marginalia.New(projectRoot,
//		marginalia.WithPrompter(prompter),
//		marginalia.WithNotifier(notifier),
//		marginalia.WithLogger(logger),
//	)
//
//	// Add a memo for the current selection
//	err = sess.AddMemo(ctx, editor)
package marginalia
