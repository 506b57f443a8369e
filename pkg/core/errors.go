package core

import "errors"

// Common errors.
var (
	// ErrNotFound is returned when no record matches the given id (and file path).
	ErrNotFound = errors.New("record not found")

	// ErrFilePathMismatch is returned by Store.Update when the replacement
	// record names a different file than the stored one. Re-anchoring a memo
	// to another file via update is unsupported.
	ErrFilePathMismatch = errors.New("record file path does not match stored record")

	// ErrDuplicateID is returned by Store.Add when the record's id is already taken.
	ErrDuplicateID = errors.New("record id already exists")
)
