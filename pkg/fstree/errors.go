package fstree

import (
	"errors"
	"fmt"
)

// Error represents a failure while building or querying a tree.
//
// Parse failures carry the 1-based line number and the offending line so that
// callers can report exactly where a transcript went wrong. Query failures
// leave Line at zero.
type Error struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Line is the 1-based transcript line (0 when not parsing)
	Line int

	// Text is the raw transcript line that caused the error
	Text string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Message, e.Text)
	}
	return e.Message
}

// ErrorCode represents the category of a tree error.
type ErrorCode int

const (
	// ErrSyntax indicates a line matching none of the transcript forms
	ErrSyntax ErrorCode = iota + 1

	// ErrInvalidSize indicates a file listing whose size is not an unsigned integer
	ErrInvalidSize

	// ErrNotFound indicates `cd` to a name absent from the current directory
	ErrNotFound

	// ErrNotDirectory indicates an operation expected a directory but got a file
	ErrNotDirectory

	// ErrAboveRoot indicates `cd ..` while the cursor is the root
	ErrAboveRoot

	// ErrAlreadyExists indicates a listing that conflicts with an existing entry
	ErrAlreadyExists

	// ErrInvalidIndex indicates an arena index out of range
	ErrInvalidIndex

	// ErrSealed indicates a structural change after aggregation
	ErrSealed

	// ErrNoCandidate indicates no directory satisfies a free-space requirement
	ErrNoCandidate
)

func (c ErrorCode) String() string {
	switch c {
	case ErrSyntax:
		return "syntax"
	case ErrInvalidSize:
		return "invalid size"
	case ErrNotFound:
		return "not found"
	case ErrNotDirectory:
		return "not a directory"
	case ErrAboveRoot:
		return "above root"
	case ErrAlreadyExists:
		return "already exists"
	case ErrInvalidIndex:
		return "invalid index"
	case ErrSealed:
		return "sealed"
	case ErrNoCandidate:
		return "no candidate"
	default:
		return "unknown"
	}
}

// IsCode reports whether err is (or wraps) an *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	var treeErr *Error
	return errors.As(err, &treeErr) && treeErr.Code == code
}

func newError(code ErrorCode, format string, v ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, v...)}
}

// atLine attaches transcript position to err when it is a tree error.
func atLine(err error, line int, text string) error {
	var treeErr *Error
	if errors.As(err, &treeErr) && treeErr.Line == 0 {
		treeErr.Line = line
		treeErr.Text = text
	}
	return err
}
