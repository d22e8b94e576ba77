package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrUnknownFormat indicates a file extension with no loader.
	ErrUnknownFormat = errors.New("unknown config format")

	// ErrWatcherClosed indicates an operation on a closed watcher.
	ErrWatcherClosed = errors.New("config watcher closed")

	// ErrUnknownGesture indicates a binding for a gesture kind that does
	// not exist.
	ErrUnknownGesture = errors.New("unknown gesture in bindings")
)

// ParseError represents an error while decoding a configuration source.
type ParseError struct {
	// Path is the file path, or "<reader>" or "<env>".
	Path string
	// Format is the decoder that failed.
	Format Format
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s (%s): %v", e.Path, e.Format, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
