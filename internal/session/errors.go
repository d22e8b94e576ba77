package session

import "errors"

var (
	// ErrNoScript indicates a script that does not define on_gesture.
	ErrNoScript = errors.New("script does not define on_gesture")

	// ErrScriptClosed indicates a call on a closed script.
	ErrScriptClosed = errors.New("script is closed")

	// ErrScriptTimeout indicates on_gesture ran past its time limit.
	ErrScriptTimeout = errors.New("script timed out")
)
