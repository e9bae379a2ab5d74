package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C or Quit).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoAction is returned when an action prompt offers nothing to choose.
	ErrNoAction = errors.New("tui: no action available")
)
