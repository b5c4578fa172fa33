package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (Ctrl+C or a declined
	// confirmation).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalid is returned when the collected values still fail
	// validation after the retry budget is spent.
	ErrInvalid = errors.New("tui: submission invalid")
)
