package repl

import "errors"

// Sentinel errors.
var (
	ErrNoProgram    = errors.New("no program to explore")
	ErrOutOfBounds  = errors.New("index out of range")
	ErrEditDeclined = errors.New("decline edit")
)
