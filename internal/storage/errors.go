package storage

import "fmt"

// Error records a failed storage operation together with the slot it
// targeted. It never carries secret material.
type Error struct {
	Op   string
	Slot string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("wallet %s %q: %v", e.Op, e.Slot, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
