package main

import "fmt"

const (
	// exitCodeTreeInconsistent reports a singleton application type with
	// more than one instance.
	exitCodeTreeInconsistent = 2
	exitCodeCanceled         = 130
)

// exitError carries a specific process exit code out of a command.
type exitError struct {
	code   int
	err    error
	silent bool
}

func (e *exitError) Error() string {
	if e == nil {
		return ""
	}
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit %d", e.code)
}

func (e *exitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// cause returns the wrapped error, or fallback for a bare exit code.
func (e *exitError) cause(fallback error) error {
	if e != nil && e.err != nil {
		return e.err
	}
	return fallback
}
