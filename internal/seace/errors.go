package seace

import "fmt"

// ValidationError rejects a malformed CUI or an out-of-range year before
// any navigation happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ExtractionError means a required navigation step did not complete
// after exhausting its retries.
type ExtractionError struct {
	Paso string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("error en paso %q", e.Paso)
	}
	return fmt.Sprintf("error en paso %q: %v", e.Paso, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Error is the top-level wrapper, the only error type external callers
// need to branch on. The original cause stays reachable via errors.As.
type Error struct {
	Err error
}

func (e *Error) Error() string {
	return "error al consultar SEACE: " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Err: err}
}
