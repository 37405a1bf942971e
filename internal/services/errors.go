package services

import "fmt"

// Error codes reported to clients in error frames and HTTP envelopes.
const (
	CodeInvalidName   = "INVALID_NAME"
	CodePersistFailed = "PERSIST_FAILED"
)

type InvalidNameError struct{ Name string }

func (e *InvalidNameError) Error() string {
	return fmt.Sprintf("invalid file name %q", e.Name)
}

// PersistError reports a failed directory creation or write under the
// workspace root.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
