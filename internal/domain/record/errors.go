package record

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound        = errors.New("record not found")
	ErrInvalidClassification = errors.New("invalid classification value")
)

// RemoteError signals a failed operation against the record store. The
// wrapped error carries the human-readable cause; Op names the operation
// that failed.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("record store: %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
