package dashboard

import (
	"errors"

	"github.com/odontoflow/odontoflow/internal/domain/record"
)

var (
	ErrNothingStaged         = errors.New("no record staged for deletion")
	ErrConfirmationMismatch  = errors.New("confirmation text does not match the record name")
	ErrDifferentRecordStaged = errors.New("a different record is staged for deletion")
)

// DeletionGuard is the two-step confirmation state machine for destructive
// removals. It is either idle (nothing staged) or pending (one record staged
// with an in-progress confirmation text). Confirm only succeeds when the
// typed text equals the staged record's name exactly: case-sensitive, no
// trimming. The match is re-checked inside Confirm so callers cannot bypass
// it by skipping CanConfirm.
type DeletionGuard struct {
	staged       *record.Record
	confirmation string
}

// Stage moves the guard to pending for the given record and resets the
// confirmation text. Staging while already pending replaces the target.
func (g *DeletionGuard) Stage(r record.Record) {
	g.staged = &r
	g.confirmation = ""
}

// SetConfirmation records the current confirmation text as typed.
func (g *DeletionGuard) SetConfirmation(text string) {
	g.confirmation = text
}

// Pending returns the staged record, if any.
func (g *DeletionGuard) Pending() (record.Record, bool) {
	if g.staged == nil {
		return record.Record{}, false
	}
	return *g.staged, true
}

// CanConfirm reports whether the destructive action is currently permitted.
// This drives the interaction surface (e.g. a disabled button).
func (g *DeletionGuard) CanConfirm() bool {
	return g.staged != nil && g.confirmation == g.staged.Name
}

// Confirm finalizes the deletion, returning the staged record and resetting
// the guard to idle. It fails without side effects when nothing is staged
// or the confirmation text mismatches.
func (g *DeletionGuard) Confirm() (record.Record, error) {
	if g.staged == nil {
		return record.Record{}, ErrNothingStaged
	}
	if !g.CanConfirm() {
		return record.Record{}, ErrConfirmationMismatch
	}
	r := *g.staged
	g.reset()
	return r, nil
}

// Cancel unconditionally discards the staged record and returns to idle.
func (g *DeletionGuard) Cancel() {
	g.reset()
}

func (g *DeletionGuard) reset() {
	g.staged = nil
	g.confirmation = ""
}
