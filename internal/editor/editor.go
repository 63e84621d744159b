// Package editor validates and normalizes user input into record payloads.
// It supports two modes: create (no prior record) and edit (prior record
// supplied, fields pre-populated from it).
package editor

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/odontoflow/odontoflow/internal/domain/record"
)

// ValidationError collects every failed field check for one submission.
// No partial submission happens: a single violation blocks the whole form.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// Form holds the editable fields of a record as entered by the user.
type Form struct {
	Name           string                `json:"name"`
	Classification record.Classification `json:"classification"`
	Procedures     []string              `json:"procedures"`
	Notes          string                `json:"notes"`
}

// Editor owns form state for one create or edit flow.
type Editor struct {
	form  Form
	prior *record.Record
}

// New returns an editor in create mode with a default (empty) form.
func New() *Editor {
	return &Editor{}
}

// NewFor returns an editor in edit mode with the form pre-populated from
// the prior record.
func NewFor(prior record.Record) *Editor {
	return &Editor{
		form: Form{
			Name:           prior.Name,
			Classification: prior.Classification,
			Procedures:     append([]string(nil), prior.Procedures...),
			Notes:          prior.Notes,
		},
		prior: &prior,
	}
}

// Fill replaces the current form values wholesale.
func (e *Editor) Fill(f Form) {
	e.form = f
}

// Form returns the current form state.
func (e *Editor) Form() Form {
	return e.form
}

// Editing reports whether the editor is in edit mode.
func (e *Editor) Editing() bool {
	return e.prior != nil
}

// ToggleProcedure adds the procedure to the selection, or removes it when
// already selected.
func (e *Editor) ToggleProcedure(name string) {
	for i, p := range e.form.Procedures {
		if p == name {
			e.form.Procedures = append(e.form.Procedures[:i], e.form.Procedures[i+1:]...)
			return
		}
	}
	e.form.Procedures = append(e.form.Procedures, name)
}

// Submit validates the form and emits the resulting record. In create mode
// the record receives a fresh unique ID and CreatedAt = now; in edit mode
// the prior ID and CreatedAt are preserved and every other field is replaced
// (Notes may be cleared). On success the form resets to defaults; on
// validation failure nothing changes.
func (e *Editor) Submit(now time.Time) (record.Record, error) {
	f := e.form.normalized()
	if err := f.Validate(); err != nil {
		return record.Record{}, err
	}

	r := record.Record{
		ID:             uuid.New(),
		CreatedAt:      now,
		Name:           f.Name,
		Classification: f.Classification,
		Procedures:     f.Procedures,
		Notes:          f.Notes,
	}
	if e.prior != nil {
		r.ID = e.prior.ID
		r.CreatedAt = e.prior.CreatedAt
	}

	e.form = Form{}
	e.prior = nil
	return r, nil
}

// Validate checks the form against the submission rules: name non-empty,
// classification a member of the fixed enum, at least one procedure and
// every procedure from the controlled vocabulary.
func (f Form) Validate() error {
	var errs []string

	if strings.TrimSpace(f.Name) == "" {
		errs = append(errs, "name is required")
	}
	if f.Classification == "" {
		errs = append(errs, "classification is required")
	} else if !f.Classification.IsValid() {
		errs = append(errs, "classification is invalid")
	}
	if len(f.Procedures) == 0 {
		errs = append(errs, "at least one procedure is required")
	}
	for _, p := range f.Procedures {
		if !record.IsKnownProcedure(strings.TrimSpace(p)) {
			errs = append(errs, "unknown procedure: "+p)
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}

func (f Form) normalized() Form {
	out := Form{
		Name:           strings.TrimSpace(f.Name),
		Classification: f.Classification,
		Notes:          strings.TrimSpace(f.Notes),
	}
	for _, p := range f.Procedures {
		if t := strings.TrimSpace(p); t != "" {
			out.Procedures = append(out.Procedures, t)
		}
	}
	return out
}
