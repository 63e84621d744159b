// Package dashboard implements the in-memory query layer behind the
// clinical-records dashboard: pure filtering and aggregation over the
// patient collection, plus the guarded deletion flow.
package dashboard

import (
	"strings"
	"time"

	"github.com/odontoflow/odontoflow/internal/domain/record"
)

// Filter is the immutable filter-state tuple. Every field has an explicit
// unset sentinel (empty string, empty slice, zero time); an unset predicate
// is a no-op. Active predicates are AND-combined.
type Filter struct {
	// TextQuery matches case-insensitively as a substring of the record
	// name or its classification.
	TextQuery string

	// Classification, when set, must match exactly.
	Classification record.Classification

	// Procedures, when non-empty, passes records whose procedure set has a
	// non-empty intersection with it.
	Procedures []string

	// StartDate/EndDate bound CreatedAt inclusively, normalized to day
	// boundaries in the date's own location. Zero means unbounded.
	StartDate time.Time
	EndDate   time.Time
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.TextQuery == "" &&
		f.Classification == "" &&
		len(f.Procedures) == 0 &&
		f.StartDate.IsZero() &&
		f.EndDate.IsZero()
}

// Apply returns the stable-ordered subsequence of records passing every
// active predicate. The input slice is never mutated.
func (f Filter) Apply(records []record.Record) []record.Record {
	visible := make([]record.Record, 0, len(records))
	for _, r := range records {
		if f.matches(&r) {
			visible = append(visible, r)
		}
	}
	return visible
}

func (f Filter) matches(r *record.Record) bool {
	if f.TextQuery != "" && !matchesText(r, f.TextQuery) {
		return false
	}
	if f.Classification != "" && r.Classification != f.Classification {
		return false
	}
	if len(f.Procedures) > 0 && !intersects(r, f.Procedures) {
		return false
	}
	if !f.StartDate.IsZero() && r.CreatedAt.Before(startOfDay(f.StartDate)) {
		return false
	}
	if !f.EndDate.IsZero() && r.CreatedAt.After(endOfDay(f.EndDate)) {
		return false
	}
	return true
}

func matchesText(r *record.Record, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(string(r.Classification)), q)
}

func intersects(r *record.Record, selected []string) bool {
	for _, s := range selected {
		if r.HasProcedure(s) {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// sameDay reports whether two instants fall on the same calendar day in
// the reference time's location.
func sameDay(t, ref time.Time) bool {
	ty, tm, td := t.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	return ty == ry && tm == rm && td == rd
}
