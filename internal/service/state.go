package service

import (
	"github.com/google/uuid"

	"github.com/odontoflow/odontoflow/internal/domain/record"
)

// Pure reducer-style transitions over the in-memory collection. Each takes
// the old slice and returns a fresh one; callers own all mutation points.

func prepend(records []record.Record, r record.Record) []record.Record {
	out := make([]record.Record, 0, len(records)+1)
	out = append(out, r)
	return append(out, records...)
}

func replace(records []record.Record, id uuid.UUID, r record.Record) ([]record.Record, bool) {
	out := make([]record.Record, len(records))
	copy(out, records)
	for i := range out {
		if out[i].ID == id {
			out[i] = r
			return out, true
		}
	}
	return out, false
}

// remove drops the record with the given ID, reporting the removed record
// and its index so a failed remote delete can be rolled back in place.
func remove(records []record.Record, id uuid.UUID) ([]record.Record, record.Record, int, bool) {
	for i := range records {
		if records[i].ID == id {
			out := make([]record.Record, 0, len(records)-1)
			out = append(out, records[:i]...)
			out = append(out, records[i+1:]...)
			return out, records[i], i, true
		}
	}
	return records, record.Record{}, -1, false
}

func insertAt(records []record.Record, i int, r record.Record) []record.Record {
	if i < 0 || i > len(records) {
		i = len(records)
	}
	out := make([]record.Record, 0, len(records)+1)
	out = append(out, records[:i]...)
	out = append(out, r)
	return append(out, records[i:]...)
}
