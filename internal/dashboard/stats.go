package dashboard

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/odontoflow/odontoflow/internal/domain/record"
)

const topProcedureLimit = 5

type ClassificationCount struct {
	Classification record.Classification `json:"classification"`
	Count          int                   `json:"count"`
}

type ProcedureCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Summary struct {
	// VisibleCount is the number of records passing all active filters.
	VisibleCount int `json:"visible_count"`
	// ProceduresRealized is the sum of all counted procedure occurrences.
	ProceduresRealized int `json:"procedures_realized"`
	// TodayCount is the number of visible records created on the current
	// calendar day.
	TodayCount int `json:"today_count"`
	// PercentOfTotal is VisibleCount as a percentage of the full
	// collection, rounded to the nearest integer. Zero when the
	// collection is empty.
	PercentOfTotal int `json:"percent_of_total"`
}

// View is the derived state the dashboard renders: the visible subsequence
// plus every aggregate computed over it.
type View struct {
	Visible                 []record.Record       `json:"visible"`
	ProcedureCounts         map[string]int        `json:"procedure_counts"`
	ClassificationBreakdown []ClassificationCount `json:"classification_breakdown"`
	TopProcedures           []ProcedureCount      `json:"top_procedures"`
	Summary                 Summary               `json:"summary"`
}

// BuildView filters the collection and derives all dashboard aggregates.
// Pure: identical inputs always produce identical views. The reference time
// is passed in so "today" stays testable.
func BuildView(records []record.Record, f Filter, now time.Time) View {
	visible := f.Apply(records)

	counts := procedureCounts(visible, f.Procedures)

	realized := 0
	for _, c := range counts {
		realized += c
	}

	today := 0
	for _, r := range visible {
		if sameDay(r.CreatedAt, now) {
			today++
		}
	}

	percent := 0
	if len(records) > 0 {
		percent = int(math.Round(float64(len(visible)) / float64(len(records)) * 100))
	}

	return View{
		Visible:                 visible,
		ProcedureCounts:         counts,
		ClassificationBreakdown: classificationBreakdown(visible),
		TopProcedures:           topProcedures(counts),
		Summary: Summary{
			VisibleCount:       len(visible),
			ProceduresRealized: realized,
			TodayCount:         today,
			PercentOfTotal:     percent,
		},
	}
}

// procedureCounts tallies procedure occurrences across the visible records.
// When a procedure filter is active, only the selected procedures appear in
// the map at all; others are excluded, not zeroed.
func procedureCounts(visible []record.Record, selected []string) map[string]int {
	var allow map[string]bool
	if len(selected) > 0 {
		allow = make(map[string]bool, len(selected))
		for _, s := range selected {
			allow[s] = true
		}
	}

	counts := make(map[string]int)
	for _, r := range visible {
		for _, p := range r.Procedures {
			name := strings.TrimSpace(p)
			if allow != nil && !allow[name] {
				continue
			}
			counts[name]++
		}
	}
	return counts
}

// classificationBreakdown counts visible records per classification in enum
// order, omitting zero-count entries from the chart-ready output.
func classificationBreakdown(visible []record.Record) []ClassificationCount {
	tally := make(map[record.Classification]int, 4)
	for _, r := range visible {
		tally[r.Classification]++
	}

	var out []ClassificationCount
	for _, c := range record.Classifications() {
		if n := tally[c]; n > 0 {
			out = append(out, ClassificationCount{Classification: c, Count: n})
		}
	}
	return out
}

// topProcedures ranks counted procedures descending by count, breaking ties
// by vocabulary enumeration order. Names outside the vocabulary rank after
// every vocabulary entry, ordered by name. Truncated to the top five.
func topProcedures(counts map[string]int) []ProcedureCount {
	ranked := make([]ProcedureCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, ProcedureCount{Name: name, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		ri, iKnown := record.ProcedureRank(ranked[i].Name)
		rj, jKnown := record.ProcedureRank(ranked[j].Name)
		if ri != rj {
			return ri < rj
		}
		// Both outside the vocabulary: fall back to name order.
		if !iKnown && !jKnown {
			return ranked[i].Name < ranked[j].Name
		}
		return false
	})

	if len(ranked) > topProcedureLimit {
		ranked = ranked[:topProcedureLimit]
	}
	return ranked
}
