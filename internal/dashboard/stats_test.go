package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontoflow/odontoflow/internal/domain/record"
)

var statsNow = time.Date(2026, 3, 10, 16, 0, 0, 0, time.Local)

func TestBuildViewEmptyCollection(t *testing.T) {
	view := BuildView(nil, Filter{}, statsNow)

	assert.Empty(t, view.Visible)
	assert.Empty(t, view.ProcedureCounts)
	assert.Empty(t, view.ClassificationBreakdown)
	assert.Empty(t, view.TopProcedures)
	assert.Zero(t, view.Summary.VisibleCount)
	assert.Zero(t, view.Summary.ProceduresRealized)
	assert.Zero(t, view.Summary.TodayCount)
	assert.Zero(t, view.Summary.PercentOfTotal)
}

// Three records classified [MA, MI, MA]: filtering by MA yields two visible
// records and a breakdown containing only MA (zero-count MI is omitted).
func TestClassificationBreakdownOmitsZeroCounts(t *testing.T) {
	records := []record.Record{
		newRecord("Ana", record.ClassificationMA, []string{"Urgência"}, statsNow),
		newRecord("Bruno", record.ClassificationMI, []string{"Urgência"}, statsNow),
		newRecord("Carla", record.ClassificationMA, []string{"Urgência"}, statsNow),
	}

	view := BuildView(records, Filter{Classification: record.ClassificationMA}, statsNow)

	assert.Len(t, view.Visible, 2)
	assert.Equal(t, []ClassificationCount{
		{Classification: record.ClassificationMA, Count: 2},
	}, view.ClassificationBreakdown)
}

func TestClassificationBreakdownFollowsEnumOrder(t *testing.T) {
	records := []record.Record{
		newRecord("a", record.ClassificationFABEB, []string{"Urgência"}, statsNow),
		newRecord("b", record.ClassificationMA, []string{"Urgência"}, statsNow),
		newRecord("c", record.ClassificationDD, []string{"Urgência"}, statsNow),
	}

	view := BuildView(records, Filter{}, statsNow)

	assert.Equal(t, []ClassificationCount{
		{Classification: record.ClassificationMA, Count: 1},
		{Classification: record.ClassificationDD, Count: 1},
		{Classification: record.ClassificationFABEB, Count: 1},
	}, view.ClassificationBreakdown)
}

// With an active procedure filter, only selected procedures are counted;
// the record's other procedures are excluded from the mapping entirely.
func TestProcedureCountsRestrictedToActiveFilter(t *testing.T) {
	r := newRecord("Ana", record.ClassificationMA,
		[]string{"Profilaxia (polimento coronário)", "Urgência"}, statsNow)

	view := BuildView([]record.Record{r}, Filter{Procedures: []string{"Urgência"}}, statsNow)

	require.Len(t, view.Visible, 1)
	assert.Equal(t, map[string]int{"Urgência": 1}, view.ProcedureCounts)
}

func TestProcedureCountsWithoutFilterCountEverything(t *testing.T) {
	records := []record.Record{
		newRecord("Ana", record.ClassificationMA, []string{"Urgência", "Cimentação"}, statsNow),
		newRecord("Bruno", record.ClassificationMI, []string{"Urgência"}, statsNow),
	}

	view := BuildView(records, Filter{}, statsNow)

	assert.Equal(t, map[string]int{"Urgência": 2, "Cimentação": 1}, view.ProcedureCounts)
	assert.Equal(t, 3, view.Summary.ProceduresRealized)
}

func TestTopProceduresRanking(t *testing.T) {
	// Six distinct procedures; two pairs tie on count. Ties resolve by
	// vocabulary enumeration order and the list truncates to five.
	records := []record.Record{
		newRecord("a", record.ClassificationMA, []string{"Urgência", "Cimentação"}, statsNow),
		newRecord("b", record.ClassificationMA, []string{"Urgência", "Cimentação"}, statsNow),
		newRecord("c", record.ClassificationMA, []string{"Urgência", "Exodontia simples"}, statsNow),
		newRecord("d", record.ClassificationMA, []string{"Ajuste oclusal", "Radiografia periapical"}, statsNow),
		newRecord("e", record.ClassificationMA, []string{"Remoção de sutura"}, statsNow),
	}

	view := BuildView(records, Filter{}, statsNow)

	require.Len(t, view.TopProcedures, 5)
	assert.Equal(t, ProcedureCount{Name: "Urgência", Count: 3}, view.TopProcedures[0])
	// Cimentação (2) beats the four singletons.
	assert.Equal(t, ProcedureCount{Name: "Cimentação", Count: 2}, view.TopProcedures[1])
	// Singletons tie at 1: vocabulary order is Radiografia periapical,
	// Exodontia simples, Remoção de sutura, Ajuste oclusal — only the
	// first three fit the top five.
	assert.Equal(t, []ProcedureCount{
		{Name: "Radiografia periapical", Count: 1},
		{Name: "Exodontia simples", Count: 1},
		{Name: "Remoção de sutura", Count: 1},
	}, view.TopProcedures[2:])
}

func TestSummaryPercentOfTotal(t *testing.T) {
	view := BuildView(nil, Filter{}, statsNow)
	assert.Zero(t, view.Summary.PercentOfTotal)

	records := make([]record.Record, 0, 8)
	for i := 0; i < 4; i++ {
		records = append(records, newRecord("ma", record.ClassificationMA, []string{"Urgência"}, statsNow))
	}
	for i := 0; i < 4; i++ {
		records = append(records, newRecord("mi", record.ClassificationMI, []string{"Urgência"}, statsNow))
	}

	view = BuildView(records, Filter{Classification: record.ClassificationMA}, statsNow)
	assert.Equal(t, 4, view.Summary.VisibleCount)
	assert.Equal(t, 50, view.Summary.PercentOfTotal)

	// One of three rounds to the nearest integer.
	view = BuildView(records[:3], Filter{TextQuery: "ma"}, statsNow)
	assert.Equal(t, 100, view.Summary.PercentOfTotal)
}

func TestSummaryTodayCount(t *testing.T) {
	records := []record.Record{
		newRecord("today morning", record.ClassificationMA, []string{"Urgência"},
			time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)),
		newRecord("today night", record.ClassificationMA, []string{"Urgência"},
			time.Date(2026, 3, 10, 23, 59, 0, 0, time.Local)),
		newRecord("yesterday", record.ClassificationMA, []string{"Urgência"},
			time.Date(2026, 3, 9, 16, 0, 0, 0, time.Local)),
	}

	view := BuildView(records, Filter{}, statsNow)
	assert.Equal(t, 2, view.Summary.TodayCount)
}

// Aggregate consistency: procedure counts sum to the realized statistic and
// classification breakdown entries sum to the visible count.
func TestAggregatesAreConsistent(t *testing.T) {
	records := sampleRecords()
	view := BuildView(records, Filter{Procedures: []string{"Urgência", "Exodontia simples"}}, statsNow)

	sum := 0
	for _, c := range view.ProcedureCounts {
		sum += c
	}
	assert.Equal(t, view.Summary.ProceduresRealized, sum)

	total := 0
	for _, b := range view.ClassificationBreakdown {
		total += b.Count
	}
	assert.Equal(t, len(view.Visible), total)
}

func TestBuildViewIsIdempotent(t *testing.T) {
	records := sampleRecords()
	f := Filter{TextQuery: "a", Procedures: []string{"Urgência"}}

	assert.Equal(t, BuildView(records, f, statsNow), BuildView(records, f, statsNow))
}
