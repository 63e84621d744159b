package editor

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontoflow/odontoflow/internal/domain/record"
)

var editorNow = time.Date(2026, 3, 10, 10, 0, 0, 0, time.Local)

func validForm() Form {
	return Form{
		Name:           "Ana Souza",
		Classification: record.ClassificationMA,
		Procedures:     []string{"Urgência"},
		Notes:          "first visit",
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		field  string
	}{
		{"empty name", func(f *Form) { f.Name = "" }, "name is required"},
		{"whitespace name", func(f *Form) { f.Name = "   " }, "name is required"},
		{"missing classification", func(f *Form) { f.Classification = "" }, "classification is required"},
		{"invalid classification", func(f *Form) { f.Classification = "XX" }, "classification is invalid"},
		{"no procedures", func(f *Form) { f.Procedures = nil }, "at least one procedure is required"},
		{"unknown procedure", func(f *Form) { f.Procedures = []string{"Limpeza genérica"} }, "unknown procedure: Limpeza genérica"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := form.Validate()
			var validErr *ValidationError
			require.ErrorAs(t, err, &validErr)
			assert.Contains(t, validErr.Fields, tt.field)
		})
	}
}

func TestValidateReportsEveryFieldAtOnce(t *testing.T) {
	err := Form{}.Validate()

	var validErr *ValidationError
	require.ErrorAs(t, err, &validErr)
	assert.Len(t, validErr.Fields, 3)
}

func TestSubmitCreateAssignsIdentityAndTimestamp(t *testing.T) {
	ed := New()
	ed.Fill(validForm())

	r, err := ed.Submit(editorNow)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, editorNow, r.CreatedAt)
	assert.Equal(t, "Ana Souza", r.Name)
	assert.Equal(t, record.ClassificationMA, r.Classification)
	assert.Equal(t, []string{"Urgência"}, r.Procedures)
	assert.Equal(t, "first visit", r.Notes)
}

func TestSubmitCreateGeneratesUniqueIDs(t *testing.T) {
	ed := New()
	ed.Fill(validForm())
	first, err := ed.Submit(editorNow)
	require.NoError(t, err)

	ed.Fill(validForm())
	second, err := ed.Submit(editorNow)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestSubmitNormalizesInput(t *testing.T) {
	ed := New()
	ed.Fill(Form{
		Name:           "  Ana Souza  ",
		Classification: record.ClassificationMA,
		Procedures:     []string{" Urgência ", "Cimentação"},
	})

	r, err := ed.Submit(editorNow)
	require.NoError(t, err)
	assert.Equal(t, "Ana Souza", r.Name)
	assert.Equal(t, []string{"Urgência", "Cimentação"}, r.Procedures)
}

// Edit mode preserves the original ID and CreatedAt even when every other
// field changes, and notes may be cleared entirely.
func TestSubmitEditPreservesIdentity(t *testing.T) {
	prior := record.Record{
		ID:             uuid.New(),
		CreatedAt:      editorNow.AddDate(0, -1, 0),
		Name:           "Ana Souza",
		Classification: record.ClassificationMA,
		Procedures:     []string{"Urgência"},
		Notes:          "old notes",
	}

	ed := NewFor(prior)
	assert.True(t, ed.Editing())
	assert.Equal(t, prior.Name, ed.Form().Name)

	ed.Fill(Form{
		Name:           "Ana Souza Oliveira",
		Classification: record.ClassificationDD,
		Procedures:     []string{"Cimentação"},
		Notes:          "",
	})

	r, err := ed.Submit(editorNow)
	require.NoError(t, err)
	assert.Equal(t, prior.ID, r.ID)
	assert.Equal(t, prior.CreatedAt, r.CreatedAt)
	assert.Equal(t, "Ana Souza Oliveira", r.Name)
	assert.Equal(t, record.ClassificationDD, r.Classification)
	assert.Equal(t, []string{"Cimentação"}, r.Procedures)
	assert.Empty(t, r.Notes)
}

func TestSubmitResetsFormOnSuccessOnly(t *testing.T) {
	ed := New()
	ed.Fill(Form{Name: "Ana"}) // invalid: no classification, no procedures

	_, err := ed.Submit(editorNow)
	require.Error(t, err)
	// Validation failure leaves the form intact for correction.
	assert.Equal(t, "Ana", ed.Form().Name)

	ed.Fill(validForm())
	_, err = ed.Submit(editorNow)
	require.NoError(t, err)
	assert.Equal(t, Form{}, ed.Form())
	assert.False(t, ed.Editing())
}

func TestToggleProcedure(t *testing.T) {
	ed := New()

	ed.ToggleProcedure("Urgência")
	ed.ToggleProcedure("Cimentação")
	assert.Equal(t, []string{"Urgência", "Cimentação"}, ed.Form().Procedures)

	ed.ToggleProcedure("Urgência")
	assert.Equal(t, []string{"Cimentação"}, ed.Form().Procedures)
}
