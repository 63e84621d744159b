package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontoflow/odontoflow/internal/domain/record"
)

func TestGuardStartsIdle(t *testing.T) {
	var g DeletionGuard

	_, pending := g.Pending()
	assert.False(t, pending)
	assert.False(t, g.CanConfirm())

	_, err := g.Confirm()
	assert.ErrorIs(t, err, ErrNothingStaged)
}

func TestGuardConfirmRequiresExactMatch(t *testing.T) {
	target := newRecord("Maria Clara", record.ClassificationMA, []string{"Urgência"}, time.Now())

	tests := []struct {
		name  string
		typed string
	}{
		{"empty", ""},
		{"one character off", "Maria Clarq"},
		{"case differs", "maria clara"},
		{"trailing space", "Maria Clara "},
		{"leading space", " Maria Clara"},
		{"prefix only", "Maria"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var g DeletionGuard
			g.Stage(target)
			g.SetConfirmation(tt.typed)

			assert.False(t, g.CanConfirm())
			_, err := g.Confirm()
			assert.ErrorIs(t, err, ErrConfirmationMismatch)

			// Mismatch leaves the guard pending with the same target.
			staged, pending := g.Pending()
			require.True(t, pending)
			assert.Equal(t, target.ID, staged.ID)
		})
	}
}

func TestGuardConfirmOnExactMatch(t *testing.T) {
	target := newRecord("Maria Clara", record.ClassificationMA, []string{"Urgência"}, time.Now())

	var g DeletionGuard
	g.Stage(target)
	g.SetConfirmation("Maria Clara")

	require.True(t, g.CanConfirm())
	got, err := g.Confirm()
	require.NoError(t, err)
	assert.Equal(t, target.ID, got.ID)

	// Confirm returns the guard to idle.
	_, pending := g.Pending()
	assert.False(t, pending)
}

func TestGuardCancelIsUnconditional(t *testing.T) {
	target := newRecord("Maria Clara", record.ClassificationMA, []string{"Urgência"}, time.Now())

	var g DeletionGuard
	g.Stage(target)
	g.SetConfirmation("half typed")
	g.Cancel()

	_, pending := g.Pending()
	assert.False(t, pending)
	_, err := g.Confirm()
	assert.ErrorIs(t, err, ErrNothingStaged)
}

func TestGuardRestagingResetsConfirmation(t *testing.T) {
	first := newRecord("Ana", record.ClassificationMA, []string{"Urgência"}, time.Now())
	second := newRecord("Ana", record.ClassificationMI, []string{"Urgência"}, time.Now())

	var g DeletionGuard
	g.Stage(first)
	g.SetConfirmation("Ana")
	require.True(t, g.CanConfirm())

	// Staging a new target must not inherit the previous confirmation.
	g.Stage(second)
	assert.False(t, g.CanConfirm())

	staged, pending := g.Pending()
	require.True(t, pending)
	assert.Equal(t, second.ID, staged.ID)
}
