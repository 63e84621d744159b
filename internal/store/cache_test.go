package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/odontoflow/odontoflow/internal/domain/record"
)

func TestCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := NewCache(dir, "odontoflow_patients", zap.NewNop())

	records := []record.Record{
		{
			ID:             uuid.New(),
			CreatedAt:      time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
			Name:           "Ana Souza",
			Classification: record.ClassificationMA,
			Procedures:     []string{"Urgência", "Cimentação"},
			Notes:          "returning patient",
		},
		{
			ID:             uuid.New(),
			CreatedAt:      time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC),
			Name:           "Bruno Lima",
			Classification: record.ClassificationMI,
			Procedures:     []string{"Exodontia simples"},
		},
	}

	require.NoError(t, c.Save(records))
	assert.Equal(t, records, c.Load())
}

func TestCacheLoadMissingSnapshotIsEmpty(t *testing.T) {
	c := NewCache(t.TempDir(), "odontoflow_patients", zap.NewNop())

	assert.Equal(t, []record.Record{}, c.Load())
}

func TestCacheLoadCorruptSnapshotIsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "odontoflow_patients.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	c := NewCache(dir, "odontoflow_patients", zap.NewNop())
	assert.Equal(t, []record.Record{}, c.Load())
}

func TestCacheSaveCreatesDirectoryAndOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := NewCache(dir, "odontoflow_patients", zap.NewNop())

	first := []record.Record{{
		ID:             uuid.New(),
		Name:           "Ana",
		Classification: record.ClassificationMA,
		Procedures:     []string{"Urgência"},
	}}
	require.NoError(t, c.Save(first))

	second := []record.Record{{
		ID:             uuid.New(),
		Name:           "Carla",
		Classification: record.ClassificationDD,
		Procedures:     []string{"Radiografia periapical"},
	}}
	require.NoError(t, c.Save(second))

	assert.Equal(t, second, c.Load())
}

func TestCacheSaveNilCollection(t *testing.T) {
	c := NewCache(t.TempDir(), "odontoflow_patients", zap.NewNop())

	require.NoError(t, c.Save(nil))
	assert.Equal(t, []record.Record{}, c.Load())
}
