// Package store provides the durable persistence implementations: the
// Postgres-backed record store and the local snapshot cache used when the
// remote store is unreachable.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/odontoflow/odontoflow/internal/domain/record"
)

// RecordStore implements record.Store on top of gorm/Postgres.
type RecordStore struct {
	db *gorm.DB
}

func NewRecordStore(db *gorm.DB) *RecordStore {
	return &RecordStore{db: db}
}

var _ record.Store = (*RecordStore)(nil)

func (s *RecordStore) List(ctx context.Context) ([]record.Record, error) {
	var records []record.Record
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, &record.RemoteError{Op: "list", Err: err}
	}
	return records, nil
}

func (s *RecordStore) GetByID(ctx context.Context, id uuid.UUID) (record.Record, error) {
	var r record.Record
	err := s.db.WithContext(ctx).First(&r, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return record.Record{}, record.ErrRecordNotFound
	}
	if err != nil {
		return record.Record{}, &record.RemoteError{Op: "get", Err: err}
	}
	return r, nil
}

func (s *RecordStore) Create(ctx context.Context, cmd record.CreateCommand) (record.Record, error) {
	r := record.Record{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		Name:           cmd.Name,
		Classification: cmd.Classification,
		Procedures:     cmd.Procedures,
		Notes:          cmd.Notes,
	}
	if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
		return record.Record{}, &record.RemoteError{Op: "create", Err: err}
	}
	return r, nil
}

func (s *RecordStore) Update(ctx context.Context, id uuid.UUID, cmd record.UpdateCommand) (record.Record, error) {
	updates := map[string]any{}
	if cmd.Name != nil {
		updates["name"] = *cmd.Name
	}
	if cmd.Classification != nil {
		updates["classification"] = *cmd.Classification
	}
	if cmd.Procedures != nil {
		updates["procedures"] = *cmd.Procedures
	}
	if cmd.Notes != nil {
		updates["notes"] = *cmd.Notes
	}

	if len(updates) > 0 {
		res := s.db.WithContext(ctx).
			Model(&record.Record{}).
			Where("id = ?", id).
			Updates(updates)
		if res.Error != nil {
			return record.Record{}, &record.RemoteError{Op: "update", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			return record.Record{}, record.ErrRecordNotFound
		}
	}

	return s.GetByID(ctx, id)
}

func (s *RecordStore) Delete(ctx context.Context, id uuid.UUID) error {
	// Idempotent by contract: deleting an absent record reports success.
	err := s.db.WithContext(ctx).Delete(&record.Record{}, "id = ?", id).Error
	if err != nil {
		return &record.RemoteError{Op: "delete", Err: err}
	}
	return nil
}
