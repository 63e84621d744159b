package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/odontoflow/odontoflow/internal/dashboard"
	"github.com/odontoflow/odontoflow/internal/domain/record"
	"github.com/odontoflow/odontoflow/internal/editor"
)

// SnapshotCache is the local fallback mirror of the collection.
type SnapshotCache interface {
	Save([]record.Record) error
	Load() []record.Record
}

// RecordService owns the in-memory record collection and reconciles it with
// the remote store. Mutations are applied optimistically and rolled back
// when the remote write fails, so local state never silently diverges.
type RecordService struct {
	store record.Store
	cache SnapshotCache
	log   *zap.Logger
	now   func() time.Time

	// onCacheFallback, when set, is invoked each time a load is served
	// from the local snapshot instead of the store.
	onCacheFallback func()

	mu      sync.RWMutex
	records []record.Record
	guard   dashboard.DeletionGuard
}

func NewRecordService(store record.Store, cache SnapshotCache, log *zap.Logger) *RecordService {
	return &RecordService{
		store: store,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

// OnCacheFallback registers an observer for cache-fallback loads. Must be
// set before the first Load.
func (s *RecordService) OnCacheFallback(fn func()) {
	s.onCacheFallback = fn
}

// Load replaces the in-memory collection from the remote store, falling
// back to the local cache snapshot when the store is unreachable.
func (s *RecordService) Load(ctx context.Context) error {
	records, err := s.store.List(ctx)
	if err != nil {
		s.log.Warn("record store unreachable, loading local cache", zap.Error(err))
		records = s.cache.Load()
		if s.onCacheFallback != nil {
			s.onCacheFallback()
		}
	}

	s.mu.Lock()
	s.records = records
	s.guard.Cancel()
	s.mu.Unlock()

	s.log.Info("records loaded", zap.Int("count", len(records)))
	return nil
}

// Clear drops all in-memory record state. Called when the session gate
// closes so a signed-out terminal holds no patient data.
func (s *RecordService) Clear() {
	s.mu.Lock()
	s.records = nil
	s.guard.Cancel()
	s.mu.Unlock()
}

// Records returns a copy of the current collection, newest-first.
func (s *RecordService) Records() []record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]record.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns a single record from the in-memory collection.
func (s *RecordService) Get(id uuid.UUID) (record.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return record.Record{}, record.ErrRecordNotFound
}

// View derives the dashboard view for the given filter state.
func (s *RecordService) View(f dashboard.Filter) dashboard.View {
	return dashboard.BuildView(s.Records(), f, s.now())
}

// Create validates the form, applies the new record optimistically and
// persists it. The store-assigned record replaces the optimistic one; a
// store failure rolls the local insertion back.
func (s *RecordService) Create(ctx context.Context, form editor.Form) (record.Record, error) {
	ed := editor.New()
	ed.Fill(form)
	optimistic, err := ed.Submit(s.now())
	if err != nil {
		return record.Record{}, err
	}

	s.mu.Lock()
	s.records = prepend(s.records, optimistic)
	s.mu.Unlock()

	canonical, err := s.store.Create(ctx, record.CreateCommand{
		Name:           optimistic.Name,
		Classification: optimistic.Classification,
		Procedures:     optimistic.Procedures,
		Notes:          optimistic.Notes,
	})
	if err != nil {
		s.mu.Lock()
		s.records, _, _, _ = remove(s.records, optimistic.ID)
		s.mu.Unlock()
		s.log.Error("record create failed, rolled back", zap.Error(err))
		return record.Record{}, err
	}

	s.mu.Lock()
	s.records, _ = replace(s.records, optimistic.ID, canonical)
	s.mu.Unlock()

	s.saveSnapshot()
	s.log.Info("record created", zap.String("record_id", canonical.ID.String()))
	return canonical, nil
}

// Update validates the edited form against the existing record, applies it
// optimistically and persists the replacement. ID and CreatedAt survive the
// edit untouched; a store failure restores the previous version.
func (s *RecordService) Update(ctx context.Context, id uuid.UUID, form editor.Form) (record.Record, error) {
	prior, err := s.Get(id)
	if err != nil {
		return record.Record{}, err
	}

	ed := editor.NewFor(prior)
	ed.Fill(form)
	updated, err := ed.Submit(s.now())
	if err != nil {
		return record.Record{}, err
	}

	s.mu.Lock()
	s.records, _ = replace(s.records, id, updated)
	s.mu.Unlock()

	canonical, err := s.store.Update(ctx, id, record.UpdateCommand{
		Name:           &updated.Name,
		Classification: &updated.Classification,
		Procedures:     &updated.Procedures,
		Notes:          &updated.Notes,
	})
	if err != nil {
		s.mu.Lock()
		s.records, _ = replace(s.records, id, prior)
		s.mu.Unlock()
		s.log.Error("record update failed, rolled back",
			zap.String("record_id", id.String()),
			zap.Error(err),
		)
		return record.Record{}, err
	}

	s.mu.Lock()
	s.records, _ = replace(s.records, id, canonical)
	s.mu.Unlock()

	s.saveSnapshot()
	s.log.Info("record updated", zap.String("record_id", id.String()))
	return canonical, nil
}

// StageDeletion moves the deletion guard to pending for the given record.
func (s *RecordService) StageDeletion(id uuid.UUID) (record.Record, error) {
	r, err := s.Get(id)
	if err != nil {
		return record.Record{}, err
	}

	s.mu.Lock()
	s.guard.Stage(r)
	s.mu.Unlock()
	return r, nil
}

// PendingDeletion returns the currently staged record, if any.
func (s *RecordService) PendingDeletion() (record.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guard.Pending()
}

// CancelDeletion unconditionally discards the staged deletion.
func (s *RecordService) CancelDeletion() {
	s.mu.Lock()
	s.guard.Cancel()
	s.mu.Unlock()
}

// ConfirmDeletion finalizes the staged deletion when the typed confirmation
// matches the staged record's name exactly. The record is removed
// optimistically and restored if the remote delete fails. The collection is
// untouched on any mismatch.
func (s *RecordService) ConfirmDeletion(ctx context.Context, id uuid.UUID, typed string) error {
	s.mu.Lock()
	if staged, ok := s.guard.Pending(); !ok || staged.ID != id {
		s.mu.Unlock()
		if !ok {
			return dashboard.ErrNothingStaged
		}
		return dashboard.ErrDifferentRecordStaged
	}
	s.guard.SetConfirmation(typed)
	target, err := s.guard.Confirm()
	if err != nil {
		s.mu.Unlock()
		return err
	}

	var (
		removed record.Record
		idx     int
	)
	s.records, removed, idx, _ = remove(s.records, target.ID)
	s.mu.Unlock()

	if err := s.store.Delete(ctx, target.ID); err != nil {
		s.mu.Lock()
		s.records = insertAt(s.records, idx, removed)
		s.mu.Unlock()
		s.log.Error("record delete failed, rolled back",
			zap.String("record_id", target.ID.String()),
			zap.Error(err),
		)
		return err
	}

	s.saveSnapshot()
	s.log.Info("record deleted", zap.String("record_id", target.ID.String()))
	return nil
}

func (s *RecordService) saveSnapshot() {
	if err := s.cache.Save(s.Records()); err != nil {
		s.log.Warn("failed to write cache snapshot", zap.Error(err))
	}
}
