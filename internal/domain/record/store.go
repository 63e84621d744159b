package record

import (
	"context"

	"github.com/google/uuid"
)

// Store is the durable persistence contract for patient records. All
// operations may fail with a *RemoteError carrying a human-readable message.
type Store interface {
	// List returns the full collection ordered newest-first by CreatedAt.
	List(ctx context.Context) ([]Record, error)

	// GetByID retrieves a single record. Returns ErrRecordNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (Record, error)

	// Create persists a new record; the store assigns ID and CreatedAt.
	Create(ctx context.Context, cmd CreateCommand) (Record, error)

	// Update applies partial field replacement; nil command fields are
	// left unchanged. ID and CreatedAt are never touched.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (Record, error)

	// Delete removes a record. Deleting an absent record is not an error.
	Delete(ctx context.Context, id uuid.UUID) error
}
