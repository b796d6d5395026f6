package repository

import (
	"context"
	"time"

	"github.com/sangkips/backoffice-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves an idempotency key by its key string and caller
	GetByKey(ctx context.Context, key, caller string) (*entity.IdempotencyKey, error)
	// Reserve inserts ikey unless a live key with the same key and caller
	// exists. An expired key is taken over. It reports whether ikey was stored.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey, now time.Time) (bool, error)
	// Create stores an idempotency key, replacing any entry for the same
	// key and caller
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Release removes a key still marked in progress
	Release(ctx context.Context, key, caller string) error
	// DeleteExpired removes keys that expired before now
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
