package repository

import (
	"context"

	"gorm.io/gorm"
)

type ctxKey string

// CallerKey is the context key for the caller fingerprint
const CallerKey ctxKey = "caller"

// CallerScope returns a GORM scope that filters by caller.
// Records belong to the dashboard session that created them; a context
// without a caller matches nothing.
func CallerScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		caller, ok := GetCaller(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("caller = ?", caller)
	}
}

// WithCaller adds the caller fingerprint to context
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, CallerKey, caller)
}

// GetCaller extracts the caller fingerprint from context
func GetCaller(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(CallerKey).(string)
	return caller, ok && caller != ""
}
