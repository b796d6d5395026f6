package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores processed requests to prevent duplicates
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_caller_key;size:255;not null"` // The idempotency key from client
	Caller       string    `gorm:"uniqueIndex:idx_idempotency_caller_key;size:64;not null"`  // Fingerprint of the caller's credentials or address
	Endpoint     string    `gorm:"size:255;not null"`                                        // API endpoint (e.g., "POST /bills/:kind/:id/payments")
	RequestHash  string    `gorm:"size:64"`                                                  // SHA256 hash of request body
	ResponseCode int       `gorm:"not null"`                                                 // HTTP status code of original response, 0 while in progress
	ResponseBody string    `gorm:"type:text"`                                                // JSON response body (cached)
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"` // Keys expire after 24 hours
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// IsPending reports whether the request holding the key has not finished.
func (i *IdempotencyKey) IsPending() bool {
	return i.ResponseCode == 0
}
