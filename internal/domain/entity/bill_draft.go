package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BillDraft preserves a bill form the store API rejected so it can be
// corrected and resubmitted.
type BillDraft struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Reference  string         `gorm:"size:32;uniqueIndex;not null" json:"reference"`
	Caller     string         `gorm:"size:64;not null;index" json:"-"`
	Kind       string         `gorm:"size:50;not null;index" json:"kind"`
	BillID     string         `gorm:"size:100" json:"bill_id,omitempty"` // set when an update was rejected
	PartyName  string         `gorm:"size:255" json:"party_name"`
	Payload    datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	LastError  string         `gorm:"type:text" json:"last_error"`
	LastStatus int            `gorm:"default:0" json:"last_status"`
	Attempts   int            `gorm:"default:1" json:"attempts"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the table name for BillDraft
func (BillDraft) TableName() string {
	return "bill_drafts"
}

// BeforeCreate generates a UUID before creating a new draft
func (d *BillDraft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
