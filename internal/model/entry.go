package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entry is a link record. Suggestion=true marks a pending submission awaiting
// admin approval; false marks a published entry. CategoryID is a weak
// reference: no foreign key constraint is declared and a dangling value is
// resolved to a fallback display name at read time.
type Entry struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string     `json:"title" gorm:"size:100;not null;index:idx_entries_order,priority:1"`
	Description string     `json:"description" gorm:"size:500;not null;index:idx_entries_order,priority:2"`
	Link        string     `json:"link" gorm:"size:2048;not null"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty" gorm:"type:char(36);index"`
	UserID      uuid.UUID  `json:"userId" gorm:"type:char(36);index"`
	Suggestion  bool       `json:"suggestion" gorm:"not null;default:true;index"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BeforeCreate sets the UUID before inserting the record.
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
