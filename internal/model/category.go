package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups entries under a display title. The unique index on title
// is case-insensitive under MySQL's default collation, which is the
// authoritative guard behind the service-level pre-check.
type Category struct {
	ID    uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title string    `json:"title" gorm:"uniqueIndex;size:50;not null"`
}

// BeforeCreate sets the UUID before inserting the record.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
