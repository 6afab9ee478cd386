package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is read-only reference data, provisioned by the seeding utility.
type Category struct {
	ID          string    `gorm:"type:char(24);primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// BeforeCreate assigns a hex ID when none was set.
func (c *Category) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}
