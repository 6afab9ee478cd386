package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles. Anyone who is not an admin is a regular user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an author or commenter account.
type User struct {
	ID        string    `gorm:"type:char(24);primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email,omitempty"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:user" json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// BeforeCreate assigns a hex ID when none was set.
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

// IsAdmin reports whether the user holds the administrative role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
