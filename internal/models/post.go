// Package models contains data structures for the application's domain entities.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is the primary content entity. Comments live in their own table but
// are part of the post from the API's point of view: they are serialized
// inline and removed together with the post.
type Post struct {
	ID            string    `gorm:"type:char(24);primaryKey" json:"id"`
	Title         string    `gorm:"size:100;not null" json:"title"`
	Slug          string    `gorm:"size:160;uniqueIndex;not null" json:"slug"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Excerpt       string    `gorm:"size:200" json:"excerpt,omitempty"`
	CategoryID    string    `gorm:"type:char(24);not null;index" json:"-"`
	Category      *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	AuthorID      string    `gorm:"type:char(24);not null;index" json:"-"`
	Author        *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Tags          []string  `gorm:"serializer:json;type:text" json:"tags"`
	FeaturedImage string    `gorm:"size:255" json:"featuredImage,omitempty"`
	IsPublished   bool      `gorm:"not null;default:true" json:"isPublished"`
	ViewCount     int64     `gorm:"not null;default:0" json:"viewCount"`
	Comments      []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a hex ID when none was set.
func (p *Post) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}

// Comment is appended to a post and never edited or deleted on its own.
type Comment struct {
	ID        string    `gorm:"type:char(24);primaryKey" json:"id"`
	PostID    string    `gorm:"type:char(24);not null;index" json:"-"`
	UserID    string    `gorm:"type:char(24);not null" json:"-"`
	User      *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate assigns a hex ID when none was set.
func (c *Comment) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}
