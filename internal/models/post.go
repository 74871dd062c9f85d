// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a post written by a user.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null;check:chk_posts_title_present,title <> ''" json:"title"`
	Content   string    `gorm:"type:text;not null;check:chk_posts_content_present,content <> ''" json:"content"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	// Deleting a user that still has posts is rejected by the store.
	Author *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"author,omitempty"`
}

// Serialize returns the public projection of the post.
// Author must be loaded; the repository preloads it on every read.
func (p *Post) Serialize() map[string]any {
	var author any
	if p.Author != nil {
		author = p.Author.FullName()
	}
	return map[string]any{
		"id":         p.ID,
		"title":      p.Title,
		"content":    p.Content,
		"created_at": FormatTimestamp(p.CreatedAt),
		"author":     author,
	}
}
