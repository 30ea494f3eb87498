// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment represents a reader comment on a post. Author and target
// post are fixed at creation; comments are never edited.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Post      Post      `gorm:"foreignKey:PostID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
