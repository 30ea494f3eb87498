// Package models contains data structures for the application's domain models.
package models

import "time"

// Post represents a published article in the Inkwell application.
//
// Title is globally unique; the database index makes the uniqueness
// check atomic with the insert. PublishedOn is set once at creation
// and never updated, even by an authorized edit.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"uniqueIndex;not null" json:"title"`
	Subtitle    string    `gorm:"not null" json:"subtitle"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	ImageURL    string    `gorm:"not null" json:"image_url"`
	PublishedOn time.Time `gorm:"not null" json:"published_on"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments    []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublishedDate renders the publication date the way the site displays
// it, e.g. "August 28, 2026".
func (p *Post) PublishedDate() string {
	return p.PublishedOn.Format("January 2, 2006")
}
