// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents a registered account in the Inkwell application.
//
// Email uniqueness is enforced by the database index so that two
// concurrent registrations with the same address cannot both succeed.
// PasswordHash holds the bcrypt credential, never the plaintext.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Name         string    `gorm:"not null" json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
	Comments     []Comment `gorm:"foreignKey:AuthorID" json:"comments,omitempty"`
}
