// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Role classifies a user account.
type Role string

const (
	// RoleAdmin grants access to the /admin area and management operations.
	RoleAdmin Role = "ADMIN"

	// RoleClient is the role assigned to every self-registered user.
	RoleClient Role = "CLIENT"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleClient
}

// User represents a registered user in the system.
// It contains authentication credentials and the contact data
// collected at registration.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores the plaintext.
	Password string `gorm:"size:255;not null"`

	// Name and LastName are the user's given and family names.
	Name     string `gorm:"size:255;not null"`
	LastName string `gorm:"size:255;not null"`

	// Document is the national identity document number.
	Document string `gorm:"size:64"`

	Phone   string `gorm:"size:32"`
	Address string `gorm:"size:512"`

	// Role decides which area of the application the user may enter.
	Role Role `gorm:"size:16;not null;default:CLIENT"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
