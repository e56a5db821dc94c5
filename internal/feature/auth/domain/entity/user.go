// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Account roles. UserType is fixed at registration and decides which
// role page a logged-in user is routed to.
const (
	UserTypeStudent = "student"
	UserTypeTeacher = "teacher"
)

// User represents a registered account in the system.
// Accounts are created through registration only; no exposed operation
// updates or deletes them.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the login identifier. It must be unique across all users
	// and is stored lowercased.
	Email string `gorm:"uniqueIndex;size:120;not null"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This never stores plaintext passwords.
	PasswordHash string `gorm:"size:128;not null"`

	// LastName and FirstName are the user's display names.
	LastName  string `gorm:"size:100;not null"`
	FirstName string `gorm:"size:100;not null"`

	// UserType is either UserTypeStudent or UserTypeTeacher.
	UserType string `gorm:"size:20;not null"`

	// CreatedAt is the timestamp when the user registered.
	CreatedAt time.Time
}

// TableName returns the table name for GORM. The schema uses the singular
// form, not GORM's pluralized default.
func (User) TableName() string {
	return "user"
}

// ValidUserType reports whether t is one of the two known roles.
func ValidUserType(t string) bool {
	return t == UserTypeStudent || t == UserTypeTeacher
}
