package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account statuses. Roles: "ADMIN" | "STAFF".
const (
	StatusActive   = "active"
	StatusInactive = "inactive"

	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// User is a back-office account. Deleting a user only sets DeletedAt; there is
// no trash UI for users, so recovery happens at the storage layer.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"not null"`
	Username string    `gorm:"uniqueIndex;not null"`
	Email    string    `gorm:"uniqueIndex;not null"`
	Phone    *string
	Address  *string
	// Roles is stored as a JSON array in a single column.
	Roles  []string `gorm:"serializer:json;type:jsonb"`
	Status string   `gorm:"type:varchar(20);not null;default:active"`
	// Avatar holds the path returned by the upload store, relative to its root.
	Avatar *string
	// PasswordHash is a bcrypt hash, set only at creation.
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// HasRole reports whether the user carries the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
