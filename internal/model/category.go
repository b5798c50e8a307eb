package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is a product category of the store back office.
// Slug is always derived from Name on create and update; uniqueness among
// non-deleted rows is checked at the service layer (the DB keeps a plain index
// so trashed rows never block a slug from being reused).
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"not null"`
	Slug      string    `gorm:"index;not null"`
	// Image holds the path returned by the upload store, relative to its root.
	Image     *string
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Trashed reports whether the category is soft-deleted.
func (c *Category) Trashed() bool { return c.DeletedAt.Valid }
