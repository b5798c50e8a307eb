package dto

import (
	"time"

	"github.com/google/uuid"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CreateCategoryRequest carries the multipart form fields for category creation.
// The image file itself is read from the multipart payload by the handler.
type CreateCategoryRequest struct {
	Name string `form:"name" validate:"required,min=3,max=20"`
}

// UpdateCategoryRequest additionally carries the submitted slug. The slug is
// only checked for uniqueness; the persisted value is re-derived from Name.
type UpdateCategoryRequest struct {
	Name string `form:"name" validate:"required,min=3,max=20"`
	Slug string `form:"slug" validate:"required"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoryResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Image     *string    `json:"image,omitempty"`
	CreatedBy uuid.UUID  `json:"created_by"`
	UpdatedBy *uuid.UUID `json:"updated_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

type CategoryPage struct {
	Data []CategoryResponse `json:"data"`
	Meta PageMeta           `json:"meta"`
}

// CategoryStatusResponse mirrors the original redirect-with-status flow:
// every successful mutation answers with a human-readable status line.
type CategoryStatusResponse struct {
	Detail   string            `json:"detail"`
	Category *CategoryResponse `json:"category,omitempty"`
}
