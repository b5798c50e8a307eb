package dto

import (
	"time"

	"github.com/google/uuid"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CreateUserRequest carries the multipart form fields for user creation.
// Unlike categories, user input is not validated field by field at this layer;
// only binding errors reject the request.
type CreateUserRequest struct {
	Name     string   `form:"name"`
	Username string   `form:"username"`
	Email    string   `form:"email"`
	Password string   `form:"password"`
	Phone    *string  `form:"phone"`
	Address  *string  `form:"address"`
	Roles    []string `form:"roles"`
}

// UpdateUserRequest overwrites every listed field. Password is not changeable
// through this operation.
type UpdateUserRequest struct {
	Name     string   `form:"name"`
	Username string   `form:"username"`
	Email    string   `form:"email"`
	Status   string   `form:"status"`
	Phone    *string  `form:"phone"`
	Address  *string  `form:"address"`
	Roles    []string `form:"roles"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Roles     []string  `json:"roles"`
	Status    string    `json:"status"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserPage struct {
	Data []UserResponse `json:"data"`
	Meta PageMeta       `json:"meta"`
}

type UserStatusResponse struct {
	Detail string        `json:"detail"`
	User   *UserResponse `json:"user,omitempty"`
}
