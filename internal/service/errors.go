package service

import "errors"

// Sentinel errors shared by the services. Handlers map them to HTTP statuses;
// the texts double as the user-facing status messages.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrSlugTaken reports the uniqueness check on the submitted slug during a
	// category update (the persisted slug is still re-derived from the name).
	ErrSlugTaken = errors.New("slug already in use")

	// Illegal state transitions — status messages, not hard failures.
	ErrNotInTrash            = errors.New("category is not in trash")
	ErrPermanentDeleteActive = errors.New("cannot permanently delete an active category")

	ErrInvalidCredentials = errors.New("invalid credentials")
)
