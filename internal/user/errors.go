package user

import (
	"net/http"

	"credential_store_backend/internal/common"
)

var (
	// ErrDuplicateEmail is returned by Register when the email is already taken, ignoring case.
	ErrDuplicateEmail = common.NewAPIError(http.StatusConflict, "DUPLICATE_EMAIL", "A user with this email already exists.")
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = common.NewAPIError(http.StatusNotFound, "NOT_FOUND", "No account was found with that email address.")
)
