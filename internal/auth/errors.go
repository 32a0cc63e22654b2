package auth

import (
	"net/http"

	"credential_store_backend/internal/common"
)

var (
	ErrUserNotFound         = common.NewAPIError(http.StatusNotFound, "USER_NOT_FOUND", "No account is registered with this email address.")
	ErrWrongPassword        = common.NewAPIError(http.StatusUnauthorized, "WRONG_PASSWORD", "The password is incorrect.")
	ErrAlreadyAuthenticated = common.NewAPIError(http.StatusConflict, "ALREADY_AUTHENTICATED", "Another user is already logged in. Log out first.")
)

// Suggested follow-up actions attached to failed logins.
const (
	SuggestedActionRegister      = "register"
	SuggestedActionResetPassword = "reset_password"
	SuggestedActionLogout        = "logout"
)

// Err converts a failed outcome into the API error the HTTP layer reports.
// It returns nil for LoginSuccess.
func (o LoginOutcome) Err() error {
	switch o.Status {
	case LoginSuccess:
		return nil
	case LoginUserNotFound:
		return ErrUserNotFound.WithDetails(map[string]string{"suggested_action": SuggestedActionRegister})
	case LoginWrongPassword:
		return ErrWrongPassword.WithDetails(map[string]string{"suggested_action": SuggestedActionResetPassword})
	case LoginAlreadyAuthenticated:
		return ErrAlreadyAuthenticated.WithDetails(map[string]string{"suggested_action": SuggestedActionLogout})
	default:
		return common.ErrInternalServer
	}
}
