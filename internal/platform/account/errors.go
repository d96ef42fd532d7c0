package account

import "errors"

// Service errors are sentinel values so handlers can translate them to
// HTTP statuses without inspecting message text. The credentials error is
// deliberately vague about which field was wrong.
var (
	ErrValidation         = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountLocked      = errors.New("account temporarily locked, try again later")
	ErrEmailExists        = errors.New("email already exists")
	ErrNotFound           = errors.New("account not found")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidGoogleToken = errors.New("invalid Google ID token")
	ErrPasswordAccount    = errors.New("account already registered, use password login")
	ErrInvalidAdminRole   = errors.New("invalid admin role specified")
	ErrSelfDeletion       = errors.New("you cannot delete your own account")
)
