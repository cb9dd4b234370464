package services

import "errors"

// Domain errors returned by the service layer. Handlers translate these
// to HTTP statuses; anything else is treated as a storage fault.
var (
	// ErrNotFound covers both "document does not exist" and "caller has
	// no standing relationship to it". The two are deliberately merged
	// so an unauthorized caller cannot probe for document existence.
	ErrNotFound = errors.New("not found")

	// ErrDenied means the caller has a relationship to the document but
	// the role does not permit the attempted operation.
	ErrDenied = errors.New("access denied")

	// ErrUserNotFound means an invite referenced an email with no account.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidOperation marks structurally nonsensical requests, such
	// as inviting the owner as a collaborator of their own document.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrEmailTaken is returned on signup with an already registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed signin.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
