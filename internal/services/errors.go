package services

import "errors"

// Sentinel errors shared across services. Handlers map these onto HTTP
// status codes; mongo.ErrNoDocuments doubles as the not-found sentinel.
var (
	// ErrEmailExists is returned when an attempt is made to use an email that already exists.
	ErrEmailExists = errors.New("email already in use by another account")

	// ErrInvalidCredentials is returned on a failed login attempt. It is
	// deliberately identical for a missing account and a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNoRecipient is returned when a submission cannot be routed: the
	// property has no owner and no admin account exists to fall back on.
	ErrNoRecipient = errors.New("no recipient available for this property")

	// ErrForbidden is returned when the acting user is neither the
	// recipient of a submission nor an admin.
	ErrForbidden = errors.New("not allowed to act on this record")
)
