package shared

import "errors"

var (
	// ErrNotFound indicates a referenced resource does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a unique constraint was violated.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrInvalidCredentials indicates login failure. It deliberately covers
	// unknown email, inactive account, and wrong password alike so callers
	// cannot enumerate registered addresses.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken indicates a registration attempt with an email that is
	// already present.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUnauthenticated indicates a missing, expired, or otherwise invalid
	// bearer token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInactiveUser indicates a valid token whose subject has been
	// deactivated. Distinct from ErrUnauthenticated: the identity is proven.
	ErrInactiveUser = errors.New("inactive user")
	// ErrForbidden indicates an authenticated caller that lacks rights on the
	// resource. Never conflated with ErrUnauthenticated.
	ErrForbidden = errors.New("forbidden")

	// Token validation failures. All of them collapse to ErrUnauthenticated at
	// the API boundary; the distinction is kept for logging.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrBadSignature   = errors.New("token signature invalid")
	ErrWrongPurpose   = errors.New("token purpose mismatch")
)
