// Package httpx provides HTTP response utilities.
package httpx

import (
	"errors"
	"net/http"

	"github.com/taskforge/taskforge/internal/shared"
)

// ErrValidation marks request payloads that failed validation.
var ErrValidation = errors.New("validation failed")

// RespondError maps domain errors to HTTP responses using RFC7807.
// Authentication failures (401) and authorization failures (403) are kept
// strictly apart, and 401 details never reveal which check rejected the
// credential.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "Invalid Credentials", "invalid email or password")
	case errors.Is(err, shared.ErrUnauthenticated),
		errors.Is(err, shared.ErrTokenExpired),
		errors.Is(err, shared.ErrTokenMalformed),
		errors.Is(err, shared.ErrBadSignature),
		errors.Is(err, shared.ErrWrongPurpose):
		Problem(w, http.StatusUnauthorized, "Unauthorized", "")
	case errors.Is(err, shared.ErrInactiveUser):
		Problem(w, http.StatusForbidden, "Inactive User", "account is deactivated")
	case errors.Is(err, shared.ErrForbidden):
		Problem(w, http.StatusForbidden, "Forbidden", "insufficient rights on this resource")
	case errors.Is(err, shared.ErrEmailTaken):
		Problem(w, http.StatusConflict, "Email Taken", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
