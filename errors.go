package commerce

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeUserNotFound      = "auth_user_not_found"
	TextCodeExternalProvider  = "auth_external_provider"
	TextCodeWrongPassword     = "auth_wrong_password"
	TextCodeTokenExpired      = "auth_token_expired"
	TextCodeTokenMalformed    = "auth_token_malformed"
	TextCodeClaimsDecode      = "auth_claims_decode"
	TextCodeNoIdentityClaim   = "auth_no_identity_claim"
	TextCodeMissingAuthHeader = "auth_missing_header"
	TextCodePartialAuthHeader = "auth_partial_header"
)

// ErrUserNotFound is returned when no credential record matches the login
// email. The message is part of the wire contract with existing clients.
var ErrUserNotFound = errors.New("Incorrect email or User does not exist", errors.CategoryNotFound).
	WithTextCode(TextCodeUserNotFound).
	WithCode(errors.CodeNotFound)

// ErrExternalProvider is returned for accounts that were provisioned through
// an identity provider and therefore have no local password to verify.
var ErrExternalProvider = errors.New("Please log in back via a provider", errors.CategoryBadInput).
	WithTextCode(TextCodeExternalProvider).
	WithCode(errors.CodeBadRequest)

// ErrWrongPassword is returned on a bcrypt mismatch.
var ErrWrongPassword = errors.New("Wrong password", errors.CategoryAuth).
	WithTextCode(TextCodeWrongPassword).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when a token's exp claim has elapsed.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token fails to parse or its signature
// does not verify.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrClaimsDecode is returned when a token verifies but its claims cannot be
// mapped to the expected structure. Surfaced as a server fault: a token we
// signed should always carry claims we can read.
var ErrClaimsDecode = errors.New("Error while decrypting token", errors.CategoryInternal).
	WithTextCode(TextCodeClaimsDecode).
	WithCode(errors.CodeInternal)

// ErrNoIdentityClaim is returned when valid claims carry no user identifier.
var ErrNoIdentityClaim = errors.New("token has no bound user", errors.CategoryAuth).
	WithTextCode(TextCodeNoIdentityClaim).
	WithCode(errors.CodeUnauthorized)

// ErrMissingAuthHeader is returned by the gate when the Authorization header
// is absent.
var ErrMissingAuthHeader = errors.New("Unauthorized access", errors.CategoryAuth).
	WithTextCode(TextCodeMissingAuthHeader).
	WithCode(errors.CodeUnauthorized)

// ErrPartialAuthHeader is returned when the header is present but either the
// access or the refresh token slot is empty.
var ErrPartialAuthHeader = errors.New("No header properties were found", errors.CategoryAuth).
	WithTextCode(TextCodePartialAuthHeader).
	WithCode(errors.CodeUnauthorized)

// ErrUserExists is returned on registration with an already-used email.
var ErrUserExists = errors.New("user already exists", errors.CategoryConflict).
	WithTextCode("auth_user_exists").
	WithCode(errors.CodeBadRequest)

// ErrNoEmptyString rejects empty passwords before they reach bcrypt.
var ErrNoEmptyString = errors.New("password must not be empty", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the normalized bcrypt mismatch error.
var ErrMismatchedHashAndPassword = errors.New("hash and password mismatch", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for error message
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
