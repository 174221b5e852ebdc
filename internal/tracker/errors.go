package tracker

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Domain-level errors shared by the bootstrap and store layers
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrWrongPassword        = errors.New("wrong password")
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrWeakPassword         = errors.New("weak password")
	ErrInvalidEmail         = errors.New("invalid email")
	ErrNetworkRequestFailed = errors.New("network request failed")

	ErrPermissionDenied  = errors.New("permission denied")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrAlreadyExists     = errors.New("document already exists")
	ErrResourceExhausted = errors.New("resource exhausted")
	ErrUnauthenticated   = errors.New("unauthenticated")

	ErrNotInitialized     = errors.New("session bootstrap not initialized")
	ErrMissingProjectID   = errors.New("project ID is required")
	ErrConfigurationError = errors.New("configuration error")
	ErrCacheKeyNotFound   = errors.New("cache key not found")
)

// Published authentication error codes. Collaborator integrations match on
// these literals, so they must not change.
const (
	AuthCodeUserNotFound         = "auth/user-not-found"
	AuthCodeWrongPassword        = "auth/wrong-password"
	AuthCodeEmailAlreadyInUse    = "auth/email-already-in-use"
	AuthCodeWeakPassword         = "auth/weak-password"
	AuthCodeInvalidEmail         = "auth/invalid-email"
	AuthCodeNetworkRequestFailed = "auth/network-request-failed"
)

// Published document-database error codes.
const (
	FirestoreCodePermissionDenied  = "permission-denied"
	FirestoreCodeNotFound          = "not-found"
	FirestoreCodeAlreadyExists     = "already-exists"
	FirestoreCodeResourceExhausted = "resource-exhausted"
	FirestoreCodeUnauthenticated   = "unauthenticated"
)

// AuthCodes returns the closed set of published auth error codes
func AuthCodes() []string {
	return []string{
		AuthCodeUserNotFound,
		AuthCodeWrongPassword,
		AuthCodeEmailAlreadyInUse,
		AuthCodeWeakPassword,
		AuthCodeInvalidEmail,
		AuthCodeNetworkRequestFailed,
	}
}

// FirestoreCodes returns the closed set of published firestore error codes
func FirestoreCodes() []string {
	return []string{
		FirestoreCodePermissionDenied,
		FirestoreCodeNotFound,
		FirestoreCodeAlreadyExists,
		FirestoreCodeResourceExhausted,
		FirestoreCodeUnauthenticated,
	}
}

// AuthErrorCode maps a domain auth error to its published code.
// Returns an empty string for errors outside the published set.
func AuthErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return AuthCodeUserNotFound
	case errors.Is(err, ErrWrongPassword):
		return AuthCodeWrongPassword
	case errors.Is(err, ErrEmailAlreadyInUse):
		return AuthCodeEmailAlreadyInUse
	case errors.Is(err, ErrWeakPassword):
		return AuthCodeWeakPassword
	case errors.Is(err, ErrInvalidEmail):
		return AuthCodeInvalidEmail
	case errors.Is(err, ErrNetworkRequestFailed):
		return AuthCodeNetworkRequestFailed
	default:
		return ""
	}
}

// FirestoreErrorCode maps a domain store error to its published code.
// Returns an empty string for errors outside the published set.
func FirestoreErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrPermissionDenied):
		return FirestoreCodePermissionDenied
	case errors.Is(err, ErrDocumentNotFound):
		return FirestoreCodeNotFound
	case errors.Is(err, ErrAlreadyExists):
		return FirestoreCodeAlreadyExists
	case errors.Is(err, ErrResourceExhausted):
		return FirestoreCodeResourceExhausted
	case errors.Is(err, ErrUnauthenticated):
		return FirestoreCodeUnauthenticated
	default:
		return ""
	}
}

// MapFirestoreError converts a Firestore RPC error to the matching domain
// error. Errors without a published equivalent are returned unchanged.
func MapFirestoreError(err error) error {
	if err == nil {
		return nil
	}

	switch status.Code(err) {
	case codes.PermissionDenied:
		return ErrPermissionDenied
	case codes.NotFound:
		return ErrDocumentNotFound
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.ResourceExhausted:
		return ErrResourceExhausted
	case codes.Unauthenticated:
		return ErrUnauthenticated
	default:
		return err
	}
}
