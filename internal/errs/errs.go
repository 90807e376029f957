// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrInvalidSpecification indicates a structurally invalid room specification.
	ErrInvalidSpecification = errors.New("invalid specification")

	// ErrInvalidName indicates a room name that fails the format check after normalization.
	ErrInvalidName = errors.New("invalid room name")

	// ErrDuplicateRoomName indicates a non-archived room with the same name already exists.
	ErrDuplicateRoomName = errors.New("duplicate room name")

	// ErrGatewayUnavailable indicates the media-provisioning gateway call failed.
	ErrGatewayUnavailable = errors.New("media gateway unavailable")

	// ErrRoomNotFound indicates no non-archived room matched the lookup.
	ErrRoomNotFound = errors.New("room not found")

	// ErrUnauthorized indicates the presented credentials were denied.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrTokenRequired indicates a password-protected room was accessed without an access token.
	ErrTokenRequired = errors.New("access token required")

	// ErrMissingProfileFields indicates a first-time join without display name or avatar color.
	ErrMissingProfileFields = errors.New("missing profile fields")

	// ErrUnknownTab indicates a tab id absent from the tab registry.
	ErrUnknownTab = errors.New("unknown tab")

	// ErrStorageFailure indicates the room store failed for a reason other than "not found".
	ErrStorageFailure = errors.New("storage failure")
)
