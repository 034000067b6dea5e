package services

import "errors"

// Sentinel errors shared by the services. Handlers map these onto HTTP
// statuses; anything else is treated as an internal error.
var (
	// ErrNotFound indicates no matching profile or property.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates a duplicate submission or referral.
	ErrConflict = errors.New("conflict")
	// ErrInvalidState indicates an operation not permitted from the
	// record's current review status.
	ErrInvalidState = errors.New("invalid state")
	// ErrValidation indicates missing or malformed caller input.
	ErrValidation = errors.New("validation failed")
	// ErrUpload indicates a media upload to the storage or video
	// platform collaborator failed. The whole operation aborts.
	ErrUpload = errors.New("upload failed")
)
