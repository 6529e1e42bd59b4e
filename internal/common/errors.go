// Package common defines shared constants and sentinel errors used across
// gitnotes components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrorPersistence = errors.New("persistence error")

	// Remote (GitHub) errors.
	ErrorRemoteUnavailable = errors.New("remote unavailable")
	ErrorRemoteConflict    = errors.New("remote revision conflict")

	// Validation / policy errors.
	ErrorValidation = errors.New("validation error")
)
