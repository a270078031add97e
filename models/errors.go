package models

import "errors"

var (
	// ErrValidation is matched by every error produced by input validation.
	ErrValidation = errors.New("validation failed")

	// ErrStorage is matched by every error returned from CatalogRepository.
	ErrStorage = errors.New("storage failure")
)

// ValidationError describes why caller input was rejected before reaching storage.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// StorageError is the single failure shape of the repository. Error returns a
// message that is safe to hand to API clients; the underlying cause stays
// reachable through errors.Is and errors.As.
type StorageError struct {
	Op      string
	Message string
	Err     error
}

func (e *StorageError) Error() string {
	return e.Message
}

func (e *StorageError) Unwrap() []error {
	return []error{ErrStorage, e.Err}
}
