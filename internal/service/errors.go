package service

import "errors"

// Error taxonomy shared by all services. Handlers translate these into HTTP
// status codes; services wrap them with context via fmt.Errorf and %w.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("invalid input")
)
