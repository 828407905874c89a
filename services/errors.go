package services

import "errors"

// Error classes returned by the credential and gadget managers. Callers
// test for them with errors.Is; the wrapped detail is for logs only.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("no token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrInternal           = errors.New("internal error")
)
