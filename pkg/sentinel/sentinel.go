// Package sentinel defines the error values stores return. Dependencies
// return these (optionally wrapped) so services can translate them into domain
// errors exactly once.
package sentinel

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrUnavailable  = errors.New("unavailable")
)
