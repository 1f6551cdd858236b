package main

import (
	"errors"

	"github.com/iota-uz/officelife/pkg/serrors"
)

const (
	exitOK         = 0
	exitInternal   = 1
	exitValidation = 2
	exitUsage      = 3
	exitNotFound   = 4
	exitForbidden  = 5
	exitConflict   = 6
)

type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// exitCode maps err to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	switch serrors.KindOf(err) {
	case serrors.KindValidation:
		return exitValidation
	case serrors.KindNotFound:
		return exitNotFound
	case serrors.KindForbidden:
		return exitForbidden
	case serrors.KindAlreadyExists:
		return exitConflict
	default:
		return exitInternal
	}
}
