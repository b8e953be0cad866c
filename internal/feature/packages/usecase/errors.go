// Package usecase implements the business logic for the packages feature.
package usecase

import "errors"

var (
	// ErrPackageNotFound is returned when no package matches the lookup.
	ErrPackageNotFound = errors.New("package not found")

	// ErrTrackingAlreadyExists is returned when registering a tracking
	// number that is already in use.
	ErrTrackingAlreadyExists = errors.New("tracking number already exists")

	// ErrInvalidStatus is returned when a status value is not part of the
	// package lifecycle.
	ErrInvalidStatus = errors.New("invalid package status")
)
