// Package usecase implements the liquidation lifecycle: creation,
// listing, payment and cancellation.
package usecase

import "errors"

var (
	// ErrLiquidationNotFound is returned when no liquidation matches the id.
	ErrLiquidationNotFound = errors.New("liquidation not found")

	// ErrLiquidationConflict is returned when a status transition loses
	// the compare-and-swap, i.e. a concurrent request already moved the
	// liquidation out of PENDING.
	ErrLiquidationConflict = errors.New("liquidation was modified concurrently")

	// ErrLiquidationClosed is returned when paying a cancelled liquidation.
	ErrLiquidationClosed = errors.New("liquidation is cancelled")

	// ErrNegativeAmount is returned when creating a liquidation with a
	// negative amount.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrPackageMissing is returned when creating a liquidation for a
	// package that does not exist.
	ErrPackageMissing = errors.New("package does not exist")
)
