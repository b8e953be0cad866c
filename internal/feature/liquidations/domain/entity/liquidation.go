// Package entity defines the domain entities for the liquidations feature.
package entity

import (
	"time"

	pkgentity "courier_backend/internal/feature/packages/domain/entity"
)

// Status is the lifecycle state of a liquidation. Transitions are
// monotonic forward: PENDING→PAID or PENDING→CANCELLED, nothing else.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusCancelled Status = "CANCELLED"
)

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// Liquidation is a customs settlement invoice tied to one package,
// owed by the package's client. It is paid or cancelled, never deleted.
type Liquidation struct {
	ID        uint               `gorm:"primaryKey"`
	PackageID uint               `gorm:"index;not null"`
	Package   *pkgentity.Package `gorm:"foreignKey:PackageID"`
	Amount    float64            `gorm:"not null"`
	Status    Status             `gorm:"size:16;not null;default:PENDING"`

	// InvoiceRef is a stable object key or URL of the attached invoice,
	// assigned after a real upload completes. Optional.
	InvoiceRef string `gorm:"size:512"`

	// TransactionID is the gateway reference recorded when the
	// liquidation transitions to PAID.
	TransactionID string `gorm:"size:128"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
