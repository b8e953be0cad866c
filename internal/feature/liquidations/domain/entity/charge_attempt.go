package entity

import "time"

// AttemptStatus is the outcome of one outbound charge attempt.
type AttemptStatus string

const (
	AttemptInitiated AttemptStatus = "INITIATED"
	AttemptSucceeded AttemptStatus = "SUCCEEDED"
	AttemptFailed    AttemptStatus = "FAILED"
)

// ChargeAttempt is written before every call to the payment gateway.
// It ties an idempotency key to a liquidation so a retry after a
// timeout can be reconciled instead of charged twice.
type ChargeAttempt struct {
	ID             uint          `gorm:"primaryKey"`
	LiquidationID  uint          `gorm:"index;not null"`
	IdempotencyKey string        `gorm:"uniqueIndex;size:64;not null"`
	Amount         float64       `gorm:"not null"`
	Status         AttemptStatus `gorm:"size:16;not null;default:INITIATED"`
	TransactionID  string        `gorm:"size:128"`
	ErrorMessage   string        `gorm:"size:512"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
