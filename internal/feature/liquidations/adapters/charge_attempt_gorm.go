package adapters

import (
	"context"

	"gorm.io/gorm"

	"courier_backend/internal/feature/liquidations/domain/entity"
	"courier_backend/internal/feature/liquidations/usecase"
)

// chargeAttemptGorm is a GORM implementation of the ChargeAttemptRepository interface.
type chargeAttemptGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure chargeAttemptGorm implements ChargeAttemptRepository.
var _ usecase.ChargeAttemptRepository = (*chargeAttemptGorm)(nil)

// NewChargeAttemptGorm creates a new instance of chargeAttemptGorm.
func NewChargeAttemptGorm(db *gorm.DB) *chargeAttemptGorm {
	return &chargeAttemptGorm{db: db}
}

// Create persists a new charge attempt.
func (r *chargeAttemptGorm) Create(ctx context.Context, a *entity.ChargeAttempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}

// SetOutcome records the terminal state of an attempt.
func (r *chargeAttemptGorm) SetOutcome(ctx context.Context, id uint, status entity.AttemptStatus, transactionID, errorMessage string) error {
	return r.db.WithContext(ctx).
		Model(&entity.ChargeAttempt{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":         status,
			"transaction_id": transactionID,
			"error_message":  errorMessage,
		}).Error
}
