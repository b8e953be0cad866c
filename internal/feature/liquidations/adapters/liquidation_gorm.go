// Package adapters provides repository implementations for the liquidations feature.
package adapters

import (
	"context"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"courier_backend/internal/feature/liquidations/domain/entity"
	"courier_backend/internal/feature/liquidations/usecase"
)

// liquidationGorm is a GORM implementation of the LiquidationRepository interface.
type liquidationGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure liquidationGorm implements LiquidationRepository.
var _ usecase.LiquidationRepository = (*liquidationGorm)(nil)

// NewLiquidationGorm creates a new instance of liquidationGorm.
func NewLiquidationGorm(db *gorm.DB) *liquidationGorm {
	return &liquidationGorm{db: db}
}

// Create persists a new liquidation.
// A foreign key violation on PackageID (PostgreSQL 23503, MySQL 1452)
// is translated to usecase.ErrPackageMissing.
func (r *liquidationGorm) Create(ctx context.Context, l *entity.Liquidation) error {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return usecase.ErrPackageMissing
		}
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1452 {
			return usecase.ErrPackageMissing
		}
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return usecase.ErrPackageMissing
		}
		return err
	}
	return nil
}

// FindByID retrieves a liquidation with its package preloaded.
func (r *liquidationGorm) FindByID(ctx context.Context, id uint) (*entity.Liquidation, error) {
	var l entity.Liquidation
	if err := r.db.WithContext(ctx).Preload("Package").First(&l, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrLiquidationNotFound
		}
		return nil, err
	}
	return &l, nil
}

// List returns all liquidations with their packages, newest first.
func (r *liquidationGorm) List(ctx context.Context) ([]*entity.Liquidation, error) {
	var ls []*entity.Liquidation
	if err := r.db.WithContext(ctx).
		Preload("Package").
		Order("created_at DESC").
		Find(&ls).Error; err != nil {
		return nil, err
	}
	return ls, nil
}

// ListByClient returns the liquidations of packages owned by clientID,
// newest first.
func (r *liquidationGorm) ListByClient(ctx context.Context, clientID uint) ([]*entity.Liquidation, error) {
	var ls []*entity.Liquidation
	if err := r.db.WithContext(ctx).
		Preload("Package").
		Joins("JOIN packages ON packages.id = liquidations.package_id").
		Where("packages.client_id = ?", clientID).
		Order("liquidations.created_at DESC").
		Find(&ls).Error; err != nil {
		return nil, err
	}
	return ls, nil
}

// MarkPaid performs the conditional PENDING→PAID transition.
// The WHERE clause on status is the compare-and-swap: when another
// request already moved the row, zero rows match and the caller gets
// ErrLiquidationConflict instead of a silent double transition.
func (r *liquidationGorm) MarkPaid(ctx context.Context, id uint, transactionID string) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Liquidation{}).
		Where("id = ? AND status = ?", id, entity.StatusPending).
		Updates(map[string]interface{}{
			"status":         entity.StatusPaid,
			"transaction_id": transactionID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.conflictOrNotFound(ctx, id)
	}
	return nil
}

// MarkCancelled performs the conditional PENDING→CANCELLED transition.
func (r *liquidationGorm) MarkCancelled(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Liquidation{}).
		Where("id = ? AND status = ?", id, entity.StatusPending).
		Update("status", entity.StatusCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.conflictOrNotFound(ctx, id)
	}
	return nil
}

// conflictOrNotFound distinguishes a lost compare-and-swap from a
// missing row.
func (r *liquidationGorm) conflictOrNotFound(ctx context.Context, id uint) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entity.Liquidation{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return usecase.ErrLiquidationNotFound
	}
	return usecase.ErrLiquidationConflict
}
