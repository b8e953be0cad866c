// Package adapters provides persistence and SMTP implementations for the
// sysconfig feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"courier_backend/internal/feature/sysconfig/domain/entity"
	"courier_backend/internal/feature/sysconfig/usecase"
)

// configGorm is a GORM implementation of the ConfigRepository interface.
type configGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure configGorm implements ConfigRepository.
var _ usecase.ConfigRepository = (*configGorm)(nil)

// NewConfigGorm creates a new instance of configGorm.
func NewConfigGorm(db *gorm.DB) *configGorm {
	return &configGorm{db: db}
}

// Get retrieves the singleton configuration row.
func (r *configGorm) Get(ctx context.Context) (*entity.SystemConfig, error) {
	var cfg entity.SystemConfig
	if err := r.db.WithContext(ctx).First(&cfg, entity.SystemConfigID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrConfigNotFound
		}
		return nil, err
	}
	return &cfg, nil
}

// Save upserts the singleton row on its fixed primary key.
func (r *configGorm) Save(ctx context.Context, cfg *entity.SystemConfig) error {
	cfg.ID = entity.SystemConfigID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(cfg).Error
}
