// Package usecase implements the business logic for system configuration.
package usecase

import (
	"context"
	"errors"

	"courier_backend/internal/feature/sysconfig/domain/entity"
)

var (
	// ErrMissingCompanyFields is returned when company name or support
	// email is blank.
	ErrMissingCompanyFields = errors.New("company name and support email are required")

	// ErrMissingSMTPFields is returned when any SMTP field is blank.
	ErrMissingSMTPFields = errors.New("all smtp fields are required")

	// ErrConfigNotFound is returned when the singleton row is absent.
	ErrConfigNotFound = errors.New("system config not found")
)

// ConfigRepository abstracts the persistence of the singleton row.
type ConfigRepository interface {
	// Get retrieves the singleton. Returns ErrConfigNotFound when no
	// configuration has been saved yet.
	Get(ctx context.Context) (*entity.SystemConfig, error)

	// Save upserts the singleton row.
	Save(ctx context.Context, cfg *entity.SystemConfig) error
}

// SMTPChecker verifies that a mail server accepts the configuration.
type SMTPChecker interface {
	Check(ctx context.Context, smtp entity.SMTPConfig) error
}

type sysconfigUsecase struct {
	configs ConfigRepository
	smtp    SMTPChecker
}

// NewSysconfigUsecase creates a new instance of sysconfigUsecase.
func NewSysconfigUsecase(configs ConfigRepository, smtp SMTPChecker) *sysconfigUsecase {
	return &sysconfigUsecase{configs: configs, smtp: smtp}
}

// Get returns the stored configuration, or the defaults when none has
// been saved yet.
func (u *sysconfigUsecase) Get(ctx context.Context) (*entity.SystemConfig, error) {
	cfg, err := u.configs.Get(ctx)
	if errors.Is(err, ErrConfigNotFound) {
		return entity.DefaultSystemConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateSMTP checks that every SMTP field is filled in.
func validateSMTP(s entity.SMTPConfig) error {
	if s.Host == "" || s.Port == 0 || s.User == "" || s.Password == "" {
		return ErrMissingSMTPFields
	}
	return nil
}

// Save validates and upserts the configuration.
func (u *sysconfigUsecase) Save(ctx context.Context, cfg *entity.SystemConfig) error {
	if cfg.CompanyName == "" || cfg.SupportEmail == "" {
		return ErrMissingCompanyFields
	}
	if err := validateSMTP(cfg.SMTP); err != nil {
		return err
	}
	cfg.ID = entity.SystemConfigID
	return u.configs.Save(ctx, cfg)
}

// TestSMTP validates the fields and performs a live handshake against
// the configured server.
func (u *sysconfigUsecase) TestSMTP(ctx context.Context, smtp entity.SMTPConfig) error {
	if err := validateSMTP(smtp); err != nil {
		return err
	}
	return u.smtp.Check(ctx, smtp)
}
