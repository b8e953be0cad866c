package usecase

import (
	"context"

	"courier_backend/internal/feature/packages/domain/entity"
)

// PackageRepository abstracts the persistence layer for package entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type PackageRepository interface {
	// Create persists a new package. Returns an error when the tracking
	// number is already registered.
	Create(ctx context.Context, p *entity.Package) error

	// FindByID retrieves a package by its ID.
	FindByID(ctx context.Context, id uint) (*entity.Package, error)

	// FindByTracking retrieves a package by its tracking number.
	FindByTracking(ctx context.Context, tracking string) (*entity.Package, error)

	// List returns all packages, newest first.
	List(ctx context.Context) ([]*entity.Package, error)

	// ListByClient returns the packages owned by one client, newest first.
	ListByClient(ctx context.Context, clientID uint) ([]*entity.Package, error)

	// UpdateStatus sets the status of a package.
	UpdateStatus(ctx context.Context, id uint, status entity.Status) error
}

// CreateInput carries the fields for registering a package.
type CreateInput struct {
	Tracking    string
	ClientID    uint
	Value       float64
	Description string
}

type packageUsecase struct {
	packages PackageRepository
}

// NewPackageUsecase creates a new instance of packageUsecase.
func NewPackageUsecase(packages PackageRepository) *packageUsecase {
	return &packageUsecase{packages: packages}
}

// Create registers a new package in state REGISTERED.
func (u *packageUsecase) Create(ctx context.Context, in CreateInput) (*entity.Package, error) {
	p := &entity.Package{
		Tracking:    in.Tracking,
		ClientID:    in.ClientID,
		Value:       in.Value,
		Description: in.Description,
		Status:      entity.StatusRegistered,
	}
	if err := u.packages.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all packages for the admin table.
func (u *packageUsecase) List(ctx context.Context) ([]*entity.Package, error) {
	return u.packages.List(ctx)
}

// ListByClient returns the packages of one client for the dashboard.
func (u *packageUsecase) ListByClient(ctx context.Context, clientID uint) ([]*entity.Package, error) {
	return u.packages.ListByClient(ctx, clientID)
}

// FindByTracking looks a package up by its carrier reference.
func (u *packageUsecase) FindByTracking(ctx context.Context, tracking string) (*entity.Package, error) {
	return u.packages.FindByTracking(ctx, tracking)
}

// UpdateStatus moves a package to a new lifecycle status.
func (u *packageUsecase) UpdateStatus(ctx context.Context, id uint, status entity.Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return u.packages.UpdateStatus(ctx, id, status)
}
