package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"courier_backend/internal/feature/liquidations/domain/entity"
	paymentusecase "courier_backend/internal/feature/payment/usecase"
)

// LiquidationRepository abstracts the persistence layer for liquidations.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type LiquidationRepository interface {
	// Create persists a new liquidation.
	Create(ctx context.Context, l *entity.Liquidation) error

	// FindByID retrieves a liquidation with its package preloaded.
	FindByID(ctx context.Context, id uint) (*entity.Liquidation, error)

	// List returns all liquidations joined with their packages, newest
	// first by creation time.
	List(ctx context.Context) ([]*entity.Liquidation, error)

	// ListByClient returns the liquidations whose package belongs to the
	// given client, newest first.
	ListByClient(ctx context.Context, clientID uint) ([]*entity.Liquidation, error)

	// MarkPaid transitions PENDING→PAID recording the gateway
	// transaction id. The update is conditional on the stored status
	// still being PENDING; zero rows affected means a concurrent
	// transition won, reported as ErrLiquidationConflict.
	MarkPaid(ctx context.Context, id uint, transactionID string) error

	// MarkCancelled transitions PENDING→CANCELLED under the same
	// conditional-update contract as MarkPaid.
	MarkCancelled(ctx context.Context, id uint) error
}

// ChargeAttemptRepository records outbound charge attempts.
type ChargeAttemptRepository interface {
	// Create persists a new attempt in state INITIATED.
	Create(ctx context.Context, a *entity.ChargeAttempt) error

	// SetOutcome records the terminal state of an attempt.
	SetOutcome(ctx context.Context, id uint, status entity.AttemptStatus, transactionID, errorMessage string) error
}

// PaymentService is the slice of the payment feature consumed here.
type PaymentService interface {
	Charge(ctx context.Context, in paymentusecase.ChargeInput) (*paymentusecase.ChargeResult, error)
}

// PayInput carries everything needed to pay one liquidation.
type PayInput struct {
	LiquidationID uint
	Amount        float64
	CardNumber    string
	Expiry        string
	CVC           string
	HolderName    string
}

type liquidationUsecase struct {
	liquidations LiquidationRepository
	attempts     ChargeAttemptRepository
	payments     PaymentService
}

// NewLiquidationUsecase creates a new instance of liquidationUsecase.
func NewLiquidationUsecase(liquidations LiquidationRepository, attempts ChargeAttemptRepository, payments PaymentService) *liquidationUsecase {
	return &liquidationUsecase{
		liquidations: liquidations,
		attempts:     attempts,
		payments:     payments,
	}
}

// Create opens a new liquidation in state PENDING.
func (u *liquidationUsecase) Create(ctx context.Context, packageID uint, amount float64, invoiceRef string) (*entity.Liquidation, error) {
	if amount < 0 {
		return nil, ErrNegativeAmount
	}
	l := &entity.Liquidation{
		PackageID:  packageID,
		Amount:     amount,
		Status:     entity.StatusPending,
		InvoiceRef: invoiceRef,
	}
	if err := u.liquidations.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// List returns every liquidation for the admin table and the public API.
func (u *liquidationUsecase) List(ctx context.Context) ([]*entity.Liquidation, error) {
	return u.liquidations.List(ctx)
}

// ListByClient returns the liquidations of one client's packages.
func (u *liquidationUsecase) ListByClient(ctx context.Context, clientID uint) ([]*entity.Liquidation, error) {
	return u.liquidations.ListByClient(ctx, clientID)
}

// Pay charges the card and transitions the liquidation PENDING→PAID.
//
// Paying an already-PAID liquidation is an idempotent no-op: the stored
// record is returned and the gateway is never invoked. A CANCELLED
// liquidation cannot be paid. Before any network call a ChargeAttempt
// row is written with a fresh idempotency key, so an interrupted
// attempt leaves a trace that a retry can be reconciled against.
func (u *liquidationUsecase) Pay(ctx context.Context, in PayInput) (*entity.Liquidation, error) {
	l, err := u.liquidations.FindByID(ctx, in.LiquidationID)
	if err != nil {
		return nil, err
	}

	switch l.Status {
	case entity.StatusPaid:
		return l, nil
	case entity.StatusCancelled:
		return nil, ErrLiquidationClosed
	}

	attempt := &entity.ChargeAttempt{
		LiquidationID:  l.ID,
		IdempotencyKey: uuid.NewString(),
		Amount:         in.Amount,
		Status:         entity.AttemptInitiated,
	}
	if err := u.attempts.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("record charge attempt: %w", err)
	}

	result, err := u.payments.Charge(ctx, paymentusecase.ChargeInput{
		CardNumber:     in.CardNumber,
		Expiry:         in.Expiry,
		CVC:            in.CVC,
		HolderName:     in.HolderName,
		Amount:         in.Amount,
		OrderID:        fmt.Sprintf("LIQ-%d", l.ID),
		IdempotencyKey: attempt.IdempotencyKey,
		Items: []paymentusecase.Item{
			{ID: fmt.Sprintf("%d", l.ID), Description: "Customs liquidation", Amount: in.Amount},
		},
	})
	if err != nil {
		if aerr := u.attempts.SetOutcome(ctx, attempt.ID, entity.AttemptFailed, "", err.Error()); aerr != nil {
			slog.Warn("failed to record charge outcome", "error", aerr, "attempt_id", attempt.ID)
		}
		return nil, err
	}

	if err := u.liquidations.MarkPaid(ctx, l.ID, result.TransactionID); err != nil {
		if errors.Is(err, ErrLiquidationConflict) {
			// Another payment raced us after the gateway accepted this
			// charge. Keep the attempt record for manual reconciliation.
			slog.Warn("payment succeeded but status transition lost the race",
				"liquidation_id", l.ID, "transaction_id", result.TransactionID)
		}
		if aerr := u.attempts.SetOutcome(ctx, attempt.ID, entity.AttemptSucceeded, result.TransactionID, ""); aerr != nil {
			slog.Warn("failed to record charge outcome", "error", aerr, "attempt_id", attempt.ID)
		}
		return nil, err
	}

	if err := u.attempts.SetOutcome(ctx, attempt.ID, entity.AttemptSucceeded, result.TransactionID, ""); err != nil {
		slog.Warn("failed to record charge outcome", "error", err, "attempt_id", attempt.ID)
	}

	return u.liquidations.FindByID(ctx, l.ID)
}

// Cancel transitions a liquidation PENDING→CANCELLED.
func (u *liquidationUsecase) Cancel(ctx context.Context, id uint) error {
	if _, err := u.liquidations.FindByID(ctx, id); err != nil {
		return err
	}
	return u.liquidations.MarkCancelled(ctx, id)
}
