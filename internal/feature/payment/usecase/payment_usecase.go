package usecase

import (
	"context"
	"strings"
	"time"
)

// Item is one line item of a charge.
type Item struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// ChargeInput carries the card details and order data for one charge.
type ChargeInput struct {
	CardNumber     string
	Expiry         string
	CVC            string
	HolderName     string
	Amount         float64
	OrderID        string
	IdempotencyKey string
	Items          []Item
}

// ChargeResult is the outcome of a successful charge.
type ChargeResult struct {
	TransactionID string
}

// GatewayRequest is what the adapter forwards to the external provider.
// The card number is already stripped of spaces and dashes.
type GatewayRequest struct {
	Amount         float64
	OrderID        string
	IdempotencyKey string
	CardNumber     string
	Expiry         string
	CVC            string
	HolderName     string
	Items          []Item
}

// Gateway abstracts the external payment provider.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters/payphone).
type Gateway interface {
	// Charge performs a single charge attempt. No retries are made; a
	// transport failure surfaces as ErrGatewayUnavailable.
	Charge(ctx context.Context, req GatewayRequest) (*ChargeResult, error)
}

// paymentUsecase validates card details locally and forwards the charge.
type paymentUsecase struct {
	gateway Gateway
	now     func() time.Time
}

// NewPaymentUsecase creates a new instance of paymentUsecase.
func NewPaymentUsecase(gateway Gateway) *paymentUsecase {
	return &paymentUsecase{gateway: gateway, now: time.Now}
}

// Charge validates the card fields in order (number, expiry, cvc,
// holder), short-circuiting on the first failure, then issues exactly
// one charge against the gateway. No partial charge is ever attempted.
func (u *paymentUsecase) Charge(ctx context.Context, in ChargeInput) (*ChargeResult, error) {
	if !ValidateCard(in.CardNumber) {
		return nil, ErrInvalidCardNumber
	}
	if !ValidateExpiry(in.Expiry, u.now()) {
		return nil, ErrInvalidExpiry
	}
	if !ValidateCVC(in.CVC) {
		return nil, ErrInvalidCVC
	}
	if strings.TrimSpace(in.HolderName) == "" {
		return nil, ErrMissingHolderName
	}

	return u.gateway.Charge(ctx, GatewayRequest{
		Amount:         in.Amount,
		OrderID:        in.OrderID,
		IdempotencyKey: in.IdempotencyKey,
		CardNumber:     strings.NewReplacer(" ", "", "-", "").Replace(in.CardNumber),
		Expiry:         in.Expiry,
		CVC:            in.CVC,
		HolderName:     in.HolderName,
		Items:          in.Items,
	})
}
