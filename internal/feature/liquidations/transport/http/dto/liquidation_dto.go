// Package dto defines the HTTP request/response shapes for the liquidations feature.
package dto

import (
	"time"

	"courier_backend/internal/feature/liquidations/domain/entity"
	pkgdto "courier_backend/internal/feature/packages/transport/http/dto"
)

// CreateLiquidationRequest opens a new liquidation for a package.
type CreateLiquidationRequest struct {
	PackageID  uint    `json:"packageId" binding:"required"`
	Amount     float64 `json:"amount" binding:"gte=0"`
	InvoiceRef string  `json:"invoice"`
}

// PayLiquidationRequest pays a pending liquidation by card.
type PayLiquidationRequest struct {
	LiquidationID uint    `json:"liquidationId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	CardNumber    string  `json:"cardNumber" binding:"required"`
	Expiry        string  `json:"expiry" binding:"required"`
	CVC           string  `json:"cvc" binding:"required"`
	HolderName    string  `json:"name" binding:"required"`
}

// LiquidationResponse is the transport projection of a liquidation with
// its package embedded.
type LiquidationResponse struct {
	ID            uint                    `json:"id"`
	PackageID     uint                    `json:"packageId"`
	Package       *pkgdto.PackageResponse `json:"package,omitempty"`
	Amount        float64                 `json:"amount"`
	Status        string                  `json:"status"`
	Invoice       string                  `json:"invoice,omitempty"`
	TransactionID string                  `json:"transactionId,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	UpdatedAt     time.Time               `json:"updatedAt"`
}

// NewLiquidationResponse projects a liquidation entity for transport.
func NewLiquidationResponse(l *entity.Liquidation) LiquidationResponse {
	out := LiquidationResponse{
		ID:            l.ID,
		PackageID:     l.PackageID,
		Amount:        l.Amount,
		Status:        string(l.Status),
		Invoice:       l.InvoiceRef,
		TransactionID: l.TransactionID,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
	if l.Package != nil {
		p := pkgdto.NewPackageResponse(l.Package)
		out.Package = &p
	}
	return out
}

// NewLiquidationResponses projects a slice of liquidations.
func NewLiquidationResponses(ls []*entity.Liquidation) []LiquidationResponse {
	out := make([]LiquidationResponse, len(ls))
	for i, l := range ls {
		out[i] = NewLiquidationResponse(l)
	}
	return out
}
