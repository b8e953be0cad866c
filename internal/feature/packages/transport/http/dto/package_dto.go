// Package dto defines the HTTP request/response shapes for the packages feature.
package dto

import (
	"time"

	"courier_backend/internal/feature/packages/domain/entity"
)

// CreatePackageRequest registers a new shipment for a client.
type CreatePackageRequest struct {
	Tracking    string  `json:"tracking" binding:"required"`
	ClientID    uint    `json:"clientId" binding:"required"`
	Value       float64 `json:"value" binding:"gte=0"`
	Description string  `json:"description"`
}

// UpdateStatusRequest moves a package to a new lifecycle status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PackageResponse is the transport projection of a package.
type PackageResponse struct {
	ID          uint      `json:"id"`
	Tracking    string    `json:"tracking"`
	ClientID    uint      `json:"clientId"`
	Value       float64   `json:"value"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewPackageResponse projects a package entity for transport.
func NewPackageResponse(p *entity.Package) PackageResponse {
	return PackageResponse{
		ID:          p.ID,
		Tracking:    p.Tracking,
		ClientID:    p.ClientID,
		Value:       p.Value,
		Description: p.Description,
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
