// Package entity defines the domain entities for the packages feature.
package entity

import "time"

// Status describes where a shipment currently is in its lifecycle.
type Status string

const (
	StatusRegistered  Status = "REGISTERED"
	StatusInTransit   Status = "IN_TRANSIT"
	StatusInWarehouse Status = "IN_WAREHOUSE"
	StatusDelivered   Status = "DELIVERED"
	StatusHeld        Status = "HELD"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusRegistered, StatusInTransit, StatusInWarehouse, StatusDelivered, StatusHeld:
		return true
	}
	return false
}

// Package represents a shipment owned by exactly one client.
// Tracking is the carrier-assigned reference and the primary
// human-facing lookup key.
type Package struct {
	ID          uint   `gorm:"primaryKey"`
	Tracking    string `gorm:"uniqueIndex;size:64;not null"`
	ClientID    uint   `gorm:"index;not null"`
	Value       float64
	Description string `gorm:"size:512"`
	Status      Status `gorm:"size:16;not null;default:REGISTERED"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
