// Package dto defines the wire shapes of the payment gateway API.
package dto

import "courier_backend/internal/feature/payment/usecase"

// ChargeRequest is the JSON body POSTed to the gateway.
type ChargeRequest struct {
	Identifier     string         `json:"identifier"`
	Amount         float64        `json:"amount"`
	Currency       string         `json:"currency"`
	OrderID        string         `json:"orderId"`
	IdempotencyKey string         `json:"idempotencyKey,omitempty"`
	Card           Card           `json:"card"`
	Items          []usecase.Item `json:"items"`
}

// Card carries the card details inside a ChargeRequest.
type Card struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"`
	CVC    string `json:"cvc"`
	Name   string `json:"name"`
}

// ChargeResponse is the gateway's answer. On failure Message carries
// the human-readable reason.
type ChargeResponse struct {
	TransactionID string `json:"transactionId"`
	Message       string `json:"message"`
}
