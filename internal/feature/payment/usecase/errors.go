// Package usecase implements the payment workflow: local card checks
// followed by a single forwarded charge to the external gateway.
package usecase

import "errors"

var (
	// ErrInvalidCardNumber is returned when the card number fails the
	// length or Luhn checks.
	ErrInvalidCardNumber = errors.New("invalid card number")

	// ErrInvalidExpiry is returned for a malformed or past expiry date.
	ErrInvalidExpiry = errors.New("invalid expiry date")

	// ErrInvalidCVC is returned when the CVC is not 3 or 4 digits.
	ErrInvalidCVC = errors.New("invalid cvc code")

	// ErrMissingHolderName is returned when the holder name is blank.
	ErrMissingHolderName = errors.New("card holder name is required")

	// ErrGatewayDeclined is returned when the gateway answers with a
	// non-success status. The gateway's own message is wrapped verbatim.
	ErrGatewayDeclined = errors.New("payment declined by gateway")

	// ErrGatewayUnavailable is returned when the charge request never
	// completes (connection failure, timeout). The card may or may not
	// have been charged; callers must not blindly retry.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
