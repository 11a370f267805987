package adapter

import "errors"

var (
	// ErrDeliveryFailure is returned when the remote side could not be reached
	// or did not accept the message. Retrying later may succeed.
	ErrDeliveryFailure = errors.New("message delivery failed")

	// ErrMissingConfiguration is returned when the gateway has no endpoint
	// or no secret configured.
	ErrMissingConfiguration = errors.New("message gateway is not configured")
)
