package types

import "errors"

// Failure taxonomy shared across the API surface. Controllers map these to
// HTTP status codes; services wrap them with context via fmt.Errorf and %w.
var (
	// ErrUnauthorized covers unknown or inactive tenant keys and bad admin
	// tokens.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound covers lookups of businesses or related rows that do not
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation covers malformed or incomplete request payloads.
	ErrValidation = errors.New("validation failed")

	// ErrCompletion covers any failure of the external completion service,
	// including timeouts. Transient and permanent failures are not
	// distinguished.
	ErrCompletion = errors.New("completion failed")

	// ErrDelivery covers outbound email failures.
	ErrDelivery = errors.New("delivery failed")
)
