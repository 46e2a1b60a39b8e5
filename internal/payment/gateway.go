package payment

import "context"

// SessionParams describes one checkout attempt sent to the gateway.
type SessionParams struct {
	Currency      string
	Description   string
	UnitAmount    int64 // minor currency units (cents)
	Quantity      int64
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	Metadata      map[string]string
}

// Gateway creates payment sessions with an external provider. The returned
// string is the provider's opaque session identifier.
type Gateway interface {
	CreateSession(ctx context.Context, params *SessionParams) (string, error)
}

// GatewayError is a provider-reported failure carrying a user-facing
// message. It is surfaced to the caller verbatim and never retried.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return e.Message
}
