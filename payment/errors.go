package payment

import "fmt"

var (
	// ErrUnsupportedPaymentOption is returned when the caller requests a
	// payment style the backend does not implement. Permanent.
	ErrUnsupportedPaymentOption = fmt.Errorf("unsupported payment option")

	// ErrNotFound is returned when no correlation is on record for an
	// outgoing status check.
	ErrNotFound = fmt.Errorf("payment not found")

	// ErrBackend wraps a wallet-side failure. Treated as permanent per
	// call; retry policy belongs to the caller.
	ErrBackend = fmt.Errorf("wallet backend failure")
)
