// Package payment defines the canonical types exchanged between the payment
// processor harness and a wallet backend: identifiers, quote states, payment
// options and the backend operation surface.
package payment

import (
	"context"
	"time"

	"github.com/lightningnetwork/lnd/lntypes"
	"github.com/mintgate/sparkd/money"
)

// Unit is a currency-unit tag. The spark backend only settles in sat.
type Unit string

const UnitSat Unit = "sat"

// Status is the canonical quote state.
type Status string

const (
	StatusUnpaid  Status = "unpaid"
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// IncomingOptions selects the style of an incoming payment request.
type IncomingOptions interface {
	incomingOptions()
}

// Bolt11Incoming requests a BOLT11 invoice. A nil or zero amount mints an
// open-amount invoice.
type Bolt11Incoming struct {
	Description string
	AmountSat   *money.Money
}

func (Bolt11Incoming) incomingOptions() {}

// Bolt12Incoming requests a BOLT12 offer. Not supported by the spark backend.
type Bolt12Incoming struct {
	Description string
	AmountSat   *money.Money
}

func (Bolt12Incoming) incomingOptions() {}

// OutgoingOptions selects the style of an outgoing payment.
type OutgoingOptions interface {
	outgoingOptions()
}

// Bolt11Outgoing pays a BOLT11 invoice.
type Bolt11Outgoing struct {
	Invoice string
}

func (Bolt11Outgoing) outgoingOptions() {}

// Bolt12Outgoing pays a BOLT12 offer. Not supported by the spark backend.
type Bolt12Outgoing struct {
	Offer string
}

func (Bolt12Outgoing) outgoingOptions() {}

// CreateIncomingResponse correlates a freshly minted payment request with its
// canonical identifier.
type CreateIncomingResponse struct {
	Identifier     lntypes.Hash
	PaymentRequest string
	Expiry         time.Time
}

// QuoteResponse is the fee quote for an outgoing payment.
type QuoteResponse struct {
	Identifier lntypes.Hash
	AmountSat  money.Money
	FeeSat     money.Money
	Unit       Unit
	State      Status
}

// PaymentResult reports the outcome of an executed or polled outgoing
// payment. TotalSpentSat includes fees.
type PaymentResult struct {
	Identifier    lntypes.Hash
	Status        Status
	TotalSpentSat money.Money
	Unit          Unit
}

// Observation is a single resolved incoming payment. Exact reports whether
// Identifier was decoded from the wallet's payment-hash field; a false value
// marks a best-effort fallback identifier.
type Observation struct {
	WalletPaymentID string
	Identifier      lntypes.Hash
	Exact           bool
	AmountSat       money.Money
	Unit            Unit
}

// Event is the canonical event stream variant. PaymentReceived is currently
// the only case; other wallet notification kinds are dropped at the bridge.
type Event interface {
	isEvent()
}

// PaymentReceived is emitted when the wallet reports a succeeded incoming
// payment.
type PaymentReceived struct {
	Payment Observation
}

func (PaymentReceived) isEvent() {}

// Settings describes the payment styles a backend supports.
type Settings struct {
	Bolt11             bool `json:"bolt11"`
	Bolt12             bool `json:"bolt12"`
	Mpp                bool `json:"mpp"`
	Amountless         bool `json:"amountless"`
	InvoiceDescription bool `json:"invoice_description"`
	Unit               Unit `json:"unit"`
}

// Processor is the operation surface a wallet backend exposes to the payment
// processor harness. Implementations must be safe for concurrent use across
// many quotes. Backends are a closed set selected once at startup; adding a
// backend means adding an implementation, not changing callers.
type Processor interface {
	// Settings reports the backend's supported payment styles.
	Settings(ctx context.Context) (Settings, error)

	// CreateIncomingPayment mints a payment request, persists its
	// correlation and returns the canonical identifier.
	CreateIncomingPayment(ctx context.Context, unit Unit, opts IncomingOptions) (*CreateIncomingResponse, error)

	// GetPaymentQuote prepares (but does not execute) an outgoing payment
	// and persists the correlation for later status checks.
	GetPaymentQuote(ctx context.Context, unit Unit, opts OutgoingOptions) (*QuoteResponse, error)

	// MakePayment executes an outgoing payment. A unit other than the
	// backend's settlement unit is a caller bug and aborts the process.
	MakePayment(ctx context.Context, unit Unit, opts OutgoingOptions) (*PaymentResult, error)

	// WaitPaymentEvents bridges the wallet notification stream into the
	// canonical event stream. Delivery is at-most-once: events are dropped
	// rather than blocking the wallet's dispatch path.
	WaitPaymentEvents(ctx context.Context) (<-chan Event, error)

	// IsWaitActive reports whether the event bridge is active.
	IsWaitActive() bool

	// CancelWait deactivates the event bridge and releases the wallet
	// subscription. Notifications already dispatched may still arrive.
	CancelWait()

	// CheckIncomingPayment polls an incoming quote. An unknown identifier
	// is a normal outcome and yields an empty slice.
	CheckIncomingPayment(ctx context.Context, identifier lntypes.Hash) ([]Observation, error)

	// CheckOutgoingPayment polls an outgoing quote. An unknown identifier
	// is an error: callers are expected to hold a prior quote.
	CheckOutgoingPayment(ctx context.Context, identifier lntypes.Hash) (*PaymentResult, error)
}
