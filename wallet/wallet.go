// Package wallet defines the capability surface of the external Spark wallet
// gateway. The gateway owns the actual Lightning wallet; this package only
// fixes the request/response shapes the backend depends on.
package wallet

import (
	"context"

	"github.com/mintgate/sparkd/money"
)

// PaymentStatus is the wallet's own status enumeration.
type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"
	PaymentFailed    PaymentStatus = "failed"
)

// PaymentType filters payment listings by direction.
type PaymentType string

const (
	PaymentTypeSend    PaymentType = "send"
	PaymentTypeReceive PaymentType = "receive"
)

// Payment is a wallet-side payment record. PaymentHash and Invoice are only
// populated for Lightning payments; either may be empty.
type Payment struct {
	ID          string
	AmountSat   money.Money
	FeeSat      money.Money
	Status      PaymentStatus
	PaymentHash string
	Invoice     string
}

type Info struct {
	BalanceSat money.Money
}

type ReceivePaymentRequest struct {
	Description string
	// AmountSat nil mints an open-amount invoice.
	AmountSat *money.Money
}

type ReceivePaymentResponse struct {
	PaymentRequest string
}

type PrepareSendRequest struct {
	PaymentRequest string
	AmountSat      *money.Money
}

type PrepareSendResponse struct {
	PaymentRequest string
	AmountSat      money.Money
	// TransferFeeSat is reported only when the gateway routes the payment
	// through an internal transfer; absent otherwise.
	TransferFeeSat *money.Money
	RoutingFeeSat  money.Money
}

type SendRequest struct {
	Prepared PrepareSendResponse
}

type SendResponse struct {
	Payment Payment
}

type ListPaymentsRequest struct {
	TypeFilter []PaymentType
}

// NotificationKind tags the wallet's push notifications.
type NotificationKind string

const (
	KindPaymentSucceeded NotificationKind = "payment_succeeded"
	KindPaymentFailed    NotificationKind = "payment_failed"
	KindPaymentPending   NotificationKind = "payment_pending"
	KindSynced           NotificationKind = "synced"
)

type Notification struct {
	Kind    NotificationKind
	Payment Payment
}

//go:generate go tool mockgen -destination=mock.go -package=wallet . Client

// Client is the wallet gateway capability surface consumed by the backend.
// Calls suspend on I/O; callers own timeout and cancellation policy through
// the context.
type Client interface {
	GetInfo(ctx context.Context) (*Info, error)
	ReceivePayment(ctx context.Context, req *ReceivePaymentRequest) (*ReceivePaymentResponse, error)
	PrepareSendPayment(ctx context.Context, req *PrepareSendRequest) (*PrepareSendResponse, error)
	SendPayment(ctx context.Context, req *SendRequest) (*SendResponse, error)
	ListPayments(ctx context.Context, req *ListPaymentsRequest) ([]Payment, error)
	// WaitForPayment resolves the current state of a payment by its full
	// payment-request string.
	WaitForPayment(ctx context.Context, paymentRequest string) (*Payment, error)
	// SubscribeEvents registers a notification listener and returns the
	// handle that deregisters it.
	SubscribeEvents(ctx context.Context) (*Subscription, error)
}
