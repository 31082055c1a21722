package daemon

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lightningnetwork/lnd/lntypes"
	"github.com/stretchr/testify/require"

	"github.com/mintgate/sparkd/payment"
)

// stubProcessor drives Start without a wallet. Only the methods the daemon
// loop touches do anything.
type stubProcessor struct {
	events      chan payment.Event
	waitErr     error
	waitActive  atomic.Bool
	cancelCalls atomic.Int32
}

func (s *stubProcessor) Settings(context.Context) (payment.Settings, error) {
	return payment.Settings{Bolt11: true, Unit: payment.UnitSat}, nil
}

func (s *stubProcessor) WaitPaymentEvents(context.Context) (<-chan payment.Event, error) {
	if s.waitErr != nil {
		return nil, s.waitErr
	}
	s.waitActive.Store(true)

	return s.events, nil
}

func (s *stubProcessor) IsWaitActive() bool { return s.waitActive.Load() }

func (s *stubProcessor) CancelWait() {
	s.waitActive.Store(false)
	s.cancelCalls.Add(1)
}

func (s *stubProcessor) CreateIncomingPayment(context.Context, payment.Unit, payment.IncomingOptions) (*payment.CreateIncomingResponse, error) {
	return nil, payment.ErrUnsupportedPaymentOption
}

func (s *stubProcessor) GetPaymentQuote(context.Context, payment.Unit, payment.OutgoingOptions) (*payment.QuoteResponse, error) {
	return nil, payment.ErrUnsupportedPaymentOption
}

func (s *stubProcessor) MakePayment(context.Context, payment.Unit, payment.OutgoingOptions) (*payment.PaymentResult, error) {
	return nil, payment.ErrUnsupportedPaymentOption
}

func (s *stubProcessor) CheckIncomingPayment(context.Context, lntypes.Hash) ([]payment.Observation, error) {
	return nil, nil
}

func (s *stubProcessor) CheckOutgoingPayment(context.Context, lntypes.Hash) (*payment.PaymentResult, error) {
	return nil, payment.ErrNotFound
}

func TestStartStopsOnContextCancel(t *testing.T) {
	processor := &stubProcessor{events: make(chan payment.Event)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Start(ctx, processor)
	}()

	// Feed one event through the loop before shutting down.
	processor.events <- payment.PaymentReceived{
		Payment: payment.Observation{WalletPaymentID: "wallet-payment-1", AmountSat: 1000, Unit: payment.UnitSat},
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("daemon did not stop on context cancellation")
	}

	require.Equal(t, int32(1), processor.cancelCalls.Load())
	require.False(t, processor.IsWaitActive())
}

func TestStartStopsWhenEventStreamCloses(t *testing.T) {
	processor := &stubProcessor{events: make(chan payment.Event)}

	done := make(chan error, 1)
	go func() {
		done <- Start(context.Background(), processor)
	}()

	close(processor.events)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("daemon did not stop when the event stream closed")
	}
}

func TestStartFailsWhenBridgeFails(t *testing.T) {
	processor := &stubProcessor{waitErr: errors.New("gateway unreachable")}

	err := Start(context.Background(), processor)
	require.Error(t, err)
	require.Zero(t, processor.cancelCalls.Load())
}
