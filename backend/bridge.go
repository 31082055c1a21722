package backend

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mintgate/sparkd/lightning"
	"github.com/mintgate/sparkd/payment"
	"github.com/mintgate/sparkd/wallet"
)

// WaitPaymentEvents bridges the wallet notification stream into the
// canonical event stream. Only succeeded-payment notifications are
// republished; everything else is dropped. Delivery is at-most-once: when
// the consumer lags behind the buffer, events are discarded instead of
// blocking the wallet's dispatch path.
func (b *SparkBackend) WaitPaymentEvents(ctx context.Context) (<-chan payment.Event, error) {
	sub, err := b.wallet.SubscribeEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: subscribing to wallet events: %w", payment.ErrBackend, err)
	}

	b.mu.Lock()
	if b.sub != nil {
		b.sub.Close()
	}
	b.sub = sub
	b.mu.Unlock()

	b.waitActive.Store(true)

	events := make(chan payment.Event, eventBufferSize)
	go func() {
		defer close(events)

		for {
			select {
			case <-ctx.Done():
				return
			case n, ok := <-sub.Events():
				if !ok {
					return
				}
				if n.Kind != wallet.KindPaymentSucceeded {
					continue
				}

				id, exact := lightning.ResolveIdentifier(n.Payment.PaymentHash, n.Payment.ID)
				if !exact {
					log.WithField("wallet_payment_id", n.Payment.ID).Warn("notification carried no decodable payment hash, correlating by payment ID")
				}

				ev := payment.PaymentReceived{
					Payment: payment.Observation{
						WalletPaymentID: n.Payment.ID,
						Identifier:      id,
						Exact:           exact,
						AmountSat:       n.Payment.AmountSat + n.Payment.FeeSat,
						Unit:            payment.UnitSat,
					},
				}

				select {
				case events <- ev:
				default:
					log.WithField("wallet_payment_id", n.Payment.ID).Warn("event queue full, dropping payment event")
				}
			}
		}
	}()

	return events, nil
}

// IsWaitActive reports whether the event bridge is active. Multiple waiters
// may query this concurrently; it reflects the latest start/cancel call.
func (b *SparkBackend) IsWaitActive() bool {
	return b.waitActive.Load()
}

// CancelWait deactivates the bridge and releases the retained wallet
// subscription. Notifications already dispatched before the release may
// still be delivered.
func (b *SparkBackend) CancelWait() {
	b.waitActive.Store(false)

	b.mu.Lock()
	sub := b.sub
	b.sub = nil
	b.mu.Unlock()

	if sub != nil {
		sub.Close()
	}
}
