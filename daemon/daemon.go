// Package daemon runs the long-lived sparkd process: it keeps the payment
// event bridge active and logs every canonical event until shutdown.
package daemon

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/mintgate/sparkd/payment"
)

func Start(ctx context.Context, processor payment.Processor) error {
	log.Info("Starting sparkd")

	settings, err := processor.Settings(ctx)
	if err != nil {
		return fmt.Errorf("reading backend settings: %w", err)
	}
	log.WithField("unit", settings.Unit).Info("backend ready")

	events, err := processor.WaitPaymentEvents(ctx)
	if err != nil {
		return fmt.Errorf("starting payment event stream: %w", err)
	}
	defer processor.CancelWait()

	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down sparkd")

			return nil
		case ev, ok := <-events:
			if !ok {
				log.Warn("payment event stream closed")

				return nil
			}
			handleEvent(ev)
		}
	}
}

func handleEvent(ev payment.Event) {
	switch e := ev.(type) {
	case payment.PaymentReceived:
		log.WithFields(log.Fields{
			"payment_hash":      e.Payment.Identifier,
			"wallet_payment_id": e.Payment.WalletPaymentID,
			"amount_sat":        e.Payment.AmountSat,
			"exact":             e.Payment.Exact,
		}).Info("payment received")
	default:
		log.Debugf("ignoring event %T", ev)
	}
}
