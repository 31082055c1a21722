// Package backend implements the wallet backend variants behind the
// payment.Processor surface. The spark backend is currently the only
// implemented variant.
package backend

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/lightningnetwork/lnd/lntypes"
	log "github.com/sirupsen/logrus"

	"github.com/mintgate/sparkd/database"
	"github.com/mintgate/sparkd/lightning"
	"github.com/mintgate/sparkd/money"
	"github.com/mintgate/sparkd/payment"
	"github.com/mintgate/sparkd/wallet"
)

// eventBufferSize bounds the canonical event queue. Producing never blocks
// the wallet's dispatch path: events beyond this are dropped.
const eventBufferSize = 100

// SparkBackend adapts the Spark wallet gateway to the payment.Processor
// surface. It owns the hash-to-request correlation writes; the store is
// shared read-only with nothing else.
type SparkBackend struct {
	wallet  wallet.Client
	store   database.QuoteRepository
	network lightning.Network

	waitActive atomic.Bool

	mu  sync.Mutex
	sub *wallet.Subscription
}

// NewSparkBackend wires a spark backend and probes gateway connectivity. A
// failed info probe is logged but not fatal: the gateway may still be
// syncing.
func NewSparkBackend(ctx context.Context, client wallet.Client, store database.QuoteRepository, network lightning.Network) (*SparkBackend, error) {
	b := &SparkBackend{
		wallet:  client,
		store:   store,
		network: network,
	}

	info, err := client.GetInfo(ctx)
	if err != nil {
		log.WithError(err).Warn("could not retrieve wallet info")
	} else {
		log.WithField("balance_sat", info.BalanceSat).Debug("wallet connected")
	}

	return b, nil
}

func (b *SparkBackend) Settings(ctx context.Context) (payment.Settings, error) {
	return payment.Settings{
		Bolt11:             true,
		Bolt12:             false,
		Mpp:                true,
		Amountless:         false,
		InvoiceDescription: false,
		Unit:               payment.UnitSat,
	}, nil
}

func (b *SparkBackend) CreateIncomingPayment(ctx context.Context, unit payment.Unit, opts payment.IncomingOptions) (*payment.CreateIncomingResponse, error) {
	bolt11, ok := opts.(payment.Bolt11Incoming)
	if !ok {
		log.Errorf("unsupported incoming payment option %T", opts)

		return nil, payment.ErrUnsupportedPaymentOption
	}

	description := bolt11.Description
	if description == "" {
		description = "Payment"
	}

	req := &wallet.ReceivePaymentRequest{Description: description}
	if bolt11.AmountSat != nil && *bolt11.AmountSat > 0 {
		req.AmountSat = bolt11.AmountSat
	}

	resp, err := b.wallet.ReceivePayment(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: minting invoice: %w", payment.ErrBackend, err)
	}

	decoded, err := lightning.DecodeInvoice(resp.PaymentRequest, b.network)
	if err != nil {
		return nil, fmt.Errorf("decoding minted invoice: %w", err)
	}

	if err := b.store.SaveMintQuote(decoded.PaymentHash, resp.PaymentRequest); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"payment_hash": decoded.PaymentHash,
		"expiry":       decoded.Expiry,
	}).Info("created incoming payment request")

	return &payment.CreateIncomingResponse{
		Identifier:     decoded.PaymentHash,
		PaymentRequest: resp.PaymentRequest,
		Expiry:         decoded.Expiry,
	}, nil
}

func (b *SparkBackend) GetPaymentQuote(ctx context.Context, unit payment.Unit, opts payment.OutgoingOptions) (*payment.QuoteResponse, error) {
	bolt11, ok := opts.(payment.Bolt11Outgoing)
	if !ok {
		return nil, payment.ErrUnsupportedPaymentOption
	}

	prepared, err := b.wallet.PrepareSendPayment(ctx, &wallet.PrepareSendRequest{
		PaymentRequest: bolt11.Invoice,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: preparing payment: %w", payment.ErrBackend, err)
	}

	fee := totalFee(prepared)

	decoded, err := lightning.DecodeInvoice(bolt11.Invoice, b.network)
	if err != nil {
		return nil, err
	}

	// Keyed by the invoice hash so a later status check finds the same
	// request string.
	if err := b.store.SaveMeltQuote(decoded.PaymentHash, bolt11.Invoice); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"payment_hash": decoded.PaymentHash,
		"amount_sat":   prepared.AmountSat,
		"fee_sat":      fee,
	}).Debug("quoted outgoing payment")

	return &payment.QuoteResponse{
		Identifier: decoded.PaymentHash,
		AmountSat:  prepared.AmountSat,
		FeeSat:     fee,
		Unit:       unit,
		State:      payment.StatusUnpaid,
	}, nil
}

func (b *SparkBackend) MakePayment(ctx context.Context, unit payment.Unit, opts payment.OutgoingOptions) (*payment.PaymentResult, error) {
	if unit != payment.UnitSat {
		// A non-sat unit here is a caller bug, not a runtime condition.
		panic(fmt.Sprintf("spark backend settles in sat only, got unit %q", unit))
	}

	bolt11, ok := opts.(payment.Bolt11Outgoing)
	if !ok {
		return nil, payment.ErrUnsupportedPaymentOption
	}

	log.WithField("invoice", bolt11.Invoice).Info("making payment")

	prepared, err := b.wallet.PrepareSendPayment(ctx, &wallet.PrepareSendRequest{
		PaymentRequest: bolt11.Invoice,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: preparing payment: %w", payment.ErrBackend, err)
	}

	sent, err := b.wallet.SendPayment(ctx, &wallet.SendRequest{Prepared: *prepared})
	if err != nil {
		return nil, fmt.Errorf("%w: sending payment: %w", payment.ErrBackend, err)
	}

	totalSpent := sent.Payment.AmountSat + sent.Payment.FeeSat

	// The canonical identifier always comes from the invoice, never from
	// whatever ID the wallet assigned to the payment.
	decoded, err := lightning.DecodeInvoice(bolt11.Invoice, b.network)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"payment_hash":      decoded.PaymentHash,
		"wallet_payment_id": sent.Payment.ID,
		"total_spent_sat":   totalSpent,
	}).Info("payment successful")

	return &payment.PaymentResult{
		Identifier:    decoded.PaymentHash,
		Status:        payment.StatusPaid,
		TotalSpentSat: totalSpent,
		Unit:          payment.UnitSat,
	}, nil
}

func (b *SparkBackend) CheckIncomingPayment(ctx context.Context, identifier lntypes.Hash) ([]payment.Observation, error) {
	request, ok, err := b.store.GetMintQuote(identifier)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Not an error: the quote may simply not have been minted
		// through this backend yet.
		log.WithField("payment_hash", identifier).Debug("no stored payment request for incoming check")

		return []payment.Observation{}, nil
	}

	resolved, err := b.wallet.WaitForPayment(ctx, request)
	if err != nil {
		// Wallet-side "not found" degrades to an empty result; only
		// store failures are hard errors on this path.
		log.WithError(err).WithField("payment_hash", identifier).Warn("payment not found or error checking status")

		return []payment.Observation{}, nil
	}

	// The wallet's status response is not guaranteed to carry the
	// original hash, so the identifier is re-derived with the fallback
	// rule rather than echoing the lookup key.
	id, exact := lightning.ResolveIdentifier(resolved.PaymentHash, resolved.ID)

	return []payment.Observation{
		{
			WalletPaymentID: resolved.ID,
			Identifier:      id,
			Exact:           exact,
			AmountSat:       resolved.AmountSat + resolved.FeeSat,
			Unit:            payment.UnitSat,
		},
	}, nil
}

func (b *SparkBackend) CheckOutgoingPayment(ctx context.Context, identifier lntypes.Hash) (*payment.PaymentResult, error) {
	request, ok, err := b.store.GetMeltQuote(identifier)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: no quote on record for %s", payment.ErrNotFound, identifier)
	}

	payments, err := b.wallet.ListPayments(ctx, &wallet.ListPaymentsRequest{
		TypeFilter: []wallet.PaymentType{wallet.PaymentTypeSend},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: listing payments: %w", payment.ErrBackend, err)
	}

	for _, p := range payments {
		if p.Invoice != request {
			continue
		}

		return &payment.PaymentResult{
			Identifier:    identifier,
			Status:        toCanonicalStatus(p.Status),
			TotalSpentSat: p.AmountSat + p.FeeSat,
			Unit:          payment.UnitSat,
		}, nil
	}

	return nil, fmt.Errorf("%w: no wallet payment matches %s", payment.ErrNotFound, identifier)
}

// toCanonicalStatus maps the wallet's status enumeration onto the canonical
// quote states. The mapping is total: every wallet status lands on exactly
// one canonical state, and anything unrecognized stays pending.
func toCanonicalStatus(status wallet.PaymentStatus) payment.Status {
	switch status {
	case wallet.PaymentCompleted:
		return payment.StatusPaid
	case wallet.PaymentFailed:
		return payment.StatusUnpaid
	case wallet.PaymentPending:
		return payment.StatusPending
	default:
		return payment.StatusPending
	}
}

// totalFee sums the gateway's transfer fee (absent means zero) and routing
// fee.
func totalFee(prepared *wallet.PrepareSendResponse) money.Money {
	fee := prepared.RoutingFeeSat
	if prepared.TransferFeeSat != nil {
		fee += *prepared.TransferFeeSat
	}

	return fee
}
