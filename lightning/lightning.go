// Package lightning decodes BOLT11 invoices and resolves the canonical
// 32-byte payment identifier used to correlate quotes with wallet payments.
package lightning

import (
	"fmt"
	"time"

	"github.com/lightningnetwork/lnd/lntypes"
	"github.com/lightningnetwork/lnd/zpay32"
	"github.com/mintgate/sparkd/money"
)

// ErrInvalidInvoice is returned when a payment request cannot be decoded as
// a BOLT11 invoice. It always aborts the enclosing operation.
var ErrInvalidInvoice = fmt.Errorf("invalid invoice")

type DecodedInvoice struct {
	PaymentHash lntypes.Hash
	// AmountSat is zero for open-amount invoices.
	AmountSat   money.Money
	Expiry      time.Time
	Description string
}

// DecodeInvoice decodes a BOLT11 payment request. The returned payment hash
// is the authoritative canonical identifier for the payment.
func DecodeInvoice(invoice string, network Network) (*DecodedInvoice, error) {
	params := ToChainCfgNetwork(network)
	if params == nil {
		return nil, fmt.Errorf("%w: unknown network %q", ErrInvalidInvoice, network)
	}

	bolt11, err := zpay32.Decode(invoice, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInvoice, err)
	}

	decoded := &DecodedInvoice{
		PaymentHash: lntypes.Hash(*bolt11.PaymentHash),
		Expiry:      bolt11.Timestamp.Add(bolt11.Expiry()),
	}
	if bolt11.MilliSat != nil {
		decoded.AmountSat = money.Money(bolt11.MilliSat.ToSatoshis())
	}
	if bolt11.Description != nil {
		decoded.Description = *bolt11.Description
	}

	return decoded, nil
}

// ResolveIdentifier derives a canonical identifier from a wallet payment.
// When paymentHash is a valid 32-byte hex hash the result is exact. Otherwise
// the first 32 bytes of the wallet's payment ID are substituted (the all-zero
// hash when the ID is shorter) and exact is false; such identifiers are
// best-effort correlation only and are never guaranteed to equal the true
// payment hash.
func ResolveIdentifier(paymentHash, paymentID string) (lntypes.Hash, bool) {
	if hash, err := lntypes.MakeHashFromStr(paymentHash); err == nil {
		return hash, true
	}

	var hash lntypes.Hash
	if len(paymentID) < lntypes.HashSize {
		return hash, false
	}
	copy(hash[:], paymentID[:lntypes.HashSize])

	return hash, false
}
