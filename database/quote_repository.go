package database

import (
	"errors"
	"fmt"

	"github.com/lightningnetwork/lnd/lntypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mintgate/sparkd/database/models"
)

// MintQuoteRepository is the incoming-correlation namespace.
type MintQuoteRepository interface {
	SaveMintQuote(hash lntypes.Hash, paymentRequest string) error
	GetMintQuote(hash lntypes.Hash) (string, bool, error)
}

// MeltQuoteRepository is the outgoing-correlation namespace.
type MeltQuoteRepository interface {
	SaveMeltQuote(hash lntypes.Hash, paymentRequest string) error
	GetMeltQuote(hash lntypes.Hash) (string, bool, error)
}

// QuoteRepository is the full correlation store surface the backend writes
// and reads. The backend is the only writer.
type QuoteRepository interface {
	MintQuoteRepository
	MeltQuoteRepository
}

// upsertByHash is the write discipline for both namespaces: a single atomic
// statement, last write wins on hash collision.
var upsertByHash = clause.OnConflict{
	Columns:   []clause.Column{{Name: "payment_hash"}},
	DoUpdates: clause.AssignmentColumns([]string{"payment_request", "updated_at"}),
}

func (d *Database) SaveMintQuote(hash lntypes.Hash, paymentRequest string) error {
	quote := models.MintQuote{
		PaymentHash:    hash.String(),
		PaymentRequest: paymentRequest,
	}
	if err := d.orm.Clauses(upsertByHash).Create(&quote).Error; err != nil {
		return fmt.Errorf("saving mint quote: %w", err)
	}

	return nil
}

func (d *Database) GetMintQuote(hash lntypes.Hash) (string, bool, error) {
	var quote models.MintQuote
	err := d.orm.First(&quote, "payment_hash = ?", hash.String()).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("querying mint quote: %w", err)
	}

	return quote.PaymentRequest, true, nil
}

func (d *Database) SaveMeltQuote(hash lntypes.Hash, paymentRequest string) error {
	quote := models.MeltQuote{
		PaymentHash:    hash.String(),
		PaymentRequest: paymentRequest,
	}
	if err := d.orm.Clauses(upsertByHash).Create(&quote).Error; err != nil {
		return fmt.Errorf("saving melt quote: %w", err)
	}

	return nil
}

func (d *Database) GetMeltQuote(hash lntypes.Hash) (string, bool, error) {
	var quote models.MeltQuote
	err := d.orm.First(&quote, "payment_hash = ?", hash.String()).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("querying melt quote: %w", err)
	}

	return quote.PaymentRequest, true, nil
}
