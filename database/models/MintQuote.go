package models

import (
	"time"
)

// MintQuote correlates an incoming payment hash with the wallet payment
// request minted for it. Keyed by the hex-encoded 32-byte payment hash.
type MintQuote struct {
	PaymentHash string `gorm:"primaryKey;size:64"`

	// The payment-request string the wallet gateway understands.
	PaymentRequest string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (MintQuote) TableName() string {
	return "mint_quotes"
}
