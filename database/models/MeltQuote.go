package models

import (
	"time"
)

// MeltQuote correlates an outgoing payment hash with the invoice being paid.
// Kept physically separate from mint quotes; the two namespaces never merge.
type MeltQuote struct {
	PaymentHash string `gorm:"primaryKey;size:64"`

	PaymentRequest string `gorm:"not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (MeltQuote) TableName() string {
	return "melt_quotes"
}
