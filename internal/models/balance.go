package models

import "time"

// WalletBalance is the last-observed holding of a token for a verified wallet.
// It is a cache of ledger truth maintained by the holder synchronizer, never a
// ledger of record.
type WalletBalance struct {
	ID        uint    `gorm:"primarykey"`
	WalletID  uint    `gorm:"uniqueIndex:idx_wallet_token;not null"`
	TokenID   uint    `gorm:"uniqueIndex:idx_wallet_token;not null"`
	Amount    float64 `gorm:"default:0"`
	UpdatedAt time.Time
}
