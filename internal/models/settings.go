package models

import "time"

// Settings holds the operator-level verification parameters: the deposit
// address users pay into and the minimum qualifying payment amount. A single
// row is expected, written by the seed command.
type Settings struct {
	ID                 uint    `gorm:"primarykey"`
	DepositAddress     string  `gorm:"size:56;not null"`
	MinPayment         float64 `gorm:"default:1"`
	PaymentAssetCode   string  `gorm:"size:12"`
	PaymentAssetIssuer string  `gorm:"size:56"`
	UpdatedAt          time.Time
}
