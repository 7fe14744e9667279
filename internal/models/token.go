package models

import "time"

// Token is a tracked asset on the ledger, identified by code plus issuing
// address. Only active tokens take part in holder synchronization.
type Token struct {
	ID        uint   `gorm:"primarykey"`
	Code      string `gorm:"size:12;uniqueIndex:idx_token_code_issuer;not null"`
	Issuer    string `gorm:"size:56;uniqueIndex:idx_token_code_issuer;not null"`
	Name      string
	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
