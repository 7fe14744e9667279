package models

import (
	"time"
)

// Wallet verification statuses. A wallet only ever moves pending->success or
// pending->canceled; there is no way back out of a terminal status short of
// deleting the wallet and registering the address again.
const (
	VerificationPending  = "pending"
	VerificationSuccess  = "success"
	VerificationCanceled = "canceled"
)

type Wallet struct {
	ID                    uint   `gorm:"primarykey"`
	UserID                uint   `gorm:"index;not null"`
	Address               string `gorm:"size:56;index;not null"`
	VerificationStatus    string `gorm:"size:16;index;default:'pending'"`
	VerificationCode      string `gorm:"size:28"`
	VerificationExpiresAt time.Time
	VerificationAttempts  int  `gorm:"default:0"`
	IsActive              bool `gorm:"default:false"`
	IsDeleted             bool `gorm:"index;default:false"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Pending reports whether the wallet is still awaiting a verification payment.
func (w *Wallet) Pending() bool {
	return w.VerificationStatus == VerificationPending
}

// ExpiredAt reports whether the verification window has passed at the given time.
func (w *Wallet) ExpiredAt(now time.Time) bool {
	return now.After(w.VerificationExpiresAt)
}
