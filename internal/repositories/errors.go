package repositories

import "errors"

var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrTokenNotFound     = errors.New("token not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)
