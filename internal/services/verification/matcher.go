package verification

import (
	"strconv"

	"aurum/internal/ledger"
)

// MatchPayment scans a window of recent payments for one that proves the
// claimed source paid the deposit address with the expected memo. Amount is
// an inequality so over-payment still qualifies. A false result means "not in
// the window", never "definitely absent"; callers re-poll later.
func MatchPayment(payments []ledger.Payment, from, to string, asset ledger.Asset, memo string, minAmount float64) bool {
	for _, p := range payments {
		if paymentMatches(p, from, to, asset, memo, minAmount) {
			return true
		}
	}
	return false
}

func paymentMatches(p ledger.Payment, from, to string, asset ledger.Asset, memo string, minAmount float64) bool {
	if p.Type != "payment" {
		return false
	}
	if p.From != from || p.To != to {
		return false
	}
	if !assetMatches(p, asset) {
		return false
	}
	if !memoMatches(p, memo) {
		return false
	}
	amount, err := strconv.ParseFloat(p.Amount, 64)
	if err != nil {
		return false
	}
	return amount >= minAmount
}

func assetMatches(p ledger.Payment, a ledger.Asset) bool {
	if a.Native() {
		return p.AssetType == "native"
	}
	return p.AssetCode == a.Code && p.AssetIssuer == a.Issuer
}

// memoMatches compares the payment memo against the verification code. Memo
// type "id" arrives already stringified in the payment record; "text" is used
// verbatim. Hash and return memos never match.
func memoMatches(p ledger.Payment, memo string) bool {
	switch p.MemoType {
	case "text", "id":
		return p.Memo == memo
	default:
		return false
	}
}
