package verification

import (
	"testing"

	"aurum/internal/ledger"

	"github.com/stretchr/testify/assert"
)

func qualifyingPayment() ledger.Payment {
	return ledger.Payment{
		Type:      "payment",
		From:      "GSRC",
		To:        "GDEPOSIT",
		AssetType: "native",
		Amount:    "5.0000000",
		MemoType:  "text",
		Memo:      "v1700000000123456",
		TxHash:    "aa11",
	}
}

func TestMatchPayment(t *testing.T) {
	native := ledger.Asset{}
	gold := ledger.Asset{Code: "GOLD", Issuer: "GISSUER"}

	tests := []struct {
		name   string
		mutate func(*ledger.Payment)
		asset  ledger.Asset
		min    float64
		want   bool
	}{
		{
			name:   "exact match",
			mutate: func(p *ledger.Payment) {},
			asset:  native, min: 5, want: true,
		},
		{
			name:   "over-payment qualifies",
			mutate: func(p *ledger.Payment) { p.Amount = "7.5" },
			asset:  native, min: 5, want: true,
		},
		{
			name:   "one unit below minimum",
			mutate: func(p *ledger.Payment) { p.Amount = "4.9999999" },
			asset:  native, min: 5, want: false,
		},
		{
			name:   "wrong memo",
			mutate: func(p *ledger.Payment) { p.Memo = "v1700000000999999" },
			asset:  native, min: 5, want: false,
		},
		{
			name:   "memo id type is compared stringified",
			mutate: func(p *ledger.Payment) { p.MemoType = "id"; p.Memo = "12345" },
			asset:  native, min: 5, want: false,
		},
		{
			name:   "hash memo never matches",
			mutate: func(p *ledger.Payment) { p.MemoType = "hash" },
			asset:  native, min: 5, want: false,
		},
		{
			name:   "wrong source",
			mutate: func(p *ledger.Payment) { p.From = "GOTHER" },
			asset:  native, min: 5, want: false,
		},
		{
			name:   "wrong destination",
			mutate: func(p *ledger.Payment) { p.To = "GOTHER" },
			asset:  native, min: 5, want: false,
		},
		{
			name:   "non-payment operation",
			mutate: func(p *ledger.Payment) { p.Type = "create_account" },
			asset:  native, min: 5, want: false,
		},
		{
			name: "issued asset matches on code and issuer",
			mutate: func(p *ledger.Payment) {
				p.AssetType = "credit_alphanum4"
				p.AssetCode = "GOLD"
				p.AssetIssuer = "GISSUER"
			},
			asset: gold, min: 5, want: true,
		},
		{
			name: "same code different issuer",
			mutate: func(p *ledger.Payment) {
				p.AssetType = "credit_alphanum4"
				p.AssetCode = "GOLD"
				p.AssetIssuer = "GFAKE"
			},
			asset: gold, min: 5, want: false,
		},
		{
			name:   "native expected but issued sent",
			mutate: func(p *ledger.Payment) { p.AssetType = "credit_alphanum4"; p.AssetCode = "GOLD" },
			asset:  native, min: 5, want: false,
		},
		{
			name:   "unparseable amount",
			mutate: func(p *ledger.Payment) { p.Amount = "not-a-number" },
			asset:  native, min: 5, want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := qualifyingPayment()
			tt.mutate(&p)
			got := MatchPayment([]ledger.Payment{p}, "GSRC", "GDEPOSIT", tt.asset, "v1700000000123456", tt.min)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchPaymentMemoIDStringified(t *testing.T) {
	p := qualifyingPayment()
	p.MemoType = "id"
	p.Memo = "8675309"

	got := MatchPayment([]ledger.Payment{p}, "GSRC", "GDEPOSIT", ledger.Asset{}, "8675309", 5)
	assert.True(t, got)
}

func TestMatchPaymentFirstMatchWins(t *testing.T) {
	miss := qualifyingPayment()
	miss.Memo = "other"
	hit := qualifyingPayment()

	got := MatchPayment([]ledger.Payment{miss, hit, hit}, "GSRC", "GDEPOSIT", ledger.Asset{}, "v1700000000123456", 5)
	assert.True(t, got)
}

func TestMatchPaymentEmptyWindow(t *testing.T) {
	got := MatchPayment(nil, "GSRC", "GDEPOSIT", ledger.Asset{}, "v1", 5)
	assert.False(t, got)
}
