package ledger

// Asset identifies a ledger asset. A zero Code means the ledger's native
// asset.
type Asset struct {
	Code   string
	Issuer string
}

// Native reports whether the asset is the ledger's native asset.
func (a Asset) Native() bool {
	return a.Code == ""
}

// Payment is one record from an account's payment history, most-recent-first.
// Memo fields are joined in from the enclosing transaction.
type Payment struct {
	Type        string `json:"type"`
	From        string `json:"from"`
	To          string `json:"to"`
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code"`
	AssetIssuer string `json:"asset_issuer"`
	Amount      string `json:"amount"`
	MemoType    string `json:"memo_type"`
	Memo        string `json:"memo"`
	TxHash      string `json:"transaction_hash"`
}

// Holder is one (address, balance) entry from an asset's holder listing.
type Holder struct {
	Address string
	Balance string
}
