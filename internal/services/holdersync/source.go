package holdersync

import "aurum/internal/ledger"

type ledgerSource struct {
	client *ledger.Client
}

// NewLedgerSource adapts the ledger client to the HolderSource contract.
func NewLedgerSource(client *ledger.Client) HolderSource {
	return ledgerSource{client: client}
}

func (s ledgerSource) AssetHolders(code, issuer string) HolderPager {
	return s.client.AssetHolders(code, issuer)
}
