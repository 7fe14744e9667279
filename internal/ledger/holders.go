package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// holderPageLimit is the page size requested from the ledger; ordering is
// ascending by account id so a restarted walk is deterministic.
const holderPageLimit = 200

// HolderIterator walks the full holder set of an asset one page at a time.
// It follows the next link embedded in every page until the link is absent or
// a page comes back empty. If the rate-limit budget runs out after at least
// one page has been delivered, the iterator stops and reports itself
// truncated instead of failing the whole walk.
type HolderIterator struct {
	client    *Client
	asset     Asset
	nextURL   string
	pages     int
	truncated bool
	done      bool
}

// AssetHolders returns an iterator over every account holding the given
// asset, with their balances.
func (c *Client) AssetHolders(code, issuer string) *HolderIterator {
	q := url.Values{}
	q.Set("asset", fmt.Sprintf("%s:%s", code, issuer))
	q.Set("order", "asc")
	q.Set("limit", fmt.Sprintf("%d", holderPageLimit))

	return &HolderIterator{
		client:  c,
		asset:   Asset{Code: code, Issuer: issuer},
		nextURL: fmt.Sprintf("%s/accounts?%s", c.baseURL, q.Encode()),
	}
}

// Next returns the next page of holders. A (nil, nil) return means the walk
// is finished; check Truncated to tell a clean finish from a rate-limited
// one.
func (it *HolderIterator) Next(ctx context.Context) ([]Holder, error) {
	if it.done {
		return nil, nil
	}

	resp, err := it.client.get(ctx, it.nextURL)
	if err != nil {
		if errors.Is(err, ErrRateLimited) && it.pages > 0 {
			// Partial results already delivered; stop rather than fail.
			it.truncated = true
			it.done = true
			return nil, nil
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var page struct {
		Links struct {
			Next struct {
				Href string `json:"href"`
			} `json:"next"`
		} `json:"_links"`
		Embedded struct {
			Records []struct {
				ID       string `json:"id"`
				Balances []struct {
					AssetType   string `json:"asset_type"`
					AssetCode   string `json:"asset_code"`
					AssetIssuer string `json:"asset_issuer"`
					Balance     string `json:"balance"`
				} `json:"balances"`
			} `json:"records"`
		} `json:"_embedded"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: decoding holders: %v", ErrBadResponse, err)
	}

	// An empty page means the listing is exhausted even when the server still
	// advertises a next link.
	if len(page.Embedded.Records) == 0 {
		it.done = true
		return nil, nil
	}

	holders := make([]Holder, 0, len(page.Embedded.Records))
	for _, rec := range page.Embedded.Records {
		for _, b := range rec.Balances {
			if b.AssetCode == it.asset.Code && b.AssetIssuer == it.asset.Issuer {
				holders = append(holders, Holder{Address: rec.ID, Balance: b.Balance})
				break
			}
		}
	}

	it.pages++
	it.nextURL = page.Links.Next.Href
	if it.nextURL == "" {
		it.done = true
	}
	return holders, nil
}

// Truncated reports whether the walk stopped early on rate-limit exhaustion
// after delivering partial results.
func (it *HolderIterator) Truncated() bool {
	return it.truncated
}
