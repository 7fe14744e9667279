// Package ledger implements the read-only gateway to the external ledger's
// query service. It covers the three lookups the engine needs: account
// existence, recent payments to an address, and the paginated holder listing
// for an asset. Rate limiting is handled inside the client; callers never see
// a 429.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	// maxRetries bounds how many times a rate-limited request is reissued
	// before giving up.
	maxRetries = 5
	// defaultRetryWait is used when the server gives no Retry-After hint.
	defaultRetryWait = 5 * time.Second
)

type Client struct {
	baseURL    string
	httpClient *http.Client

	// sleep is swapped out in tests to avoid real waits.
	sleep func(time.Duration)
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		sleep: time.Sleep,
	}
}

// get performs a GET with internal rate-limit handling. A 429 response is
// retried after the server-provided interval (default 5s) up to maxRetries
// attempts, after which ErrRateLimited is returned.
func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to call ledger: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		wait := retryWait(resp)
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		c.sleep(wait)
	}
	return nil, fmt.Errorf("%w: gave up after %d attempts", ErrRateLimited, maxRetries)
}

func retryWait(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultRetryWait
}

// AccountExists reports whether the address is a funded account on the
// ledger. "Not found" is a regular false result, not an error.
func (c *Client) AccountExists(ctx context.Context, address string) (bool, error) {
	resp, err := c.get(ctx, fmt.Sprintf("%s/accounts/%s", c.baseURL, url.PathEscape(address)))
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, statusError(resp)
	}
}

// RecentPayments returns up to limit payments received or sent by the
// address, most recent first. Memo fields are joined in from each payment's
// transaction. An unknown account yields an empty list.
func (c *Client) RecentPayments(ctx context.Context, address string, limit int) ([]Payment, error) {
	u := fmt.Sprintf("%s/accounts/%s/payments?order=desc&limit=%d&join=transactions",
		c.baseURL, url.PathEscape(address), limit)

	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var page struct {
		Embedded struct {
			Records []Payment `json:"records"`
		} `json:"_embedded"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("%w: decoding payments: %v", ErrBadResponse, err)
	}
	return page.Embedded.Records, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("%w: status %d: %s", ErrBadResponse, resp.StatusCode, string(body))
}
