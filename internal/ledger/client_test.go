package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	waits := &[]time.Duration{}
	c := NewClient(srv.URL)
	c.sleep = func(d time.Duration) {
		*waits = append(*waits, d)
	}
	return c, waits
}

func TestAccountExists(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantExists bool
		wantErr    bool
	}{
		{name: "funded account", status: http.StatusOK, wantExists: true},
		{name: "unknown account", status: http.StatusNotFound, wantExists: false},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/accounts/GABC", r.URL.Path)
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{}`)
			}))

			exists, err := c.AccountExists(context.Background(), "GABC")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantExists, exists)
		})
	}
}

func TestRecentPayments(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/GDEST/payments", r.URL.Path)
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		fmt.Fprint(w, `{
			"_embedded": {"records": [
				{"type":"payment","from":"GSRC","to":"GDEST","asset_type":"native","amount":"5.0000000","memo_type":"text","memo":"v17001","transaction_hash":"aa11"},
				{"type":"create_account","from":"GSRC","to":"GDEST","amount":"1.0"}
			]}
		}`)
	}))

	payments, err := c.RecentPayments(context.Background(), "GDEST", 20)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "payment", payments[0].Type)
	assert.Equal(t, "GSRC", payments[0].From)
	assert.Equal(t, "v17001", payments[0].Memo)
	assert.Equal(t, "aa11", payments[0].TxHash)
}

func TestRecentPaymentsUnknownAccount(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	payments, err := c.RecentPayments(context.Background(), "GNOPE", 20)
	assert.NoError(t, err)
	assert.Empty(t, payments)
}

func TestRateLimitRetryThenSuccess(t *testing.T) {
	var calls int
	c, waits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{}`)
	}))

	exists, err := c.AccountExists(context.Background(), "GABC")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, *waits)
}

func TestRateLimitDefaultWait(t *testing.T) {
	var calls int
	c, waits := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{}`)
	}))

	_, err := c.AccountExists(context.Background(), "GABC")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{defaultRetryWait}, *waits)
}

func TestRateLimitExhaustion(t *testing.T) {
	var calls int
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	_, err := c.AccountExists(context.Background(), "GABC")
	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.Equal(t, maxRetries, calls)
}
