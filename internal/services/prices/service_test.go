package prices

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	entries  map[string]*Quote
	getErr   error
	setErr   error
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*Quote)}
}

func (c *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c.getErr != nil {
		return false, c.getErr
	}
	quote, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	*dest.(*Quote) = *quote
	return true, nil
}

func (c *fakeCache) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	c.setCalls++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[key] = value.(*Quote)
	return nil
}

func feedServer(t *testing.T, price float64, hits *int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		assert.Equal(t, "gold", r.URL.Query().Get("metal"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"price":    price,
			"currency": "USD",
		})
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSpotFetchesAndCaches(t *testing.T) {
	hits := 0
	server := feedServer(t, 2415.30, &hits)
	cache := newFakeCache()
	svc := NewService(cache, server.URL)

	quote, err := svc.Spot(context.Background(), "gold")

	require.NoError(t, err)
	assert.Equal(t, "gold", quote.Metal)
	assert.Equal(t, 2415.30, quote.Price)
	assert.Equal(t, "USD", quote.Currency)
	assert.False(t, quote.FetchedAt.IsZero())
	assert.Equal(t, 1, hits)
	assert.Contains(t, cache.entries, "prices:spot:gold")
}

func TestSpotCacheHitSkipsFeed(t *testing.T) {
	hits := 0
	server := feedServer(t, 2415.30, &hits)
	cache := newFakeCache()
	cache.entries["prices:spot:gold"] = &Quote{Metal: "gold", Price: 2400, Currency: "USD"}
	svc := NewService(cache, server.URL)

	quote, err := svc.Spot(context.Background(), "gold")

	require.NoError(t, err)
	assert.Equal(t, 2400.0, quote.Price)
	assert.Equal(t, 0, hits)
}

func TestSpotCacheFailuresAreNotFatal(t *testing.T) {
	hits := 0
	server := feedServer(t, 2415.30, &hits)
	cache := newFakeCache()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	svc := NewService(cache, server.URL)

	quote, err := svc.Spot(context.Background(), "gold")

	require.NoError(t, err)
	assert.Equal(t, 2415.30, quote.Price)
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, cache.setCalls)
}

func TestSpotFeedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()
	svc := NewService(newFakeCache(), server.URL)

	quote, err := svc.Spot(context.Background(), "gold")

	assert.Error(t, err)
	assert.Nil(t, quote)
	assert.Contains(t, err.Error(), "502")
}
