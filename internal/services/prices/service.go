// Package prices is a small cached client for the metal spot-price feed. It
// exists so the API can show a fiat value next to token balances without
// hammering the upstream feed.
package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const cacheTTL = 5 * time.Minute

// Cache is the slice of the cache service this package consumes.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Quote is one spot price observation.
type Quote struct {
	Metal     string    `json:"metal"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	FetchedAt time.Time `json:"fetched_at"`
}

type Service interface {
	Spot(ctx context.Context, metal string) (*Quote, error)
}

type service struct {
	cache      Cache
	httpClient *http.Client
	feedURL    string
}

func NewService(cache Cache, feedURL string) Service {
	if cache == nil {
		panic("cache is required")
	}
	return &service{
		cache:   cache,
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *service) Spot(ctx context.Context, metal string) (*Quote, error) {
	key := fmt.Sprintf("prices:spot:%s", metal)

	var cached Quote
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		log.Printf("price cache read failed: %v", err)
	}
	if hit {
		return &cached, nil
	}

	quote, err := s.fetch(ctx, metal)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetWithTTL(ctx, key, quote, cacheTTL); err != nil {
		log.Printf("price cache write failed: %v", err)
	}
	return quote, nil
}

func (s *service) fetch(ctx context.Context, metal string) (*Quote, error) {
	u := fmt.Sprintf("%s?metal=%s", s.feedURL, url.QueryEscape(metal))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create price request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call price feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("price feed returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Price    float64 `json:"price"`
		Currency string  `json:"currency"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode price feed response: %w", err)
	}

	return &Quote{
		Metal:     metal,
		Price:     payload.Price,
		Currency:  payload.Currency,
		FetchedAt: time.Now().UTC(),
	}, nil
}
