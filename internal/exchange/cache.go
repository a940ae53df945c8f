package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"launchboard_backend/internal/logger"
)

// RateSource fetches the conversion rate from one currency to another.
type RateSource interface {
	FetchRate(ctx context.Context, from, to string) (float64, error)
}

// Cache is an injected exchange-rate cache with a TTL. Refresh is lazy on
// miss; the data is read-mostly, so a stale read or a duplicate refresh under
// concurrency is harmless and no single-flight guard is needed.
type Cache struct {
	source RateSource
	ttl    time.Duration
	now    func() time.Time

	mu    sync.RWMutex
	rates map[string]cachedRate
}

type cachedRate struct {
	rate      float64
	fetchedAt time.Time
}

func NewCache(source RateSource, ttl time.Duration) *Cache {
	return &Cache{
		source: source,
		ttl:    ttl,
		now:    time.Now,
		rates:  make(map[string]cachedRate),
	}
}

func (c *Cache) Rate(ctx context.Context, from, to string) (float64, error) {
	if from == to {
		return 1, nil
	}

	key := from + "/" + to

	c.mu.RLock()
	cached, ok := c.rates[key]
	c.mu.RUnlock()

	if ok && c.now().Sub(cached.fetchedAt) < c.ttl {
		return cached.rate, nil
	}

	rate, err := c.source.FetchRate(ctx, from, to)
	if err != nil {
		// Serve the stale value if we have one.
		if ok {
			logger.CtxWarn(ctx, "exchange rate refresh failed, serving stale value", "pair", key, "error", err.Error())
			return cached.rate, nil
		}
		return 0, err
	}

	c.mu.Lock()
	c.rates[key] = cachedRate{rate: rate, fetchedAt: c.now()}
	c.mu.Unlock()

	return rate, nil
}

// HTTPRateSource pulls rates from an open exchange-rate API.
type HTTPRateSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPRateSource(baseURL string) *HTTPRateSource {
	return &HTTPRateSource{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type ratesResponse struct {
	Result string             `json:"result"`
	Rates  map[string]float64 `json:"rates"`
}

func (s *HTTPRateSource) FetchRate(ctx context.Context, from, to string) (float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/latest/%s", s.BaseURL, from), nil)
	if err != nil {
		return 0, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("exchange rate request failed with status %d", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}

	rate, ok := body.Rates[to]
	if !ok {
		return 0, fmt.Errorf("no rate for %s/%s", from, to)
	}
	return rate, nil
}
