// Package uber wraps the ride-fare-estimate provider's HTTP API.
package uber

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	internalRedis "github.com/Victordtesla24/ride-with-vic-app-sub001/internal/redis"
)

// ErrEstimateUnavailable is returned when the provider cannot produce an estimate.
var ErrEstimateUnavailable = errors.New("fare estimate unavailable")

// Estimate is one service tier's price quote for a route.
type Estimate struct {
	Service     string  `json:"service"`
	Estimate    string  `json:"estimate"`
	Low         float64 `json:"low_estimate"`
	High        float64 `json:"high_estimate"`
	Currency    string  `json:"currency_code"`
	DurationMin float64 `json:"duration_min"`
	DistanceKm  float64 `json:"distance_km"`
}

// Client calls the price-estimate API, caching results in Redis for a
// fixed TTL keyed by rounded route coordinates.
type Client struct {
	baseURL     string
	serverToken string
	cache       internalRedis.EstimateCacheInterface
	httpClient  *http.Client
}

// NewClient creates an estimate client. cache may be nil to disable caching.
func NewClient(baseURL, serverToken string, cache internalRedis.EstimateCacheInterface) *Client {
	return &Client{
		baseURL:     baseURL,
		serverToken: serverToken,
		cache:       cache,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
	}
}

type priceResponse struct {
	Prices []struct {
		DisplayName  string  `json:"display_name"`
		Estimate     string  `json:"estimate"`
		LowEstimate  float64 `json:"low_estimate"`
		HighEstimate float64 `json:"high_estimate"`
		CurrencyCode string  `json:"currency_code"`
		Duration     float64 `json:"duration"` // seconds
		Distance     float64 `json:"distance"` // kilometres
	} `json:"prices"`
}

// GetEstimates returns price quotes for a route, serving from cache when a
// fresh entry exists. Cache failures are logged and treated as misses.
func (c *Client) GetEstimates(ctx context.Context, startLat, startLng, endLat, endLng float64) ([]Estimate, error) {
	key := internalRedis.EstimateKey(startLat, startLng, endLat, endLng)

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key)
		if err != nil {
			log.Printf("estimate cache read failed: %v", err)
		} else if cached != nil {
			return fromCached(cached), nil
		}
	}

	estimates, err := c.fetchEstimates(ctx, startLat, startLng, endLat, endLng)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, toCached(estimates)); err != nil {
			log.Printf("estimate cache write failed: %v", err)
		}
	}

	return estimates, nil
}

func (c *Client) fetchEstimates(ctx context.Context, startLat, startLng, endLat, endLng float64) ([]Estimate, error) {
	if c.serverToken == "" {
		return nil, fmt.Errorf("%w: client not configured", ErrEstimateUnavailable)
	}

	query := url.Values{
		"start_latitude":  {formatCoord(startLat)},
		"start_longitude": {formatCoord(startLng)},
		"end_latitude":    {formatCoord(endLat)},
		"end_longitude":   {formatCoord(endLng)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/estimates/price?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.serverToken)
	req.Header.Set("Accept-Language", "en_US")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEstimateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: provider returned %d", ErrEstimateUnavailable, resp.StatusCode)
	}

	var out priceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEstimateUnavailable, err)
	}

	estimates := make([]Estimate, 0, len(out.Prices))
	for _, p := range out.Prices {
		estimates = append(estimates, Estimate{
			Service:     p.DisplayName,
			Estimate:    p.Estimate,
			Low:         p.LowEstimate,
			High:        p.HighEstimate,
			Currency:    p.CurrencyCode,
			DurationMin: p.Duration / 60,
			DistanceKm:  p.Distance,
		})
	}

	return estimates, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func toCached(estimates []Estimate) []internalRedis.CachedEstimate {
	cached := make([]internalRedis.CachedEstimate, 0, len(estimates))
	for _, e := range estimates {
		cached = append(cached, internalRedis.CachedEstimate{
			Service:     e.Service,
			Estimate:    e.Estimate,
			Low:         e.Low,
			High:        e.High,
			Currency:    e.Currency,
			DurationMin: e.DurationMin,
			DistanceKm:  e.DistanceKm,
		})
	}
	return cached
}

func fromCached(cached []internalRedis.CachedEstimate) []Estimate {
	estimates := make([]Estimate, 0, len(cached))
	for _, e := range cached {
		estimates = append(estimates, Estimate{
			Service:     e.Service,
			Estimate:    e.Estimate,
			Low:         e.Low,
			High:        e.High,
			Currency:    e.Currency,
			DurationMin: e.DurationMin,
			DistanceKm:  e.DistanceKm,
		})
	}
	return estimates
}
