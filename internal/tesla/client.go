// Package tesla wraps the vehicle-telemetry provider's fleet HTTP API.
package tesla

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrVehicleUnavailable is returned when the vehicle cannot be reached or
// the provider returns a non-success response.
var ErrVehicleUnavailable = errors.New("vehicle unavailable")

// TokenSource supplies the bearer token for API calls.
type TokenSource func(ctx context.Context) (string, error)

// StaticToken returns a TokenSource that always yields the given token.
func StaticToken(token string) TokenSource {
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// Vehicle is the provider's view of a vehicle.
type Vehicle struct {
	ID          int64  `json:"id"`
	VIN         string `json:"vin"`
	DisplayName string `json:"display_name"`
	State       string `json:"state"`
}

// StringID returns the vehicle ID as the opaque string used elsewhere.
func (v Vehicle) StringID() string {
	return strconv.FormatInt(v.ID, 10)
}

// Location is a vehicle's current position as reported by its drive state.
type Location struct {
	Latitude  float64
	Longitude float64
	Speed     float64
	Heading   float64
	Timestamp time.Time
}

// Client calls the fleet API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient creates a fleet API client.
func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type vehicleListResponse struct {
	Response []Vehicle `json:"response"`
}

type vehicleResponse struct {
	Response *Vehicle `json:"response"`
}

type vehicleDataResponse struct {
	Response *struct {
		State      string `json:"state"`
		DriveState *struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Speed     float64 `json:"speed"`
			Heading   float64 `json:"heading"`
			Timestamp int64   `json:"timestamp"`
		} `json:"drive_state"`
	} `json:"response"`
}

// ListVehicles returns the vehicles visible to the account.
func (c *Client) ListVehicles(ctx context.Context) ([]Vehicle, error) {
	var out vehicleListResponse
	if err := c.get(ctx, "/api/1/vehicles", &out); err != nil {
		return nil, err
	}
	return out.Response, nil
}

// GetVehicle returns one vehicle's summary record.
func (c *Client) GetVehicle(ctx context.Context, vehicleID string) (*Vehicle, error) {
	var out vehicleResponse
	if err := c.get(ctx, "/api/1/vehicles/"+vehicleID, &out); err != nil {
		return nil, err
	}
	if out.Response == nil {
		return nil, fmt.Errorf("%w: empty vehicle response", ErrVehicleUnavailable)
	}
	return out.Response, nil
}

// GetLocation reads the vehicle's current position from its drive state.
func (c *Client) GetLocation(ctx context.Context, vehicleID string) (*Location, error) {
	var out vehicleDataResponse
	if err := c.get(ctx, "/api/1/vehicles/"+vehicleID+"/vehicle_data", &out); err != nil {
		return nil, err
	}

	if out.Response == nil || out.Response.DriveState == nil {
		return nil, fmt.Errorf("%w: location data not available", ErrVehicleUnavailable)
	}

	ds := out.Response.DriveState
	return &Location{
		Latitude:  ds.Latitude,
		Longitude: ds.Longitude,
		Speed:     ds.Speed,
		Heading:   ds.Heading,
		Timestamp: time.UnixMilli(ds.Timestamp),
	}, nil
}

// Wake sends a wake command to a sleeping vehicle.
func (c *Client) Wake(ctx context.Context, vehicleID string) (*Vehicle, error) {
	var out vehicleResponse
	if err := c.do(ctx, http.MethodPost, "/api/1/vehicles/"+vehicleID+"/wake_up", &out); err != nil {
		return nil, err
	}
	if out.Response == nil {
		return nil, fmt.Errorf("%w: empty wake response", ErrVehicleUnavailable)
	}
	return out.Response, nil
}

// IsOnline reports whether the vehicle is currently online.
func (c *Client) IsOnline(ctx context.Context, vehicleID string) (bool, error) {
	vehicle, err := c.GetVehicle(ctx, vehicleID)
	if err != nil {
		return false, err
	}
	return vehicle.State == "online", nil
}

// WakeAndWait wakes the vehicle and polls until it is online or the
// deadline passes. Poll interval is two seconds, matching the provider's
// guidance for wake commands.
func (c *Client) WakeAndWait(ctx context.Context, vehicleID string, timeout time.Duration) error {
	if _, err := c.Wake(ctx, vehicleID); err != nil {
		return err
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}

		online, err := c.IsOnline(ctx, vehicleID)
		if err != nil {
			return err
		}
		if online {
			return nil
		}
	}

	return fmt.Errorf("%w: vehicle did not come online", ErrVehicleUnavailable)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, out)
}

func (c *Client) do(ctx context.Context, method, path string, out any) error {
	token, err := c.tokens(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVehicleUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVehicleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error != "" {
			return fmt.Errorf("%w: %s", ErrVehicleUnavailable, apiErr.Error)
		}
		return fmt.Errorf("%w: provider returned %d", ErrVehicleUnavailable, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
