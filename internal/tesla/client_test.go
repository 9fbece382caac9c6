package tesla

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, StaticToken("test-token")), server
}

func TestListVehicles(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1/vehicles" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("unexpected authorization header %q", got)
		}
		w.Write([]byte(`{"response":[
			{"id":12345,"vin":"5YJ3E1EA7KF000001","display_name":"Vic's Model 3","state":"online"},
			{"id":67890,"vin":"5YJ3E1EA7KF000002","display_name":"Spare","state":"asleep"}
		]}`))
	})
	defer server.Close()

	vehicles, err := client.ListVehicles(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vehicles) != 2 {
		t.Fatalf("expected 2 vehicles, got %d", len(vehicles))
	}
	if vehicles[0].StringID() != "12345" {
		t.Errorf("expected string ID 12345, got %s", vehicles[0].StringID())
	}
	if vehicles[1].State != "asleep" {
		t.Errorf("expected state asleep, got %s", vehicles[1].State)
	}
}

func TestGetLocation(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/1/vehicles/12345/vehicle_data" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"response":{"state":"online","drive_state":{
			"latitude":40.7128,"longitude":-74.0060,"speed":42,"heading":180,"timestamp":1700000000000
		}}}`))
	})
	defer server.Close()

	location, err := client.GetLocation(context.Background(), "12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if location.Latitude != 40.7128 || location.Longitude != -74.0060 {
		t.Errorf("unexpected coordinates (%v, %v)", location.Latitude, location.Longitude)
	}
	if location.Speed != 42 || location.Heading != 180 {
		t.Errorf("unexpected speed/heading %v/%v", location.Speed, location.Heading)
	}
	if location.Timestamp.UnixMilli() != 1700000000000 {
		t.Errorf("unexpected timestamp %v", location.Timestamp)
	}
}

func TestGetLocation_MissingDriveState(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"state":"asleep"}}`))
	})
	defer server.Close()

	_, err := client.GetLocation(context.Background(), "12345")
	if !errors.Is(err, ErrVehicleUnavailable) {
		t.Errorf("expected ErrVehicleUnavailable, got %v", err)
	}
}

func TestProviderErrorWrapped(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestTimeout)
		w.Write([]byte(`{"error":"vehicle unavailable: vehicle is offline or asleep"}`))
	})
	defer server.Close()

	_, err := client.GetVehicle(context.Background(), "12345")
	if !errors.Is(err, ErrVehicleUnavailable) {
		t.Errorf("expected ErrVehicleUnavailable, got %v", err)
	}
}

func TestIsOnline(t *testing.T) {
	t.Parallel()

	state := "asleep"
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":{"id":12345,"state":"` + state + `"}}`))
	})
	defer server.Close()

	online, err := client.IsOnline(context.Background(), "12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if online {
		t.Error("expected vehicle to be asleep")
	}

	state = "online"
	online, err = client.IsOnline(context.Background(), "12345")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !online {
		t.Error("expected vehicle to be online")
	}
}

func TestWakeAndWait_ContextCancelled(t *testing.T) {
	t.Parallel()

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		// Wake succeeds but the vehicle never comes online.
		w.Write([]byte(`{"response":{"id":12345,"state":"asleep"}}`))
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.WakeAndWait(ctx, "12345", time.Minute)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
