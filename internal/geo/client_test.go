package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(osrmURL, overpassURL string) *Client {
	return NewClient(Config{
		OSRMBaseURL:  osrmURL,
		OverpassURL:  overpassURL,
		RequestDelay: time.Millisecond,
		Timeout:      time.Second,
	})
}

func TestRoadDistanceKM(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":3456.7}]}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL, "")
	got := c.RoadDistanceKM(context.Background(), 26.4, 50.1, 26.5, 50.2)
	if got != 3.46 {
		t.Errorf("Expected 3.46 km, got %v", got)
	}
}

func TestRoadDistanceKMFailuresYieldZero(t *testing.T) {
	noRoute := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer noRoute.Close()

	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer garbage.Close()

	for name, url := range map[string]string{
		"no route":    noRoute.URL,
		"bad payload": garbage.URL,
		"unreachable": "http://127.0.0.1:1",
	} {
		c := testClient(url, "")
		if got := c.RoadDistanceKM(context.Background(), 0, 0, 1, 1); got != 0 {
			t.Errorf("%s: expected 0, got %v", name, got)
		}
	}
}

func TestDistricts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("data") == "" {
			t.Error("Expected data query parameter")
		}
		w.Write([]byte(`{"elements":[
			{"lat":26.45,"lon":50.11,"tags":{"name:en":"Al Faisaliyah"}},
			{"center":{"lat":26.50,"lon":50.02},"tags":{"name:en":"Al Shati"}},
			{"lat":26.40,"lon":50.09,"tags":{}}
		]}`))
	}))
	defer srv.Close()

	c := testClient("", srv.URL)
	districts, err := c.Districts(context.Background(), "Dammam")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(districts) != 3 {
		t.Fatalf("Expected 3 districts, got %d", len(districts))
	}
	if districts[0].Name != "Al Faisaliyah" || districts[0].Lat != 26.45 {
		t.Errorf("Unexpected first district: %+v", districts[0])
	}
	// Way elements use the center coordinates.
	if districts[1].Lat != 26.50 || districts[1].Lon != 50.02 {
		t.Errorf("Expected center coordinates, got %+v", districts[1])
	}
	if districts[2].Name != "Unknown Area" {
		t.Errorf("Expected unnamed district fallback, got %q", districts[2].Name)
	}
}

func TestDistrictsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := testClient("", srv.URL)
	if _, err := c.Districts(context.Background(), "Dammam"); err == nil {
		t.Error("Expected error on server failure")
	}
}
