// Package geo talks to the public OSRM and Overpass services for the area
// distance report. Both are free-tier endpoints, so requests are throttled
// and every failure degrades to a zero value rather than aborting a report.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Config holds the endpoints and pacing for the geo clients.
type Config struct {
	OSRMBaseURL  string
	OverpassURL  string
	RequestDelay time.Duration
	Timeout      time.Duration
}

// Client is a throttled HTTP client for OSRM routing and Overpass area
// queries. Safe for concurrent use.
type Client struct {
	cfg        Config
	httpClient *http.Client

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient creates a geo client, applying free-tier-friendly defaults.
func NewClient(cfg Config) *Client {
	if cfg.OSRMBaseURL == "" {
		cfg.OSRMBaseURL = "http://router.project-osrm.org"
	}
	if cfg.OverpassURL == "" {
		cfg.OverpassURL = "http://overpass-api.de/api/interpreter"
	}
	if cfg.RequestDelay == 0 {
		cfg.RequestDelay = 1100 * time.Millisecond
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// throttle spaces out routing requests to respect the free-tier rate limit.
func (c *Client) throttle() {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.lastRequest)
	if elapsed < c.cfg.RequestDelay {
		wait := c.cfg.RequestDelay - elapsed
		log.Debug().Dur("wait", wait).Msg("Throttling geo request")
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
	} `json:"routes"`
}

// RoadDistanceKM returns the driving distance between two coordinates in
// kilometers, rounded to two decimals. Any transport or routing failure
// yields 0; distance lookups never abort a report.
func (c *Client) RoadDistanceKM(ctx context.Context, fromLat, fromLon, toLat, toLon float64) float64 {
	c.throttle()

	u := fmt.Sprintf("%s/route/v1/driving/%f,%f;%f,%f?overview=false",
		c.cfg.OSRMBaseURL, fromLon, fromLat, toLon, toLat)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("OSRM request failed")
		return 0
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0
	}

	var parsed osrmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		log.Warn().Err(err).Msg("OSRM response unreadable")
		return 0
	}
	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		log.Debug().Str("code", parsed.Code).Msg("OSRM returned no route")
		return 0
	}
	return math.Round(parsed.Routes[0].Distance/1000*100) / 100
}

// District is one named area returned by Overpass.
type District struct {
	Name string
	Lat  float64
	Lon  float64
}

type overpassResponse struct {
	Elements []struct {
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
		Center *struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"center"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// Districts queries Overpass for the suburbs and neighbourhoods of a named
// area (English name tag), in response order.
func (c *Client) Districts(ctx context.Context, area string) ([]District, error) {
	query := fmt.Sprintf(`[out:json];area["name:en"=%q]->.a;(node["place"~"suburb|neighbourhood"](area.a););out center;`, area)

	u := c.cfg.OverpassURL + "?data=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("overpass request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("overpass status %d", resp.StatusCode)
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("overpass response: %w", err)
	}

	districts := make([]District, 0, len(parsed.Elements))
	for _, el := range parsed.Elements {
		d := District{Name: el.Tags["name:en"], Lat: el.Lat, Lon: el.Lon}
		if d.Name == "" {
			d.Name = "Unknown Area"
		}
		if el.Center != nil {
			d.Lat, d.Lon = el.Center.Lat, el.Center.Lon
		}
		districts = append(districts, d)
	}
	return districts, nil
}
