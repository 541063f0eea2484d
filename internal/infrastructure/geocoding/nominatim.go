package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gdugdh24/matchdotcom-backend/internal/domain"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultBaseURL      = "https://nominatim.openstreetmap.org"
	DefaultUserAgent    = "MatchDotCom/1.0 (contact@matchdotcom.ie)"
	DefaultCountryCodes = "ie"
)

var (
	errNoResults      = errors.New("no geocoding results")
	errBadCoordinates = errors.New("unparseable coordinates")
)

type upstreamStatusError struct {
	StatusCode int
}

func (e upstreamStatusError) Error() string {
	return fmt.Sprintf("geocoder returned status %d", e.StatusCode)
}

type Config struct {
	BaseURL      string
	UserAgent    string
	CountryCodes string
	Timeout      time.Duration
}

// nominatimResult is one element of the search response. Nominatim sends
// coordinates as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Source answers a lookup with exact coordinates or an error.
type Source interface {
	Lookup(ctx context.Context, query string) (domain.Coordinates, error)
}

// NominatimClient queries the OpenStreetMap Nominatim search API. Every call
// waits on the shared limiter and runs through a circuit breaker.
type NominatimClient struct {
	cfg     Config
	client  *http.Client
	limiter Limiter
	breaker *gobreaker.CircuitBreaker
	tracer  trace.Tracer
}

func NewNominatimClient(cfg Config, limiter Limiter, logger *logrus.Logger, tracer trace.Tracer) *NominatimClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.CountryCodes == "" {
		cfg.CountryCodes = DefaultCountryCodes
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &NominatimClient{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
		breaker: newCircuitBreaker("nominatim", logger),
		tracer:  tracer,
	}
}

func newCircuitBreaker(name string, logger *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.WithFields(logrus.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("circuit breaker changed state")
			},
			// An address nobody knows is an answer, not an outage.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errNoResults) || errors.Is(err, errBadCoordinates)
			},
		},
	)
}

func (c *NominatimClient) Lookup(ctx context.Context, query string) (domain.Coordinates, error) {
	ctx, span := c.tracer.Start(ctx, "NominatimClient.Lookup")
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return domain.Coordinates{}, fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.search(ctx, query)
	})
	lookupDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return domain.Coordinates{}, err
	}
	return result.(domain.Coordinates), nil
}

func (c *NominatimClient) search(ctx context.Context, query string) (domain.Coordinates, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1&countrycodes=%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.QueryEscape(query), url.QueryEscape(c.cfg.CountryCodes))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Coordinates{}, err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Coordinates{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.Coordinates{}, upstreamStatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Coordinates{}, err
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return domain.Coordinates{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(results) == 0 {
		return domain.Coordinates{}, errNoResults
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: lat %q", errBadCoordinates, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("%w: lon %q", errBadCoordinates, results[0].Lon)
	}
	return domain.Coordinates{Latitude: lat, Longitude: lon}, nil
}

func failureReason(err error) string {
	var statusErr upstreamStatusError
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.Is(err, errNoResults):
		return "no_results"
	case errors.Is(err, errBadCoordinates):
		return "bad_coordinates"
	case errors.As(err, &statusErr):
		return "upstream_status"
	default:
		return "upstream_error"
	}
}
