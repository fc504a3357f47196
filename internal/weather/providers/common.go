package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"github.com/vbonduro/fishedex/internal/weather"
)

const (
	DefaultArchiveURL     = "https://archive-api.open-meteo.com/v1/archive"
	DefaultForecastURL    = "https://api.open-meteo.com/v1/forecast"
	DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

	// tripAfter consecutive failures open a provider's breaker.
	tripAfter = 5
	// maxBodyBytes caps how much of an upstream response is read.
	maxBodyBytes = 1 << 20
)

func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    1 * time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= tripAfter
		},
		IsSuccessful: func(err error) bool {
			// A caller giving up, or a request the upstream rejected on its
			// merits, says nothing about the upstream's health.
			return err == nil || errors.Is(err, context.Canceled) || rejectedRequest(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("weather circuit breaker state changed", "provider", name, "from", from.String(), "to", to.String())
		},
	})
}

// rejectedRequest reports whether err is a 4xx reply caused by the request
// itself. 429 is excluded: being throttled is a reason to back off.
func rejectedRequest(err error) bool {
	var ue *weather.UpstreamError
	if !errors.As(err, &ue) {
		return false
	}
	return ue.StatusCode >= 400 && ue.StatusCode < 500 && ue.StatusCode != http.StatusTooManyRequests
}

// doRequest performs one GET through the breaker and returns the response
// body. There is no retry: a failure is reported to the caller as an
// *weather.UpstreamError.
func doRequest(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, provider, rawURL string) ([]byte, error) {
	result, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			msg := upstreamMessage(body)
			if msg == "" {
				msg = fmt.Sprintf("%s returned %d %s", provider, resp.StatusCode, http.StatusText(resp.StatusCode))
			}
			return nil, &weather.UpstreamError{Provider: provider, StatusCode: resp.StatusCode, Message: msg}
		}
		return body, nil
	})
	if err == nil {
		body, ok := result.([]byte)
		if !ok {
			return nil, fmt.Errorf("unexpected result type from circuit breaker")
		}
		return body, nil
	}

	var upstream *weather.UpstreamError
	if errors.As(err, &upstream) {
		return nil, upstream
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &weather.UpstreamError{
			Provider: provider,
			Message:  fmt.Sprintf("Weather provider %s is temporarily unavailable", provider),
			Err:      err,
		}
	}

	// Transport errors embed the request URL, which may carry an API key.
	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg = urlErr.Err.Error()
	}
	return nil, &weather.UpstreamError{
		Provider: provider,
		Message:  fmt.Sprintf("Failed to reach %s: %s", provider, msg),
		Err:      err,
	}
}

// upstreamMessage pulls a human-readable explanation out of an error body.
// Open-Meteo uses "reason"; OpenWeather uses "message"; some proxies use a
// string "error".
func upstreamMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"reason", "message", "error"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func decode(provider string, body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return &weather.UpstreamError{
			Provider: provider,
			Message:  fmt.Sprintf("Malformed response from %s", provider),
			Err:      err,
		}
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatDegrees(v *float64) *string {
	if v == nil {
		return nil
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64) + "°"
	return &s
}

func first[T any](s []*T) *T {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func zeroIfNil(v *float64) *float64 {
	if v == nil {
		z := 0.0
		return &z
	}
	return v
}

func conditionOf(code *int) string {
	if code == nil {
		return weather.Unknown
	}
	return weather.Condition(*code)
}

func imperial(values url.Values) {
	values.Set("temperature_unit", "fahrenheit")
	values.Set("windspeed_unit", "mph")
	values.Set("precipitation_unit", "inch")
}
