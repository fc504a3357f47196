package weather

import (
	"errors"

	"github.com/vbonduro/fishedex/internal/domain"
)

// ErrNoData means the upstream answered but had nothing for the day.
var ErrNoData = errors.New("no weather data")

// UpstreamError is a failed call to a weather provider. Message is the best
// diagnostic available, preferring the upstream's own explanation.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	return e.Provider + ": " + e.UserMessage()
}

func (e *UpstreamError) UserMessage() string {
	if e.Message == "" {
		return "Failed to fetch weather data"
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() []error {
	if e.Err != nil {
		return []error{domain.ErrUpstream, e.Err}
	}
	return []error{domain.ErrUpstream}
}
