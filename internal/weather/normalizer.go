package weather

import (
	"context"
	"log/slog"
	"time"

	"github.com/vbonduro/fishedex/internal/domain"
)

const dateLayout = "2006-01-02"

// Query describes where and when to look up weather. Date is YYYY-MM-DD.
// Latitude and Longitude win over Pinpoint when both are set.
type Query struct {
	Date      string
	Latitude  *float64
	Longitude *float64
	Pinpoint  string
}

// Normalizer picks the historical provider for days before today and the
// forecast provider otherwise.
type Normalizer struct {
	historical Provider
	forecast   Provider
	now        func() time.Time
}

type Option func(*Normalizer)

// WithClock replaces time.Now, which decides what "today" is.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) { n.now = now }
}

func NewNormalizer(historical, forecast Provider, opts ...Option) *Normalizer {
	n := &Normalizer{historical: historical, forecast: forecast, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Lookup validates the query, selects a provider and returns its report.
// Nothing is cached; every call reaches the upstream.
func (n *Normalizer) Lookup(ctx context.Context, q Query) (*Report, error) {
	now := n.now()
	day, err := time.ParseInLocation(dateLayout, q.Date, now.Location())
	if err != nil {
		return nil, domain.Validationf("Cannot fetch weather: outing must have a valid date")
	}

	at, err := ResolveCoordinates(q.Latitude, q.Longitude, q.Pinpoint)
	if err != nil {
		return nil, err
	}

	provider := n.forecast
	if day.Format(dateLayout) < now.Format(dateLayout) {
		provider = n.historical
	}

	slog.Debug("looking up weather", "provider", provider.Name(), "date", q.Date,
		"latitude", at.Latitude, "longitude", at.Longitude)

	report, err := provider.Fetch(ctx, day, at)
	if err != nil {
		return nil, err
	}
	report.TemperatureUnit = Fahrenheit
	return report, nil
}
