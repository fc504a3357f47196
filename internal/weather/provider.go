package weather

import (
	"context"
	"time"
)

// Provider is one upstream weather source. Implementations live in
// internal/weather/providers.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, day time.Time, at Coordinates) (*Report, error)
}
