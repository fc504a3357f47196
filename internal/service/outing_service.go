package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vbonduro/fishedex/internal/domain"
	"github.com/vbonduro/fishedex/internal/photostore"
	"github.com/vbonduro/fishedex/internal/weather"
)

// outingRepository is the subset of store.OutingStore that OutingService requires.
type outingRepository interface {
	Create(ctx context.Context, o *domain.Outing) (*domain.Outing, error)
	GetByID(ctx context.Context, id int64) (*domain.Outing, error)
	List(ctx context.Context) ([]*domain.Outing, error)
	Update(ctx context.Context, o *domain.Outing) (*domain.Outing, error)
	DeleteCascade(ctx context.Context, id int64) ([]string, error)
	ListWithLocations(ctx context.Context) ([]*domain.OutingWithLocation, error)
	WeatherSite(ctx context.Context, id int64) (*domain.WeatherSite, error)
}

// weatherLookup is satisfied by *weather.Normalizer.
type weatherLookup interface {
	Lookup(ctx context.Context, q weather.Query) (*weather.Report, error)
}

// OutingInput carries the editable fields of an outing. A zero LocationID
// means no location.
type OutingInput struct {
	UserID         int64
	LocationID     int64
	OutingDate     string
	WorthReturning bool
	FieldNotes     string
	MVPLure        string
}

func (in OutingInput) toOuting(id int64) *domain.Outing {
	o := &domain.Outing{
		ID:             id,
		UserID:         in.UserID,
		OutingDate:     in.OutingDate,
		WorthReturning: in.WorthReturning,
		FieldNotes:     in.FieldNotes,
		MVPLure:        in.MVPLure,
	}
	if in.LocationID != 0 {
		locationID := in.LocationID
		o.LocationID = &locationID
	}
	return o
}

// OutingWeather is a weather report fetched for one outing.
type OutingWeather struct {
	OutingID int64 `json:"outing_id"`
	*weather.Report
	FetchedAt time.Time `json:"fetched_at"`
}

type OutingService struct {
	outings outingRepository
	weather weatherLookup
	blobs   photostore.PhotoStore
	logger  *slog.Logger
	now     func() time.Time
}

func NewOutingService(outings outingRepository, lookup weatherLookup, blobs photostore.PhotoStore, logger *slog.Logger) *OutingService {
	return &OutingService{
		outings: outings,
		weather: lookup,
		blobs:   blobs,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *OutingService) CreateOuting(ctx context.Context, in OutingInput) (*domain.Outing, error) {
	o, err := s.outings.Create(ctx, in.toOuting(0))
	if err != nil {
		return nil, err
	}
	s.logger.Info("outing created", "outing_id", o.ID, "user_id", o.UserID)
	return o, nil
}

func (s *OutingService) GetOuting(ctx context.Context, id int64) (*domain.Outing, error) {
	o, err := s.outings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get outing: %w", err)
	}
	if o == nil {
		return nil, domain.NotFound("Outing")
	}
	return o, nil
}

func (s *OutingService) ListOutings(ctx context.Context) ([]*domain.Outing, error) {
	return s.outings.List(ctx)
}

func (s *OutingService) ListOutingsWithLocations(ctx context.Context) ([]*domain.OutingWithLocation, error) {
	return s.outings.ListWithLocations(ctx)
}

func (s *OutingService) UpdateOuting(ctx context.Context, id int64, in OutingInput) (*domain.Outing, error) {
	o, err := s.outings.Update(ctx, in.toOuting(id))
	if err != nil {
		return nil, err
	}
	s.logger.Info("outing updated", "outing_id", id)
	return o, nil
}

// DeleteOuting removes the outing with its catches and every image hanging
// off either.
func (s *OutingService) DeleteOuting(ctx context.Context, id int64) error {
	keys, err := s.outings.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info("outing deleted", "outing_id", id, "images_removed", len(keys))
	removeBlobs(ctx, s.blobs, s.logger, keys)
	return nil
}

// OutingWeather looks up conditions for the outing's day at its location.
func (s *OutingService) OutingWeather(ctx context.Context, id int64) (*OutingWeather, error) {
	site, err := s.outings.WeatherSite(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get outing: %w", err)
	}
	if site == nil {
		return nil, domain.NotFound("Outing")
	}
	if site.OutingDate == "" {
		return nil, domain.Validationf("Cannot fetch weather: outing must have a date")
	}
	if site.LocationID == nil {
		return nil, domain.Validationf("Cannot fetch weather: outing must have a location. Add a location with coordinates (lat,lng).")
	}

	report, err := s.weather.Lookup(ctx, weather.Query{
		Date:      site.OutingDate,
		Latitude:  site.Latitude,
		Longitude: site.Longitude,
		Pinpoint:  site.Pinpoint,
	})
	if err != nil {
		s.logger.Warn("weather lookup failed", "outing_id", id, "error", err)
		return nil, err
	}

	return &OutingWeather{OutingID: id, Report: report, FetchedAt: s.now().UTC()}, nil
}
