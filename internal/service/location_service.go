package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/fishedex/internal/domain"
	"github.com/vbonduro/fishedex/internal/photostore"
	"github.com/vbonduro/fishedex/internal/weather"
)

// locationRepository is the subset of store.LocationStore that LocationService requires.
type locationRepository interface {
	Create(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	List(ctx context.Context) ([]*domain.Location, error)
	Update(ctx context.Context, loc *domain.Location) (*domain.Location, error)
	DeleteCascade(ctx context.Context, id int64) ([]string, error)
}

// LocationInput carries the editable fields of a location.
type LocationInput struct {
	Name     string
	Region   string
	Pinpoint string
	IsSecret bool
	Lore     string
}

// toLocation derives coordinates from the pinpoint. A pinpoint that does not
// parse is kept as typed and leaves the coordinates null.
func (in LocationInput) toLocation(id int64) *domain.Location {
	loc := &domain.Location{
		ID:       id,
		Name:     in.Name,
		Region:   in.Region,
		Pinpoint: in.Pinpoint,
		IsSecret: in.IsSecret,
		Lore:     in.Lore,
	}
	if c, ok := weather.ParsePinpoint(in.Pinpoint); ok {
		loc.Latitude = &c.Latitude
		loc.Longitude = &c.Longitude
	}
	return loc
}

type LocationService struct {
	locations locationRepository
	blobs     photostore.PhotoStore
	logger    *slog.Logger
}

func NewLocationService(locations locationRepository, blobs photostore.PhotoStore, logger *slog.Logger) *LocationService {
	return &LocationService{locations: locations, blobs: blobs, logger: logger}
}

func (s *LocationService) CreateLocation(ctx context.Context, in LocationInput) (*domain.Location, error) {
	loc, err := s.locations.Create(ctx, in.toLocation(0))
	if err != nil {
		return nil, err
	}
	s.logger.Info("location created", "location_id", loc.ID, "has_coordinates", loc.Latitude != nil)
	return loc, nil
}

func (s *LocationService) GetLocation(ctx context.Context, id int64) (*domain.Location, error) {
	loc, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	if loc == nil {
		return nil, domain.NotFound("Location")
	}
	return loc, nil
}

func (s *LocationService) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	return s.locations.List(ctx)
}

func (s *LocationService) UpdateLocation(ctx context.Context, id int64, in LocationInput) (*domain.Location, error) {
	loc, err := s.locations.Update(ctx, in.toLocation(id))
	if err != nil {
		return nil, err
	}
	s.logger.Info("location updated", "location_id", id)
	return loc, nil
}

// DeleteLocation removes the location and its images. Outings that pointed at
// it are kept with no location.
func (s *LocationService) DeleteLocation(ctx context.Context, id int64) error {
	keys, err := s.locations.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info("location deleted", "location_id", id, "images_removed", len(keys))
	removeBlobs(ctx, s.blobs, s.logger, keys)
	return nil
}
