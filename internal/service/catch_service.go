package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vbonduro/fishedex/internal/domain"
	"github.com/vbonduro/fishedex/internal/photostore"
)

// catchRepository is the subset of store.CatchStore that CatchService requires.
type catchRepository interface {
	Create(ctx context.Context, c *domain.Catch) (*domain.Catch, error)
	GetByID(ctx context.Context, id int64) (*domain.Catch, error)
	ListByOuting(ctx context.Context, outingID int64) ([]*domain.Catch, error)
	Update(ctx context.Context, c *domain.Catch) (*domain.Catch, error)
	DeleteCascade(ctx context.Context, id int64) ([]string, error)
}

// outingLookup is the subset of store.OutingStore that CatchService requires.
type outingLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.Outing, error)
}

// CatchInput carries the editable fields of a catch. A zero Count is
// recorded as one fish.
type CatchInput struct {
	OutingID int64
	Species  string
	Count    int
	Notes    string
}

func (in CatchInput) toCatch(id int64) *domain.Catch {
	count := in.Count
	if count == 0 {
		count = 1
	}
	return &domain.Catch{ID: id, OutingID: in.OutingID, Species: in.Species, Count: count, Notes: in.Notes}
}

type CatchService struct {
	catches catchRepository
	outings outingLookup
	blobs   photostore.PhotoStore
	logger  *slog.Logger
}

func NewCatchService(catches catchRepository, outings outingLookup, blobs photostore.PhotoStore, logger *slog.Logger) *CatchService {
	return &CatchService{catches: catches, outings: outings, blobs: blobs, logger: logger}
}

func (s *CatchService) CreateCatch(ctx context.Context, in CatchInput) (*domain.Catch, error) {
	if in.Count < 0 {
		return nil, domain.Validationf("Count cannot be negative")
	}
	c, err := s.catches.Create(ctx, in.toCatch(0))
	if err != nil {
		return nil, err
	}
	s.logger.Info("catch created", "catch_id", c.ID, "outing_id", c.OutingID, "species", c.Species)
	return c, nil
}

func (s *CatchService) GetCatch(ctx context.Context, id int64) (*domain.Catch, error) {
	c, err := s.catches.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get catch: %w", err)
	}
	if c == nil {
		return nil, domain.NotFound("Catch")
	}
	return c, nil
}

func (s *CatchService) ListCatches(ctx context.Context, outingID int64) ([]*domain.Catch, error) {
	o, err := s.outings.GetByID(ctx, outingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get outing: %w", err)
	}
	if o == nil {
		return nil, domain.NotFound("Outing")
	}
	return s.catches.ListByOuting(ctx, outingID)
}

// UpdateCatch rewrites species, count and notes. in.OutingID is ignored.
func (s *CatchService) UpdateCatch(ctx context.Context, id int64, in CatchInput) (*domain.Catch, error) {
	if in.Count < 0 {
		return nil, domain.Validationf("Count cannot be negative")
	}
	c, err := s.catches.Update(ctx, in.toCatch(id))
	if err != nil {
		return nil, err
	}
	s.logger.Info("catch updated", "catch_id", id)
	return c, nil
}

func (s *CatchService) DeleteCatch(ctx context.Context, id int64) error {
	keys, err := s.catches.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info("catch deleted", "catch_id", id, "images_removed", len(keys))
	removeBlobs(ctx, s.blobs, s.logger, keys)
	return nil
}
