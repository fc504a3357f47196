package service

import (
	"context"
	"strings"

	"github.com/vbonduro/fishedex/internal/domain"
)

// DefaultSpecies is used by BestSpots when no species is given.
const DefaultSpecies = "Rainbow Trout"

// insightRepository is the subset of store.InsightStore that InsightService requires.
type insightRepository interface {
	FishCaught(ctx context.Context) ([]*domain.FishCaught, error)
	BestSpots(ctx context.Context, species string) ([]*domain.BestSpot, error)
}

type InsightService struct {
	insights insightRepository
}

func NewInsightService(insights insightRepository) *InsightService {
	return &InsightService{insights: insights}
}

func (s *InsightService) FishCaught(ctx context.Context) ([]*domain.FishCaught, error) {
	return s.insights.FishCaught(ctx)
}

func (s *InsightService) BestSpots(ctx context.Context, species string) ([]*domain.BestSpot, error) {
	species = strings.TrimSpace(species)
	if species == "" {
		species = DefaultSpecies
	}
	return s.insights.BestSpots(ctx, species)
}
