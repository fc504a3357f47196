package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/fishedex/internal/domain"
)

type stubInsights struct {
	species string
}

func (s *stubInsights) FishCaught(context.Context) ([]*domain.FishCaught, error) {
	return []*domain.FishCaught{}, nil
}

func (s *stubInsights) BestSpots(_ context.Context, species string) ([]*domain.BestSpot, error) {
	s.species = species
	return []*domain.BestSpot{}, nil
}

func TestInsightServiceDefaultSpecies(t *testing.T) {
	repo := &stubInsights{}
	svc := NewInsightService(repo)

	_, err := svc.BestSpots(context.Background(), "  ")
	require.NoError(t, err)
	assert.Equal(t, "Rainbow Trout", repo.species)

	_, err = svc.BestSpots(context.Background(), "Brook Trout")
	require.NoError(t, err)
	assert.Equal(t, "Brook Trout", repo.species)
}
