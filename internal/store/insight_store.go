package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vbonduro/fishedex/internal/domain"
)

// InsightStore serves the read-only aggregates built on the fish_caught view.
type InsightStore struct {
	db *sql.DB
}

func NewInsightStore(db *sql.DB) *InsightStore {
	return &InsightStore{db: db}
}

func (s *InsightStore) FishCaught(ctx context.Context) ([]*domain.FishCaught, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT location_id, location_name, region, species, total_caught
		FROM fish_caught
		ORDER BY location_name ASC, species ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fish caught: %w", err)
	}
	defer rows.Close()

	result := []*domain.FishCaught{}
	for rows.Next() {
		fc := &domain.FishCaught{}
		if err := rows.Scan(&fc.LocationID, &fc.LocationName, &fc.Region, &fc.Species, &fc.TotalCaught); err != nil {
			return nil, fmt.Errorf("failed to scan fish caught: %w", err)
		}
		result = append(result, fc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fish caught: %w", err)
	}

	return result, nil
}

// BestSpots ranks locations by how many of species were caught there,
// highest first. Species matching ignores case.
func (s *InsightStore) BestSpots(ctx context.Context, species string) ([]*domain.BestSpot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT location_id, location_name, region, SUM(total_caught) AS total
		FROM fish_caught
		WHERE species = ? COLLATE NOCASE
		GROUP BY location_id, location_name, region
		ORDER BY total DESC, location_name ASC
	`, species)
	if err != nil {
		return nil, fmt.Errorf("failed to query best spots: %w", err)
	}
	defer rows.Close()

	result := []*domain.BestSpot{}
	for rows.Next() {
		bs := &domain.BestSpot{}
		if err := rows.Scan(&bs.LocationID, &bs.LocationName, &bs.Region, &bs.TotalCaught); err != nil {
			return nil, fmt.Errorf("failed to scan best spot: %w", err)
		}
		result = append(result, bs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating best spots: %w", err)
	}

	return result, nil
}
