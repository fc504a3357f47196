package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vbonduro/fishedex/internal/domain"
)

const locationColumns = `id, name, region, pinpoint, latitude, longitude, is_secret, lore, created_at`

type LocationStore struct {
	db *sql.DB
}

func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

func scanLocation(row scanner) (*domain.Location, error) {
	loc := &domain.Location{}
	var lat, lng sql.NullFloat64
	if err := row.Scan(&loc.ID, &loc.Name, &loc.Region, &loc.Pinpoint, &lat, &lng, &loc.IsSecret, &loc.Lore, &loc.CreatedAt); err != nil {
		return nil, err
	}
	loc.Latitude = floatPtr(lat)
	loc.Longitude = floatPtr(lng)
	return loc, nil
}

// Create inserts loc and returns the stored row. loc.ID is ignored.
func (s *LocationStore) Create(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO locations (name, region, pinpoint, latitude, longitude, is_secret, lore)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, loc.Name, loc.Region, loc.Pinpoint, loc.Latitude, loc.Longitude, loc.IsSecret, loc.Lore)
	if err != nil {
		return nil, fmt.Errorf("failed to create location: %w", classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *LocationStore) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	loc, err := scanLocation(s.db.QueryRowContext(ctx, `
		SELECT `+locationColumns+` FROM locations WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location: %w", err)
	}
	return loc, nil
}

func (s *LocationStore) List(ctx context.Context) ([]*domain.Location, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+locationColumns+` FROM locations ORDER BY name ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	defer rows.Close()

	locations := []*domain.Location{}
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locations: %w", err)
	}

	return locations, nil
}

// Update overwrites every editable column of the location with id loc.ID.
func (s *LocationStore) Update(ctx context.Context, loc *domain.Location) (*domain.Location, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE locations
		SET name = ?, region = ?, pinpoint = ?, latitude = ?, longitude = ?, is_secret = ?, lore = ?
		WHERE id = ?
	`, loc.Name, loc.Region, loc.Pinpoint, loc.Latitude, loc.Longitude, loc.IsSecret, loc.Lore, loc.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update location: %w", classify(err))
	}
	if err := mustAffect(result, "Location"); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, loc.ID)
}

// DeleteCascade detaches referencing outings, removes the location's images
// and then the location, all in one transaction. It returns the storage keys
// of the removed images so their payloads can be cleaned up.
func (s *LocationStore) DeleteCascade(ctx context.Context, id int64) ([]string, error) {
	var keys []string
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var exists int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM locations WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("Location")
		}
		if err != nil {
			return fmt.Errorf("failed to get location: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE outings SET location_id = NULL WHERE location_id = ?
		`, id); err != nil {
			return fmt.Errorf("failed to detach outings: %w", classify(err))
		}

		keys, err = collectKeys(ctx, tx, `
			SELECT storage_key FROM location_images WHERE location_id = ?
		`, id)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			DELETE FROM location_images WHERE location_id = ?
		`, id); err != nil {
			return fmt.Errorf("failed to delete location images: %w", classify(err))
		}

		if _, err := tx.ExecContext(ctx, `
			DELETE FROM locations WHERE id = ?
		`, id); err != nil {
			return fmt.Errorf("failed to delete location: %w", classify(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
