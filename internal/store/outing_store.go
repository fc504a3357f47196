package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vbonduro/fishedex/internal/domain"
)

const outingColumns = `id, user_id, location_id, outing_date, worth_returning, field_notes, mvp_lure, created_at`

type OutingStore struct {
	db *sql.DB
}

func NewOutingStore(db *sql.DB) *OutingStore {
	return &OutingStore{db: db}
}

func scanOuting(row scanner) (*domain.Outing, error) {
	o := &domain.Outing{}
	var locationID sql.NullInt64
	if err := row.Scan(&o.ID, &o.UserID, &locationID, &o.OutingDate, &o.WorthReturning, &o.FieldNotes, &o.MVPLure, &o.CreatedAt); err != nil {
		return nil, err
	}
	o.LocationID = int64Ptr(locationID)
	return o, nil
}

func (s *OutingStore) Create(ctx context.Context, o *domain.Outing) (*domain.Outing, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO outings (user_id, location_id, outing_date, worth_returning, field_notes, mvp_lure)
		VALUES (?, ?, ?, ?, ?, ?)
	`, o.UserID, o.LocationID, o.OutingDate, o.WorthReturning, o.FieldNotes, o.MVPLure)
	if err != nil {
		return nil, fmt.Errorf("failed to create outing: %w", classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *OutingStore) GetByID(ctx context.Context, id int64) (*domain.Outing, error) {
	o, err := scanOuting(s.db.QueryRowContext(ctx, `
		SELECT `+outingColumns+` FROM outings WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get outing: %w", err)
	}
	return o, nil
}

// List returns outings newest first.
func (s *OutingStore) List(ctx context.Context) ([]*domain.Outing, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+outingColumns+` FROM outings ORDER BY outing_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list outings: %w", err)
	}
	defer rows.Close()

	outings := []*domain.Outing{}
	for rows.Next() {
		o, err := scanOuting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outing: %w", err)
		}
		outings = append(outings, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outings: %w", err)
	}

	return outings, nil
}

func (s *OutingStore) Update(ctx context.Context, o *domain.Outing) (*domain.Outing, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE outings
		SET user_id = ?, location_id = ?, outing_date = ?, worth_returning = ?, field_notes = ?, mvp_lure = ?
		WHERE id = ?
	`, o.UserID, o.LocationID, o.OutingDate, o.WorthReturning, o.FieldNotes, o.MVPLure, o.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update outing: %w", classify(err))
	}
	if err := mustAffect(result, "Outing"); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, o.ID)
}

// DeleteCascade removes the outing together with its catches, their images
// and the outing's scenery images in one transaction. It returns the storage
// keys of every removed image.
func (s *OutingStore) DeleteCascade(ctx context.Context, id int64) ([]string, error) {
	var keys []string
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var exists int64
		err := tx.QueryRowContext(ctx, `SELECT id FROM outings WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("Outing")
		}
		if err != nil {
			return fmt.Errorf("failed to get outing: %w", err)
		}

		catchKeys, err := collectKeys(ctx, tx, `
			SELECT storage_key FROM catch_images
			WHERE catch_id IN (SELECT id FROM catches WHERE outing_id = ?)
		`, id)
		if err != nil {
			return err
		}
		sceneryKeys, err := collectKeys(ctx, tx, `
			SELECT storage_key FROM scenery_images WHERE outing_id = ?
		`, id)
		if err != nil {
			return err
		}

		steps := []struct {
			what  string
			query string
		}{
			{"catch images", `DELETE FROM catch_images WHERE catch_id IN (SELECT id FROM catches WHERE outing_id = ?)`},
			{"catches", `DELETE FROM catches WHERE outing_id = ?`},
			{"scenery images", `DELETE FROM scenery_images WHERE outing_id = ?`},
			{"outing", `DELETE FROM outings WHERE id = ?`},
		}
		for _, step := range steps {
			if _, err := tx.ExecContext(ctx, step.query, id); err != nil {
				return fmt.Errorf("failed to delete %s: %w", step.what, classify(err))
			}
		}

		keys = append(catchKeys, sceneryKeys...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// ListWithLocations joins each located outing with its location summary.
// Outings without a location are left out.
func (s *OutingStore) ListWithLocations(ctx context.Context) ([]*domain.OutingWithLocation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT o.id, o.outing_date, o.worth_returning, l.name, l.region, l.latitude, l.longitude
		FROM outings o
		JOIN locations l ON l.id = o.location_id
		ORDER BY o.outing_date DESC, o.id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list outings with locations: %w", err)
	}
	defer rows.Close()

	result := []*domain.OutingWithLocation{}
	for rows.Next() {
		ol := &domain.OutingWithLocation{}
		var lat, lng sql.NullFloat64
		if err := rows.Scan(&ol.OutingID, &ol.OutingDate, &ol.WorthReturning, &ol.LocationName, &ol.Region, &lat, &lng); err != nil {
			return nil, fmt.Errorf("failed to scan outing with location: %w", err)
		}
		ol.Latitude = floatPtr(lat)
		ol.Longitude = floatPtr(lng)
		result = append(result, ol)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outings with locations: %w", err)
	}

	return result, nil
}

// WeatherSite loads the outing's date and its location's coordinates.
func (s *OutingStore) WeatherSite(ctx context.Context, id int64) (*domain.WeatherSite, error) {
	site := &domain.WeatherSite{}
	var locationID sql.NullInt64
	var pinpoint sql.NullString
	var lat, lng sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT o.id, o.outing_date, l.id, l.pinpoint, l.latitude, l.longitude
		FROM outings o
		LEFT JOIN locations l ON l.id = o.location_id
		WHERE o.id = ?
	`, id).Scan(&site.OutingID, &site.OutingDate, &locationID, &pinpoint, &lat, &lng)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get outing weather site: %w", err)
	}

	site.LocationID = int64Ptr(locationID)
	site.Pinpoint = pinpoint.String
	site.Latitude = floatPtr(lat)
	site.Longitude = floatPtr(lng)
	return site, nil
}
