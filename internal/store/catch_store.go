package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vbonduro/fishedex/internal/domain"
)

const catchColumns = `id, outing_id, species, count, notes, created_at`

type CatchStore struct {
	db *sql.DB
}

func NewCatchStore(db *sql.DB) *CatchStore {
	return &CatchStore{db: db}
}

func scanCatch(row scanner) (*domain.Catch, error) {
	c := &domain.Catch{}
	if err := row.Scan(&c.ID, &c.OutingID, &c.Species, &c.Count, &c.Notes, &c.CreatedAt); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatchStore) Create(ctx context.Context, c *domain.Catch) (*domain.Catch, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO catches (outing_id, species, count, notes) VALUES (?, ?, ?, ?)
	`, c.OutingID, c.Species, c.Count, c.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to create catch: %w", classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *CatchStore) GetByID(ctx context.Context, id int64) (*domain.Catch, error) {
	c, err := scanCatch(s.db.QueryRowContext(ctx, `
		SELECT `+catchColumns+` FROM catches WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catch: %w", err)
	}
	return c, nil
}

func (s *CatchStore) ListByOuting(ctx context.Context, outingID int64) ([]*domain.Catch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+catchColumns+` FROM catches WHERE outing_id = ? ORDER BY id ASC
	`, outingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list catches: %w", err)
	}
	defer rows.Close()

	catches := []*domain.Catch{}
	for rows.Next() {
		c, err := scanCatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan catch: %w", err)
		}
		catches = append(catches, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catches: %w", err)
	}

	return catches, nil
}

// Update rewrites species, count and notes. A catch never moves between outings.
func (s *CatchStore) Update(ctx context.Context, c *domain.Catch) (*domain.Catch, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE catches SET species = ?, count = ?, notes = ? WHERE id = ?
	`, c.Species, c.Count, c.Notes, c.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update catch: %w", classify(err))
	}
	if err := mustAffect(result, "Catch"); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, c.ID)
}

// DeleteCascade removes the catch's images and then the catch, returning the
// images' storage keys.
func (s *CatchStore) DeleteCascade(ctx context.Context, id int64) ([]string, error) {
	var keys []string
	err := withTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		keys, err = collectKeys(ctx, tx, `SELECT storage_key FROM catch_images WHERE catch_id = ?`, id)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM catch_images WHERE catch_id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete catch images: %w", classify(err))
		}

		result, err := tx.ExecContext(ctx, `DELETE FROM catches WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete catch: %w", classify(err))
		}
		return mustAffect(result, "Catch")
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}
