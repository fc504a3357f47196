package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vbonduro/fishedex/internal/domain"
)

// imageTable names the table and parent column backing one image kind.
type imageTable struct {
	table  string
	parent string
}

var imageTables = map[domain.ImageKind]imageTable{
	domain.CatchImage:    {table: "catch_images", parent: "catch_id"},
	domain.SceneryImage:  {table: "scenery_images", parent: "outing_id"},
	domain.LocationImage: {table: "location_images", parent: "location_id"},
}

// ImageStore persists image metadata for one kind. Payload bytes live in the
// photo store and are referenced by StorageKey.
type ImageStore struct {
	db   *sql.DB
	kind domain.ImageKind
	t    imageTable
}

func NewImageStore(db *sql.DB, kind domain.ImageKind) (*ImageStore, error) {
	t, ok := imageTables[kind]
	if !ok {
		return nil, fmt.Errorf("unknown image kind %q", kind)
	}
	return &ImageStore{db: db, kind: kind, t: t}, nil
}

func (s *ImageStore) Kind() domain.ImageKind {
	return s.kind
}

func (s *ImageStore) columns() string {
	return `id, ` + s.t.parent + `, image_url, storage_key, mime_type, caption, uploaded_at`
}

func (s *ImageStore) scan(row scanner) (*domain.Image, error) {
	img := &domain.Image{Kind: s.kind}
	var url, key, mime sql.NullString
	if err := row.Scan(&img.ID, &img.ParentID, &url, &key, &mime, &img.Caption, &img.UploadedAt); err != nil {
		return nil, err
	}
	img.URL = stringPtr(url)
	img.StorageKey = stringPtr(key)
	img.MimeType = stringPtr(mime)
	return img, nil
}

func (s *ImageStore) Create(ctx context.Context, img *domain.Image) (*domain.Image, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO `+s.t.table+` (`+s.t.parent+`, image_url, storage_key, mime_type, caption)
		VALUES (?, ?, ?, ?, ?)
	`, img.ParentID, img.URL, img.StorageKey, img.MimeType, img.Caption)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s image: %w", s.kind, classify(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ImageStore) GetByID(ctx context.Context, id int64) (*domain.Image, error) {
	img, err := s.scan(s.db.QueryRowContext(ctx, `
		SELECT `+s.columns()+` FROM `+s.t.table+` WHERE id = ?
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s image: %w", s.kind, err)
	}
	return img, nil
}

// ListByParent returns the parent's images, newest first.
func (s *ImageStore) ListByParent(ctx context.Context, parentID int64) ([]*domain.Image, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+s.columns()+` FROM `+s.t.table+`
		WHERE `+s.t.parent+` = ?
		ORDER BY uploaded_at DESC, id DESC
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s images: %w", s.kind, err)
	}
	defer rows.Close()

	images := []*domain.Image{}
	for rows.Next() {
		img, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s image: %w", s.kind, err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s images: %w", s.kind, err)
	}

	return images, nil
}
