package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vbonduro/fishedex/internal/domain"
	"github.com/vbonduro/fishedex/internal/photostore"
)

// imageRepository is the subset of store.ImageStore that ImageService requires.
type imageRepository interface {
	Kind() domain.ImageKind
	Create(ctx context.Context, img *domain.Image) (*domain.Image, error)
	GetByID(ctx context.Context, id int64) (*domain.Image, error)
	ListByParent(ctx context.Context, parentID int64) ([]*domain.Image, error)
}

// UploadInput is one image to attach. At least one of Data and URL is set;
// when both are, the payload is stored and the URL kept alongside it.
type UploadInput struct {
	ParentID int64
	URL      string
	Caption  string
	Data     []byte
	MimeType string
}

// ImageWithData is an image row plus its payload as a data URI. ImageData is
// nil for URL-only images.
type ImageWithData struct {
	*domain.Image
	ImageData *string `json:"image_data"`
}

func (w *ImageWithData) MarshalJSON() ([]byte, error) {
	return w.Image.MarshalWith(map[string]any{"image_data": w.ImageData})
}

// ImageFile is what the raw file endpoint serves: either a payload to
// stream or a URL to redirect to.
type ImageFile struct {
	Body        io.ReadCloser
	MimeType    string
	RedirectURL string
}

// ImageService manages the images of one kind (catch, scenery or location).
type ImageService struct {
	images imageRepository
	blobs  photostore.PhotoStore
	logger *slog.Logger
}

func NewImageService(images imageRepository, blobs photostore.PhotoStore, logger *slog.Logger) *ImageService {
	return &ImageService{images: images, blobs: blobs, logger: logger.With("image_kind", string(images.Kind()))}
}

func (s *ImageService) Kind() domain.ImageKind {
	return s.images.Kind()
}

func (s *ImageService) Upload(ctx context.Context, in UploadInput) (*domain.Image, error) {
	url := strings.TrimSpace(in.URL)
	if len(in.Data) == 0 && url == "" {
		return nil, domain.Validationf("Either image URL or file upload is required")
	}

	img := &domain.Image{ParentID: in.ParentID, Caption: in.Caption}
	if url != "" {
		img.URL = &url
	}

	if len(in.Data) > 0 {
		key, err := s.blobs.Save(ctx, string(s.images.Kind()), in.MimeType, bytes.NewReader(in.Data))
		if err != nil {
			return nil, fmt.Errorf("failed to save image payload: %w", err)
		}
		s.logger.Debug("image payload saved", "storage_key", key, "bytes", len(in.Data))
		mime := in.MimeType
		img.StorageKey = &key
		img.MimeType = &mime
	}

	created, err := s.images.Create(ctx, img)
	if err != nil {
		if img.StorageKey != nil {
			removeBlobs(ctx, s.blobs, s.logger, []string{*img.StorageKey})
		}
		return nil, err
	}

	s.logger.Info("image uploaded", "image_id", created.ID, "parent_id", created.ParentID, "has_payload", created.HasPayload())
	return created, nil
}

func (s *ImageService) ListImages(ctx context.Context, parentID int64) ([]*domain.Image, error) {
	return s.images.ListByParent(ctx, parentID)
}

func (s *ImageService) GetImage(ctx context.Context, id int64) (*domain.Image, error) {
	img, err := s.images.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get image: %w", err)
	}
	if img == nil {
		return nil, domain.NotFound("Image")
	}
	return img, nil
}

// GetImageWithData loads the image and inlines its payload as a base64 data URI.
func (s *ImageService) GetImageWithData(ctx context.Context, id int64) (*ImageWithData, error) {
	img, err := s.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &ImageWithData{Image: img}
	if !img.HasPayload() {
		return out, nil
	}

	rc, mime, err := s.blobs.Get(ctx, *img.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open image payload: %w", err)
	}
	defer closeWithLog(rc, s.logger)

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read image payload: %w", err)
	}
	if img.MimeType != nil && *img.MimeType != "" {
		mime = *img.MimeType
	}
	uri := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	out.ImageData = &uri
	return out, nil
}

// OpenImage returns the payload for streaming, or the URL to redirect to for
// URL-only images. The caller closes Body when it is set.
func (s *ImageService) OpenImage(ctx context.Context, id int64) (*ImageFile, error) {
	img, err := s.GetImage(ctx, id)
	if err != nil {
		return nil, err
	}
	if !img.HasPayload() {
		if img.URL == nil {
			return nil, domain.NotFound("Image file")
		}
		return &ImageFile{RedirectURL: *img.URL}, nil
	}

	rc, mime, err := s.blobs.Get(ctx, *img.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to open image payload: %w", err)
	}
	if img.MimeType != nil && *img.MimeType != "" {
		mime = *img.MimeType
	}
	return &ImageFile{Body: rc, MimeType: mime}, nil
}

func closeWithLog(c io.Closer, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Error("failed to close image payload", "error", err)
	}
}
