package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/fishedex/internal/domain"
	"github.com/vbonduro/fishedex/internal/store"
)

func newSceneryService(t *testing.T) (*ImageService, *stubPhotoStore, int64) {
	t.Helper()
	d := openTestDB(t)
	ctx := context.Background()

	user, err := store.NewUserStore(d).Create(ctx, "angler", "angler@example.com")
	require.NoError(t, err)
	o, err := store.NewOutingStore(d).Create(ctx, &domain.Outing{UserID: user.ID, OutingDate: "2024-06-15"})
	require.NoError(t, err)

	imageStore, err := store.NewImageStore(d, domain.SceneryImage)
	require.NoError(t, err)
	blobs := newStubPhotoStore()
	return NewImageService(imageStore, blobs, testLogger()), blobs, o.ID
}

func TestImageServiceRequiresFileOrURL(t *testing.T) {
	svc, _, outingID := newSceneryService(t)

	_, err := svc.Upload(context.Background(), UploadInput{ParentID: outingID, Caption: "nothing"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Either image URL or file upload is required", domain.Message(err))
}

func TestImageServiceUploadPayload(t *testing.T) {
	svc, blobs, outingID := newSceneryService(t)
	ctx := context.Background()

	img, err := svc.Upload(ctx, UploadInput{ParentID: outingID, Data: []byte{0xff, 0xd8, 0xff}, MimeType: "image/jpeg", Caption: "Sunrise"})
	require.NoError(t, err)
	require.True(t, img.HasPayload())
	assert.Equal(t, "image/jpeg", *img.MimeType)
	assert.Contains(t, blobs.saved, *img.StorageKey)

	withData, err := svc.GetImageWithData(ctx, img.ID)
	require.NoError(t, err)
	require.NotNil(t, withData.ImageData)
	assert.Equal(t, "data:image/jpeg;base64,/9j/", *withData.ImageData)

	file, err := svc.OpenImage(ctx, img.ID)
	require.NoError(t, err)
	defer file.Body.Close()
	data, err := io.ReadAll(file.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)
	assert.Equal(t, "image/jpeg", file.MimeType)
}

func TestImageServiceURLOnly(t *testing.T) {
	svc, blobs, outingID := newSceneryService(t)
	ctx := context.Background()

	img, err := svc.Upload(ctx, UploadInput{ParentID: outingID, URL: " https://example.com/river.jpg "})
	require.NoError(t, err)
	assert.False(t, img.HasPayload())
	assert.Equal(t, "https://example.com/river.jpg", *img.URL)
	assert.Empty(t, blobs.saved)

	withData, err := svc.GetImageWithData(ctx, img.ID)
	require.NoError(t, err)
	assert.Nil(t, withData.ImageData)

	b, err := json.Marshal(withData)
	require.NoError(t, err)
	var wire map[string]any
	require.NoError(t, json.Unmarshal(b, &wire))
	assert.Equal(t, float64(outingID), wire["outing_id"])
	assert.Contains(t, wire, "image_data")
	assert.Nil(t, wire["image_data"])

	file, err := svc.OpenImage(ctx, img.ID)
	require.NoError(t, err)
	assert.Nil(t, file.Body)
	assert.Equal(t, "https://example.com/river.jpg", file.RedirectURL)
}

func TestImageServiceRowFailureRemovesPayload(t *testing.T) {
	svc, blobs, _ := newSceneryService(t)

	_, err := svc.Upload(context.Background(), UploadInput{ParentID: 555, Data: []byte("x"), MimeType: "image/png"})
	assert.ErrorIs(t, err, domain.ErrConstraint)
	assert.Empty(t, blobs.saved)
	assert.Len(t, blobs.deleted, 1)
}

func TestImageServiceSaveFailure(t *testing.T) {
	svc, blobs, outingID := newSceneryService(t)
	blobs.saveErr = errors.New("disk full")

	_, err := svc.Upload(context.Background(), UploadInput{ParentID: outingID, Data: []byte("x"), MimeType: "image/png"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestImageServiceListAndMissing(t *testing.T) {
	svc, _, outingID := newSceneryService(t)
	ctx := context.Background()

	images, err := svc.ListImages(ctx, outingID)
	require.NoError(t, err)
	assert.Empty(t, images)

	_, err = svc.Upload(ctx, UploadInput{ParentID: outingID, URL: "https://example.com/a.jpg"})
	require.NoError(t, err)

	images, err = svc.ListImages(ctx, outingID)
	require.NoError(t, err)
	assert.Len(t, images, 1)

	_, err = svc.GetImage(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.SceneryImage, svc.Kind())
}
