package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/fishedex/internal/domain"
	"github.com/vbonduro/fishedex/internal/store"
)

type catchFixture struct {
	catches  *CatchService
	images   *ImageService
	blobs    *stubPhotoStore
	outingID int64
}

func newCatchFixture(t *testing.T) *catchFixture {
	t.Helper()
	d := openTestDB(t)
	ctx := context.Background()

	user, err := store.NewUserStore(d).Create(ctx, "angler", "angler@example.com")
	require.NoError(t, err)
	outings := store.NewOutingStore(d)
	o, err := outings.Create(ctx, &domain.Outing{UserID: user.ID, OutingDate: "2024-06-15"})
	require.NoError(t, err)

	imageStore, err := store.NewImageStore(d, domain.CatchImage)
	require.NoError(t, err)

	blobs := newStubPhotoStore()
	return &catchFixture{
		catches:  NewCatchService(store.NewCatchStore(d), outings, blobs, testLogger()),
		images:   NewImageService(imageStore, blobs, testLogger()),
		blobs:    blobs,
		outingID: o.ID,
	}
}

func TestCatchServiceDefaultsCountToOne(t *testing.T) {
	f := newCatchFixture(t)

	c, err := f.catches.CreateCatch(context.Background(), CatchInput{OutingID: f.outingID, Species: "Rainbow Trout"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Count)
}

func TestCatchServiceRejectsNegativeCount(t *testing.T) {
	f := newCatchFixture(t)

	_, err := f.catches.CreateCatch(context.Background(), CatchInput{OutingID: f.outingID, Species: "Carp", Count: -2})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCatchServiceListForMissingOuting(t *testing.T) {
	f := newCatchFixture(t)

	_, err := f.catches.ListCatches(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatchServiceUpdateKeepsOuting(t *testing.T) {
	f := newCatchFixture(t)
	ctx := context.Background()

	c, err := f.catches.CreateCatch(ctx, CatchInput{OutingID: f.outingID, Species: "Rainbow Trout", Count: 2})
	require.NoError(t, err)

	updated, err := f.catches.UpdateCatch(ctx, c.ID, CatchInput{OutingID: 999, Species: "Cutthroat", Count: 4, Notes: "Misidentified"})
	require.NoError(t, err)
	assert.Equal(t, f.outingID, updated.OutingID)
	assert.Equal(t, "Cutthroat", updated.Species)
	assert.Equal(t, 4, updated.Count)

	catches, err := f.catches.ListCatches(ctx, f.outingID)
	require.NoError(t, err)
	require.Len(t, catches, 1)
}

func TestCatchServiceDeleteRemovesImages(t *testing.T) {
	f := newCatchFixture(t)
	ctx := context.Background()

	c, err := f.catches.CreateCatch(ctx, CatchInput{OutingID: f.outingID, Species: "Rainbow Trout"})
	require.NoError(t, err)
	img, err := f.images.Upload(ctx, UploadInput{ParentID: c.ID, Data: []byte("jpeg"), MimeType: "image/jpeg"})
	require.NoError(t, err)

	require.NoError(t, f.catches.DeleteCatch(ctx, c.ID))
	assert.Equal(t, []string{*img.StorageKey}, f.blobs.deleted)

	_, err = f.images.GetImage(ctx, img.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
