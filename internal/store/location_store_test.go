package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/fishedex/internal/domain"
)

func TestLocationStoreCreate(t *testing.T) {
	d := openTestDB(t)

	loc := seedLocation(t, d, "Bunch Bar")
	assert.NotZero(t, loc.ID)
	assert.Equal(t, "Bunch Bar", loc.Name)
	require.NotNil(t, loc.Latitude)
	require.NotNil(t, loc.Longitude)
	assert.Equal(t, 45.5, *loc.Latitude)
	assert.Equal(t, -122.6, *loc.Longitude)
	assert.False(t, loc.IsSecret)
}

func TestLocationStoreNullCoordinates(t *testing.T) {
	d := openTestDB(t)

	loc, err := NewLocationStore(d).Create(context.Background(), &domain.Location{
		Name:     "Secret Hole",
		Pinpoint: "behind the mill",
		IsSecret: true,
	})
	require.NoError(t, err)
	assert.Nil(t, loc.Latitude)
	assert.Nil(t, loc.Longitude)
	assert.True(t, loc.IsSecret)
}

func TestLocationStoreList(t *testing.T) {
	d := openTestDB(t)
	seedLocation(t, d, "Tailout")
	seedLocation(t, d, "Bunch Bar")

	locations, err := NewLocationStore(d).List(context.Background())
	require.NoError(t, err)
	require.Len(t, locations, 2)
	assert.Equal(t, "Bunch Bar", locations[0].Name)
	assert.Equal(t, "Tailout", locations[1].Name)
}

func TestLocationStoreUpdate(t *testing.T) {
	d := openTestDB(t)
	store := NewLocationStore(d)
	ctx := context.Background()

	loc := seedLocation(t, d, "Bunch Bar")
	loc.Name = "Bunch Bar North"
	loc.Pinpoint = ""
	loc.Latitude = nil
	loc.Longitude = nil
	loc.Lore = "Big fish under the log jam"

	updated, err := store.Update(ctx, loc)
	require.NoError(t, err)
	assert.Equal(t, "Bunch Bar North", updated.Name)
	assert.Equal(t, "Big fish under the log jam", updated.Lore)
	assert.Nil(t, updated.Latitude)
}

func TestLocationStoreUpdateNotFound(t *testing.T) {
	d := openTestDB(t)

	_, err := NewLocationStore(d).Update(context.Background(), &domain.Location{ID: 404, Name: "Nowhere"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationStoreDeleteCascadeNullsOutings(t *testing.T) {
	d := openTestDB(t)
	store := NewLocationStore(d)
	ctx := context.Background()

	user := seedUser(t, d)
	loc := seedLocation(t, d, "Bunch Bar")
	outing := seedOuting(t, d, user.ID, &loc.ID, "2024-05-01")
	seedImage(t, d, domain.LocationImage, loc.ID, "location/a.jpg")
	seedImage(t, d, domain.LocationImage, loc.ID, "location/b.jpg")

	keys, err := store.DeleteCascade(ctx, loc.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"location/a.jpg", "location/b.jpg"}, keys)

	gone, err := store.GetByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	survivor, err := NewOutingStore(d).GetByID(ctx, outing.ID)
	require.NoError(t, err)
	require.NotNil(t, survivor)
	assert.Nil(t, survivor.LocationID)

	assert.Zero(t, countRows(t, d, `SELECT COUNT(*) FROM location_images`))
}

func TestLocationStoreDeleteCascadeNotFound(t *testing.T) {
	d := openTestDB(t)

	_, err := NewLocationStore(d).DeleteCascade(context.Background(), 12)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
