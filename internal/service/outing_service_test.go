package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/fishedex/internal/domain"
	"github.com/vbonduro/fishedex/internal/store"
	"github.com/vbonduro/fishedex/internal/weather"
)

type outingFixture struct {
	outings   *OutingService
	locations *LocationService
	lookup    *stubLookup
	blobs     *stubPhotoStore
	userID    int64
}

func newOutingFixture(t *testing.T) *outingFixture {
	t.Helper()
	d := openTestDB(t)
	user, err := store.NewUserStore(d).Create(context.Background(), "angler", "angler@example.com")
	require.NoError(t, err)

	blobs := newStubPhotoStore()
	lookup := &stubLookup{report: &weather.Report{Temperature: float(55), Conditions: "Clear", TemperatureUnit: weather.Fahrenheit}}
	return &outingFixture{
		outings:   NewOutingService(store.NewOutingStore(d), lookup, blobs, testLogger()),
		locations: NewLocationService(store.NewLocationStore(d), blobs, testLogger()),
		lookup:    lookup,
		blobs:     blobs,
		userID:    user.ID,
	}
}

func TestOutingServiceCreateWithoutLocation(t *testing.T) {
	f := newOutingFixture(t)

	o, err := f.outings.CreateOuting(context.Background(), OutingInput{UserID: f.userID, OutingDate: "2024-06-15"})
	require.NoError(t, err)
	assert.Nil(t, o.LocationID)
	assert.False(t, o.WorthReturning)
}

func TestOutingServiceUnknownUserIsConstraint(t *testing.T) {
	f := newOutingFixture(t)

	_, err := f.outings.CreateOuting(context.Background(), OutingInput{UserID: 999, OutingDate: "2024-06-15"})
	assert.ErrorIs(t, err, domain.ErrConstraint)
}

func TestOutingServiceWeather(t *testing.T) {
	f := newOutingFixture(t)
	ctx := context.Background()
	fixed := time.Date(2024, 6, 16, 12, 0, 0, 0, time.UTC)
	f.outings.now = func() time.Time { return fixed }

	loc, err := f.locations.CreateLocation(ctx, LocationInput{Name: "Bunch Bar", Pinpoint: "45.5,-122.6"})
	require.NoError(t, err)
	o, err := f.outings.CreateOuting(ctx, OutingInput{UserID: f.userID, LocationID: loc.ID, OutingDate: "2024-06-15"})
	require.NoError(t, err)

	w, err := f.outings.OutingWeather(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, w.OutingID)
	assert.Equal(t, fixed, w.FetchedAt)
	assert.Equal(t, 55.0, *w.Temperature)
	assert.Equal(t, "2024-06-15", f.lookup.query.Date)
	assert.Equal(t, 45.5, *f.lookup.query.Latitude)
	assert.Equal(t, "45.5,-122.6", f.lookup.query.Pinpoint)
}

func TestOutingServiceWeatherNeedsLocation(t *testing.T) {
	f := newOutingFixture(t)
	ctx := context.Background()

	o, err := f.outings.CreateOuting(ctx, OutingInput{UserID: f.userID, OutingDate: "2024-06-15"})
	require.NoError(t, err)

	_, err = f.outings.OutingWeather(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, f.lookup.calls)
}

func TestOutingServiceWeatherMissingOuting(t *testing.T) {
	f := newOutingFixture(t)

	_, err := f.outings.OutingWeather(context.Background(), 31)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOutingServiceWeatherUpstreamFailure(t *testing.T) {
	f := newOutingFixture(t)
	ctx := context.Background()
	f.lookup.err = &weather.UpstreamError{Provider: "openmeteo-archive", Message: "No historical weather data available for this date"}

	loc, err := f.locations.CreateLocation(ctx, LocationInput{Name: "Bunch Bar", Pinpoint: "45.5,-122.6"})
	require.NoError(t, err)
	o, err := f.outings.CreateOuting(ctx, OutingInput{UserID: f.userID, LocationID: loc.ID, OutingDate: "2024-06-15"})
	require.NoError(t, err)

	_, err = f.outings.OutingWeather(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Equal(t, "No historical weather data available for this date", domain.Message(err))
}

func TestOutingServiceUpdateAndDelete(t *testing.T) {
	f := newOutingFixture(t)
	ctx := context.Background()

	o, err := f.outings.CreateOuting(ctx, OutingInput{UserID: f.userID, OutingDate: "2024-06-15"})
	require.NoError(t, err)

	updated, err := f.outings.UpdateOuting(ctx, o.ID, OutingInput{UserID: f.userID, OutingDate: "2024-06-14", WorthReturning: true, MVPLure: "Woolly Bugger"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-14", updated.OutingDate)
	assert.True(t, updated.WorthReturning)
	assert.Equal(t, "Woolly Bugger", updated.MVPLure)

	require.NoError(t, f.outings.DeleteOuting(ctx, o.ID))

	_, err = f.outings.GetOuting(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.outings.DeleteOuting(ctx, o.ID), domain.ErrNotFound)
}
