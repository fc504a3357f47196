package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsightStoreFishCaught(t *testing.T) {
	d := openTestDB(t)
	user := seedUser(t, d)
	bar := seedLocation(t, d, "Bunch Bar")

	o1 := seedOuting(t, d, user.ID, &bar.ID, "2024-06-15")
	o2 := seedOuting(t, d, user.ID, &bar.ID, "2024-06-16")
	unlocated := seedOuting(t, d, user.ID, nil, "2024-06-17")
	seedCatch(t, d, o1.ID, "Rainbow Trout", 2)
	seedCatch(t, d, o2.ID, "Rainbow Trout", 3)
	seedCatch(t, d, o2.ID, "Cutthroat", 1)
	seedCatch(t, d, unlocated.ID, "Rainbow Trout", 10)

	rows, err := NewInsightStore(d).FishCaught(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Cutthroat", rows[0].Species)
	assert.Equal(t, int64(1), rows[0].TotalCaught)
	assert.Equal(t, "Rainbow Trout", rows[1].Species)
	assert.Equal(t, int64(5), rows[1].TotalCaught)
	assert.Equal(t, "Bunch Bar", rows[1].LocationName)
}

func TestInsightStoreBestSpots(t *testing.T) {
	d := openTestDB(t)
	user := seedUser(t, d)
	bar := seedLocation(t, d, "Bunch Bar")
	riffle := seedLocation(t, d, "Long Riffle")

	seedCatch(t, d, seedOuting(t, d, user.ID, &bar.ID, "2024-06-15").ID, "Rainbow Trout", 2)
	seedCatch(t, d, seedOuting(t, d, user.ID, &riffle.ID, "2024-06-16").ID, "Rainbow Trout", 7)
	seedCatch(t, d, seedOuting(t, d, user.ID, &riffle.ID, "2024-06-17").ID, "Carp", 20)

	spots, err := NewInsightStore(d).BestSpots(context.Background(), "rainbow trout")
	require.NoError(t, err)
	require.Len(t, spots, 2)
	assert.Equal(t, "Long Riffle", spots[0].LocationName)
	assert.Equal(t, int64(7), spots[0].TotalCaught)
	assert.Equal(t, "Bunch Bar", spots[1].LocationName)

	spots, err = NewInsightStore(d).BestSpots(context.Background(), "Sturgeon")
	require.NoError(t, err)
	assert.Empty(t, spots)
}
