package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geohash-kit/geohash"
	"geohash-kit/geoindex"
	"geohash-kit/models"
)

func loaded(t *testing.T) geoindex.Searcher {
	t.Helper()
	s, err := geoindex.New(geoindex.GeohashingTechnique, 6)
	require.NoError(t, err)
	for _, p := range []models.Place{
		{ID: "busy", Latitude: -33.856784, Longitude: 151.215297, Status: "on_trip"},
		{ID: "free", Latitude: -33.852306, Longitude: 151.210787, Status: "available"},
	} {
		require.NoError(t, s.Insert(p))
	}
	return s
}

func TestFindFirst_Available(t *testing.T) {
	p, err := FindFirst(loaded(t), -33.856784, 151.215297, 5, Available)
	require.NoError(t, err)
	assert.Equal(t, "free", p.ID)
}

func TestFindFirst_AcceptAll(t *testing.T) {
	p, err := FindFirst(loaded(t), -33.856784, 151.215297, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "busy", p.ID)
}

func TestFindFirst_NoMatch(t *testing.T) {
	_, err := FindFirst(loaded(t), 10.5, 10.5, 3, Available)
	assert.ErrorIs(t, err, ErrNoMatch)

	_, err = FindFirst(loaded(t), -33.856784, 151.215297, 5, func(models.Place) bool { return false })
	assert.ErrorIs(t, err, ErrNoMatch)
}

func TestFindFirst_SearchError(t *testing.T) {
	_, err := FindFirst(loaded(t), math.NaN(), 151.2, 1, nil)
	assert.ErrorIs(t, err, geohash.ErrInvalidCoordinate)
}
