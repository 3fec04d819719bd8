package geoindex

import (
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geohash-kit/geohash"
	"geohash-kit/models"
)

var sydney = []models.Place{
	{ID: "opera", Name: "Sydney Opera House", Latitude: -33.856784, Longitude: 151.215297, Status: "available"},
	{ID: "bridge", Name: "Harbour Bridge", Latitude: -33.852306, Longitude: 151.210787},
	{ID: "bondi", Name: "Bondi Beach", Latitude: -33.890842, Longitude: 151.274292, Status: "available"},
	{ID: "paris", Name: "Notre-Dame", Latitude: 48.852968, Longitude: 2.349902},
}

var techniques = []GeoIndexingTechnique{GeohashingTechnique, RTreeTechnique, QuadtreeTechnique}

func newLoaded(t *testing.T, technique GeoIndexingTechnique, length int) Searcher {
	t.Helper()
	s, err := New(technique, length)
	require.NoError(t, err)
	for _, p := range sydney {
		require.NoError(t, s.Insert(p))
	}
	return s
}

func ids(places []models.Place) []string {
	out := make([]string, 0, len(places))
	for _, p := range places {
		out = append(out, p.ID)
	}
	return out
}

func TestParseTechnique(t *testing.T) {
	for in, want := range map[string]GeoIndexingTechnique{
		"":           DefaultTechnique,
		"geohashing": GeohashingTechnique,
		"RTree":      RTreeTechnique,
		" quadtree ": QuadtreeTechnique,
	} {
		got, err := ParseTechnique(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseTechnique("kdtree")
	assert.ErrorIs(t, err, ErrUnsupportedTechnique)
}

func TestNew_Errors(t *testing.T) {
	_, err := New("kdtree", 6)
	assert.ErrorIs(t, err, ErrUnsupportedTechnique)

	for _, technique := range techniques {
		_, err := New(technique, 0)
		assert.ErrorIs(t, err, geohash.ErrInvalidLength, string(technique))

		_, err = New(technique, geohash.MaxLength+1)
		assert.ErrorIs(t, err, geohash.ErrInvalidLength, string(technique))
	}
}

func TestNew_DefaultTechnique(t *testing.T) {
	s, err := New("", 5)
	require.NoError(t, err)
	assert.IsType(t, &CellIndex{}, s)
}

func TestSearch_OwnCell(t *testing.T) {
	for _, technique := range techniques {
		t.Run(string(technique), func(t *testing.T) {
			s := newLoaded(t, technique, 6)
			assert.Equal(t, len(sydney), s.Len())

			for _, p := range sydney {
				found, err := s.Search(p.Latitude, p.Longitude, 0)
				require.NoError(t, err)
				assert.Contains(t, ids(found), p.ID)
			}
		})
	}
}

func TestSearch_StoresGeohash(t *testing.T) {
	for _, technique := range techniques {
		s := newLoaded(t, technique, 7)
		found, err := s.Search(sydney[0].Latitude, sydney[0].Longitude, 0)
		require.NoError(t, err)
		require.NotEmpty(t, found)

		want, err := geohash.EncodeLength(sydney[0].Latitude, sydney[0].Longitude, 7)
		require.NoError(t, err)
		for _, p := range found {
			if p.ID == "opera" {
				assert.Equal(t, want, p.Geohash, string(technique))
			}
		}
	}
}

func TestSearch_WiderLayersNeverShrink(t *testing.T) {
	for _, technique := range techniques {
		t.Run(string(technique), func(t *testing.T) {
			s := newLoaded(t, technique, 6)
			prev := 0
			for layer := 0; layer <= 8; layer++ {
				found, err := s.Search(-33.856784, 151.215297, layer)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, len(found), prev, "layer %d", layer)
				assert.NotContains(t, ids(found), "paris")
				prev = len(found)
			}
		})
	}
}

func TestCellIndex_SearchStaysWithinRings(t *testing.T) {
	ci, err := NewCellIndex(6)
	require.NoError(t, err)
	for _, p := range sydney {
		require.NoError(t, ci.Insert(p))
	}
	assert.Equal(t, 4, ci.Len())

	center, err := geohash.EncodeLength(-33.856784, 151.215297, 6)
	require.NoError(t, err)
	ring, err := geohash.GetNeighbors(center, 1)
	require.NoError(t, err)
	allowed := map[string]bool{center: true}
	for _, h := range ring {
		allowed[h] = true
	}

	found, err := ci.Search(-33.856784, 151.215297, 1)
	require.NoError(t, err)
	for _, p := range found {
		assert.True(t, allowed[p.Geohash], "%s in %s", p.ID, p.Geohash)
	}
}

func TestCellIndex_Cells(t *testing.T) {
	ci, err := NewCellIndex(1)
	require.NoError(t, err)
	for _, p := range sydney {
		require.NoError(t, ci.Insert(p))
	}
	// Everything in Sydney shares the level 1 cell "r".
	assert.Equal(t, 2, ci.Cells())

	found, err := ci.Search(-33.8, 151.2, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"opera", "bridge", "bondi"}, ids(found))
}

func TestSearchNearbyWithRetries(t *testing.T) {
	for _, technique := range techniques {
		t.Run(string(technique), func(t *testing.T) {
			s := newLoaded(t, technique, 6)

			found, err := SearchNearbyWithRetries(s, -33.856784, 151.215297, 3)
			require.NoError(t, err)
			assert.Contains(t, ids(found), "opera")

			_, err = SearchNearbyWithRetries(s, -40, -120, 3)
			assert.ErrorIs(t, err, ErrNoResults)
		})
	}
}

func TestSearchNearbyWithRetries_Widens(t *testing.T) {
	s := newLoaded(t, GeohashingTechnique, 5)
	// Half way between the opera house and Bondi, so neither shares the cell.
	own, err := s.Search(-33.873, 151.245, 0)
	require.NoError(t, err)
	assert.Empty(t, own)

	found, err := SearchNearbyWithRetries(s, -33.873, 151.245, 10)
	require.NoError(t, err)
	assert.Contains(t, ids(found), "opera")
	assert.NotContains(t, ids(found), "paris")
}

func TestSearch_Errors(t *testing.T) {
	for _, technique := range techniques {
		s := newLoaded(t, technique, 6)

		_, err := s.Search(-33.8, 151.2, -1)
		assert.ErrorIs(t, err, ErrInvalidLayer, string(technique))

		_, err = s.Search(math.NaN(), 151.2, 0)
		assert.ErrorIs(t, err, geohash.ErrInvalidCoordinate, string(technique))

		err = s.Insert(models.Place{ID: "nan", Latitude: math.NaN()})
		assert.ErrorIs(t, err, geohash.ErrInvalidCoordinate, string(technique))
		assert.Equal(t, len(sydney), s.Len())
	}
}

func TestQuadtree_OutsideGlobe(t *testing.T) {
	qt, err := NewQuadtree(6)
	require.NoError(t, err)
	assert.Error(t, qt.Insert(models.Place{ID: "off", Latitude: 95, Longitude: 10}))
	assert.Equal(t, 0, qt.Len())
}

func TestQuadtree_ManyPointsSameSpot(t *testing.T) {
	qt, err := NewQuadtree(8)
	require.NoError(t, err)
	for i := 0; i < 200; i++ {
		require.NoError(t, qt.Insert(models.Place{ID: fmt.Sprint(i), Latitude: 12.5, Longitude: 45.25}))
	}
	found, err := qt.Search(12.5, 45.25, 0)
	require.NoError(t, err)
	assert.Len(t, found, 200)
}

func TestConcurrentInsertAndSearch(t *testing.T) {
	for _, technique := range techniques {
		t.Run(string(technique), func(t *testing.T) {
			s, err := New(technique, 6)
			require.NoError(t, err)

			var wg sync.WaitGroup
			for w := 0; w < 8; w++ {
				wg.Add(1)
				go func(w int) {
					defer wg.Done()
					for i := 0; i < 50; i++ {
						p := models.Place{
							ID:        fmt.Sprintf("%d-%d", w, i),
							Latitude:  -33.85 + float64(i)*0.001,
							Longitude: 151.2 + float64(w)*0.001,
						}
						assert.NoError(t, s.Insert(p))
						_, err := s.Search(p.Latitude, p.Longitude, 1)
						assert.NoError(t, err)
					}
				}(w)
			}
			wg.Wait()
			assert.Equal(t, 400, s.Len())
		})
	}
}
