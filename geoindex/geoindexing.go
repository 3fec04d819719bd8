// Package geoindex buckets places in memory so that the candidates around a
// coordinate can be found ring by ring.
package geoindex

import (
	"math"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"geohash-kit/geohash"
	"geohash-kit/models"
)

type GeoIndexingTechnique string

const (
	GeohashingTechnique GeoIndexingTechnique = "geohashing"
	RTreeTechnique      GeoIndexingTechnique = "rtree"
	QuadtreeTechnique   GeoIndexingTechnique = "quadtree"
)

// DefaultTechnique is used when no technique is named.
const DefaultTechnique = GeohashingTechnique

var (
	ErrUnsupportedTechnique = eris.New("geoindex: unsupported geo-indexing technique")
	ErrNoResults            = eris.New("geoindex: no nearby places found")
	ErrInvalidLayer         = eris.New("geoindex: invalid layer")
)

// Searcher stores places and returns those around a coordinate.
type Searcher interface {
	// Insert adds a place. The stored copy carries the geohash of its cell.
	Insert(place models.Place) error
	// Search returns the places within layer cells of the coordinate's cell;
	// layer 0 is the cell itself.
	Search(lat, lon float64, layer int) ([]models.Place, error)
	// Len returns the number of stored places.
	Len() int
}

// ParseTechnique maps a technique name onto a GeoIndexingTechnique. The empty
// string selects DefaultTechnique.
func ParseTechnique(s string) (GeoIndexingTechnique, error) {
	switch t := GeoIndexingTechnique(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return DefaultTechnique, nil
	case GeohashingTechnique, RTreeTechnique, QuadtreeTechnique:
		return t, nil
	}
	return "", eris.Wrapf(ErrUnsupportedTechnique, "%q", s)
}

// New builds an empty Searcher whose cells are geohashes of the given length.
func New(technique GeoIndexingTechnique, length int) (Searcher, error) {
	if technique == "" {
		technique = DefaultTechnique
	}
	switch technique {
	case GeohashingTechnique:
		return NewCellIndex(length)
	case RTreeTechnique:
		return NewRTreeIndex(length)
	case QuadtreeTechnique:
		return NewQuadtree(length)
	}
	return nil, eris.Wrapf(ErrUnsupportedTechnique, "%q", string(technique))
}

// SearchNearbyWithRetries searches the coordinate's cell, then widens the
// search by one ring per retry until something is found.
func SearchNearbyWithRetries(s Searcher, lat, lon float64, maxRetries int) ([]models.Place, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}
	for layer := 0; layer < maxRetries; layer++ {
		results, err := s.Search(lat, lon, layer)
		if err != nil {
			return nil, eris.Wrap(err, "geoindex: search nearby")
		}
		if len(results) > 0 {
			return results, nil
		}
		zap.L().Debug("geoindex: widening search",
			zap.Float64("lat", lat),
			zap.Float64("lon", lon),
			zap.Int("layer", layer+1),
		)
	}
	return nil, eris.Wrapf(ErrNoResults, "after %d retries", maxRetries)
}

// cellHash validates a query and returns the geohash of its cell.
func cellHash(lat, lon float64, length, layer int) (string, error) {
	if layer < 0 {
		return "", eris.Wrapf(ErrInvalidLayer, "%d", layer)
	}
	return geohash.EncodeLength(lat, lon, length)
}

// window returns the half height and half width in degrees of the square
// spanning 2*layer+1 cells.
func window(length, layer int) (halfLat, halfLon float64) {
	h, w := geohash.CellSize(length)
	n := float64(2*layer + 1)
	return math.Min(h*n/2, 90), math.Min(w*n/2, 180)
}
