package geoindex

import (
	"sync"

	"github.com/dhconnelly/rtreego"
	"github.com/rotisserie/eris"

	"geohash-kit/geohash"
	"geohash-kit/models"
)

// pointTolerance is the half size of the box stored for each place.
const pointTolerance = 1e-9

// spatialPlace wraps a place to satisfy the rtreego.Spatial interface.
// Coordinates are ordered (lat, lon).
type spatialPlace struct {
	place models.Place
	rect  rtreego.Rect
}

func (p *spatialPlace) Bounds() rtreego.Rect {
	return p.rect
}

// RTreeIndex keeps places in an R-tree and searches a square window of cells
// centred on the query.
type RTreeIndex struct {
	length int

	mu    sync.RWMutex
	tree  *rtreego.Rtree
	count int
}

func NewRTreeIndex(length int) (*RTreeIndex, error) {
	if length < 1 || length > geohash.MaxLength {
		return nil, eris.Wrapf(geohash.ErrInvalidLength, "%d", length)
	}
	return &RTreeIndex{length: length, tree: rtreego.NewTree(2, 25, 50)}, nil
}

func (ri *RTreeIndex) Insert(place models.Place) error {
	hash, err := geohash.EncodeLength(place.Latitude, place.Longitude, ri.length)
	if err != nil {
		return eris.Wrapf(err, "geoindex: insert %s", place.ID)
	}
	place.Geohash = hash
	point := rtreego.Point{place.Latitude, place.Longitude}

	ri.mu.Lock()
	defer ri.mu.Unlock()
	ri.tree.Insert(&spatialPlace{place: place, rect: point.ToRect(pointTolerance)})
	ri.count++
	return nil
}

func (ri *RTreeIndex) Search(lat, lon float64, layer int) ([]models.Place, error) {
	if _, err := cellHash(lat, lon, ri.length, layer); err != nil {
		return nil, err
	}
	halfLat, halfLon := window(ri.length, layer)
	rect, err := rtreego.NewRect(
		rtreego.Point{lat - halfLat, lon - halfLon},
		[]float64{2 * halfLat, 2 * halfLon},
	)
	if err != nil {
		return nil, eris.Wrap(err, "geoindex: search window")
	}

	ri.mu.RLock()
	defer ri.mu.RUnlock()
	var results []models.Place
	for _, item := range ri.tree.SearchIntersect(rect) {
		results = append(results, item.(*spatialPlace).place)
	}
	return results, nil
}

func (ri *RTreeIndex) Len() int {
	ri.mu.RLock()
	defer ri.mu.RUnlock()
	return ri.count
}
