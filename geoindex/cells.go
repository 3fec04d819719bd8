package geoindex

import (
	"sync"

	"github.com/rotisserie/eris"

	"geohash-kit/geohash"
	"geohash-kit/models"
)

// CellIndex buckets places by the geohash of their cell.
type CellIndex struct {
	length int

	mu    sync.RWMutex
	cells map[string][]models.Place
	count int
}

// NewCellIndex returns an empty index over cells of the given length.
func NewCellIndex(length int) (*CellIndex, error) {
	if length < 1 || length > geohash.MaxLength {
		return nil, eris.Wrapf(geohash.ErrInvalidLength, "%d", length)
	}
	return &CellIndex{length: length, cells: make(map[string][]models.Place)}, nil
}

func (ci *CellIndex) Insert(place models.Place) error {
	hash, err := geohash.EncodeLength(place.Latitude, place.Longitude, ci.length)
	if err != nil {
		return eris.Wrapf(err, "geoindex: insert %s", place.ID)
	}
	place.Geohash = hash

	ci.mu.Lock()
	defer ci.mu.Unlock()
	ci.cells[hash] = append(ci.cells[hash], place)
	ci.count++
	return nil
}

// Search visits the centre cell and then each ring out to layer.
func (ci *CellIndex) Search(lat, lon float64, layer int) ([]models.Place, error) {
	center, err := cellHash(lat, lon, ci.length, layer)
	if err != nil {
		return nil, err
	}

	hashes := []string{center}
	for l := 1; l <= layer; l++ {
		ring, err := geohash.GetNeighbors(center, l)
		if err != nil {
			return nil, err
		}
		hashes = append(hashes, ring...)
	}

	ci.mu.RLock()
	defer ci.mu.RUnlock()
	var results []models.Place
	seen := make(map[string]bool, len(hashes))
	for _, h := range hashes {
		// Rings wrap near the poles and can revisit a cell.
		if seen[h] {
			continue
		}
		seen[h] = true
		results = append(results, ci.cells[h]...)
	}
	return results, nil
}

func (ci *CellIndex) Len() int {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return ci.count
}

// Cells returns the number of non-empty cells.
func (ci *CellIndex) Cells() int {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return len(ci.cells)
}
