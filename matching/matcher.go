package matching

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"geohash-kit/geoindex"
	"geohash-kit/models"
)

var ErrNoMatch = eris.New("matching: no matching place nearby")

// Available accepts places whose status is "available".
func Available(p models.Place) bool {
	return p.Status == "available"
}

// FindFirst returns the first place accepted by accept, searching the
// coordinate's cell and then one more ring per retry. A nil accept takes any
// place.
func FindFirst(s geoindex.Searcher, lat, lon float64, maxRetries int, accept func(models.Place) bool) (*models.Place, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}
	for layer := 0; layer < maxRetries; layer++ {
		places, err := s.Search(lat, lon, layer)
		if err != nil {
			return nil, eris.Wrap(err, "matching: search")
		}
		for _, p := range places {
			if accept == nil || accept(p) {
				zap.L().Debug("matching: found place", zap.String("id", p.ID), zap.Int("layer", layer))
				return &p, nil
			}
		}
	}
	return nil, eris.Wrapf(ErrNoMatch, "lat=%v lon=%v after %d retries", lat, lon, maxRetries)
}
