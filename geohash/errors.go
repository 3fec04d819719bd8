package geohash

import "github.com/rotisserie/eris"

var (
	ErrInvalidCharacter  = eris.New("geohash: invalid character")
	ErrInvalidDirection  = eris.New("geohash: invalid direction")
	ErrInvalidCoordinate = eris.New("geohash: invalid coordinate")
	ErrInvalidPrecision  = eris.New("geohash: invalid precision")
	ErrInvalidLength     = eris.New("geohash: invalid length")
	ErrInvalidLayer      = eris.New("geohash: invalid layer")
	ErrEmptyInput        = eris.New("geohash: empty input")
)
