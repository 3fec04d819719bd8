// Package geohash encodes coordinates into geohash.org compatible base32
// cells, decodes them back, and walks adjacent cells and neighbour rings.
//
// All functions are pure and safe for concurrent use.
package geohash

import (
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// MaxLength caps the encoder output. Past it a float64 interval stops
// narrowing, so a tighter threshold could never be reached.
const MaxLength = 24

// Encode encodes a coordinate with a precision derived from the number of
// decimal digits in the shortest text form of lat and lon.
func Encode(lat, lon float64) (string, error) {
	return EncodeWithPrecision(lat, lon, 0)
}

// EncodeWithPrecision encodes a coordinate, adding characters until the cell
// is smaller than precision degrees on both axes. A zero precision is derived
// from the inputs as in Encode.
func EncodeWithPrecision(lat, lon, precision float64) (string, error) {
	if !finite(lat) || !finite(lon) {
		return "", eris.Wrapf(ErrInvalidCoordinate, "lat=%v lon=%v", lat, lon)
	}
	if math.IsNaN(precision) || precision < 0 {
		return "", eris.Wrapf(ErrInvalidPrecision, "%v", precision)
	}
	if precision == 0 {
		precision = derivePrecision(lat, lon)
	}
	return encode(lat, lon, func(n int, cellErr float64) bool {
		return n > 0 && (cellErr < precision || n >= MaxLength)
	}), nil
}

// EncodeLength encodes a coordinate into exactly length characters.
func EncodeLength(lat, lon float64, length int) (string, error) {
	if !finite(lat) || !finite(lon) {
		return "", eris.Wrapf(ErrInvalidCoordinate, "lat=%v lon=%v", lat, lon)
	}
	if length < 1 || length > MaxLength {
		return "", eris.Wrapf(ErrInvalidLength, "%d", length)
	}
	return encode(lat, lon, func(n int, _ float64) bool {
		return n >= length
	}), nil
}

// encode bisects longitude and latitude alternately, starting with
// longitude, and emits a character every 5 bits until done reports true for
// the emitted length and the current cell error.
func encode(lat, lon float64, done func(n int, cellErr float64) bool) string {
	minLat, maxLat := -90.0, 90.0
	minLon, maxLon := -180.0, 180.0
	cellErr := 180.0

	var hash strings.Builder
	char, bit := 0, 0
	evenBit := true
	for !done(hash.Len(), cellErr) {
		if evenBit {
			mid := (minLon + maxLon) / 2
			if lon > mid {
				char |= bits[bit]
				minLon = mid
			} else {
				maxLon = mid
			}
		} else {
			mid := (minLat + maxLat) / 2
			if lat > mid {
				char |= bits[bit]
				minLat = mid
			} else {
				maxLat = mid
			}
		}
		evenBit = !evenBit

		if bit < 4 {
			bit++
			continue
		}
		hash.WriteByte(alphabet[char])
		cellErr = math.Max(maxLon-minLon, maxLat-minLat)
		bit, char = 0, 0
	}
	return hash.String()
}

// derivePrecision returns half a unit in the last decimal place of the more
// precise of lat and lon.
func derivePrecision(lat, lon float64) float64 {
	digits := max(fractionDigits(lat), fractionDigits(lon), 0)
	return math.Pow(10, -float64(digits)) / 2
}

func fractionDigits(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}

// Decode returns the centre of the cell, rounded to the number of decimals the
// cell size supports.
func Decode(hash string) (lat, lon float64, err error) {
	if hash == "" {
		return 0, 0, eris.Wrap(ErrEmptyInput, "decode")
	}
	hash = lowerASCII(hash)

	minLat, maxLat := -90.0, 90.0
	minLon, maxLon := -180.0, 180.0
	latErr, lonErr := 90.0, 180.0

	for i := 0; i < len(hash); i++ {
		v, err := charValue(hash, i)
		if err != nil {
			return 0, 0, err
		}
		// Even positions start on longitude, odd positions on latitude.
		lonBit := i%2 == 0
		for _, mask := range bits {
			if lonBit {
				minLon, maxLon = bisect(minLon, maxLon, v&mask != 0)
			} else {
				minLat, maxLat = bisect(minLat, maxLat, v&mask != 0)
			}
			lonBit = !lonBit
		}
		if i%2 == 0 {
			latErr /= 4
			lonErr /= 8
		} else {
			latErr /= 8
			lonErr /= 4
		}
	}

	lat = roundToError((minLat+maxLat)/2, latErr)
	lon = roundToError((minLon+maxLon)/2, lonErr)
	return lat, lon, nil
}

// Validate reports whether hash is a non-empty string of alphabet characters.
func Validate(hash string) error {
	if hash == "" {
		return eris.Wrap(ErrEmptyInput, "validate")
	}
	return checkAlphabet(lowerASCII(hash))
}

// CellSize returns the height and width in degrees of a cell of the given
// length.
func CellSize(length int) (latHeight, lonWidth float64) {
	if length < 0 {
		length = 0
	}
	total := 5 * length
	lonBits := (total + 1) / 2
	latBits := total / 2
	return math.Ldexp(180, -latBits), math.Ldexp(360, -lonBits)
}

func bisect(lo, hi float64, upper bool) (float64, float64) {
	mid := (lo + hi) / 2
	if upper {
		return mid, hi
	}
	return lo, mid
}

// maxDecimals is the most decimal places a coordinate below 1000 keeps in a
// float64.
const maxDecimals = 15

// roundToError rounds v half away from zero to max(1, round(-log10(e)))-1
// decimal places. Past maxDecimals v is returned as is.
func roundToError(v, e float64) float64 {
	places := math.Max(1, math.Round(-math.Log10(e))) - 1
	if places > maxDecimals {
		return v
	}
	scale := math.Pow(10, places)
	return math.Round(v*scale) / scale
}

func charValue(hash string, i int) (int, error) {
	v := strings.IndexByte(alphabet, hash[i])
	if v < 0 {
		return 0, eris.Wrapf(ErrInvalidCharacter, "%q at position %d", hash[i], i)
	}
	return v, nil
}

// lowerASCII folds A-Z only. strings.ToLower would also map runes such as
// U+212A KELVIN SIGN onto alphabet letters.
func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}

func checkAlphabet(hash string) error {
	for i := 0; i < len(hash); i++ {
		if _, err := charValue(hash, i); err != nil {
			return err
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
