package geohash

import (
	"strings"

	"github.com/rotisserie/eris"
)

// CalculateAdjacent returns the same-length cell next to hash in direction
// dir. The input is case-insensitive; the result is lowercase. The empty hash
// is its own neighbour.
func CalculateAdjacent(hash string, dir Direction) (string, error) {
	if !dir.valid() {
		return "", eris.Wrapf(ErrInvalidDirection, "%d", int(dir))
	}
	hash = lowerASCII(hash)
	if err := checkAlphabet(hash); err != nil {
		return "", err
	}
	return adjacent(hash, dir), nil
}

// adjacent expects a validated, lowercase hash.
func adjacent(hash string, dir Direction) string {
	if hash == "" {
		return ""
	}
	last := hash[len(hash)-1]
	base := hash[:len(hash)-1]
	p := parityOf(len(hash))

	// Carry into the parent before substituting the last character.
	if base != "" && strings.IndexByte(borders[dir][p], last) >= 0 {
		base = adjacent(base, dir)
	}
	return base + string(alphabet[strings.IndexByte(neighbors[dir][p], last)])
}

// GetNeighbors returns the 8*layer cells at Chebyshev distance layer from
// hash, clockwise from the cell layer steps above it.
func GetNeighbors(hash string, layer int) ([]string, error) {
	if layer < 1 {
		return nil, eris.Wrapf(ErrInvalidLayer, "%d", layer)
	}
	if err := Validate(hash); err != nil {
		return nil, err
	}
	current := lowerASCII(hash)

	for i := 0; i < layer; i++ {
		current = adjacent(current, Top)
	}
	ring := make([]string, 0, 8*layer)
	ring = append(ring, current)

	walk := func(dir Direction, steps int) {
		for i := 0; i < steps; i++ {
			current = adjacent(current, dir)
			ring = append(ring, current)
		}
	}
	walk(Right, layer)
	walk(Bottom, 2*layer)
	walk(Left, 2*layer)
	walk(Top, 2*layer)
	walk(Right, layer-1)

	return ring, nil
}
