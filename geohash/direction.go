package geohash

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Direction is one of the four grid directions a cell can be stepped in.
type Direction int

const (
	Top Direction = iota
	Bottom
	Left
	Right
)

var directionNames = [...]string{
	Top:    "top",
	Bottom: "bottom",
	Left:   "left",
	Right:  "right",
}

func (d Direction) valid() bool {
	return d >= Top && d <= Right
}

func (d Direction) String() string {
	if !d.valid() {
		return "Direction(" + strconv.Itoa(int(d)) + ")"
	}
	return directionNames[d]
}

// Opposite returns the direction that undoes a step in d.
func (d Direction) Opposite() Direction {
	switch d {
	case Top:
		return Bottom
	case Bottom:
		return Top
	case Left:
		return Right
	case Right:
		return Left
	}
	return d
}

// ParseDirection accepts the direction names, case-insensitively, and the
// compass aliases north, south, west and east.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "north", "n":
		return Top, nil
	case "bottom", "south", "s":
		return Bottom, nil
	case "left", "west", "w":
		return Left, nil
	case "right", "east", "e":
		return Right, nil
	}
	return 0, eris.Wrapf(ErrInvalidDirection, "%q", s)
}
