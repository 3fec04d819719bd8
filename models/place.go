package models

import (
	"io"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Place is a named point indexed by its geohash cell.
type Place struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Geohash   string  `json:"geohash,omitempty" yaml:"geohash,omitempty"`
	Status    string  `json:"status,omitempty" yaml:"status,omitempty"` // e.g. "available"
}

// PlacesFile is the on-disk layout read by LoadPlaces.
type PlacesFile struct {
	Places []Place `yaml:"places"`
}

// LoadPlaces decodes a YAML document with a top-level places list.
func LoadPlaces(r io.Reader) ([]Place, error) {
	var f PlacesFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, eris.Wrap(err, "models: decode places")
	}
	for i, p := range f.Places {
		if p.ID == "" {
			return nil, eris.Errorf("models: place %d has no id", i)
		}
	}
	return f.Places, nil
}
