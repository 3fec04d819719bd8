package cmd

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geohash-kit/geoindex"
	"geohash-kit/matching"
	"geohash-kit/models"
)

func newNearbyCmd() *cobra.Command {
	var (
		pointsPath string
		lat, lon   float64
		technique  string
		length     int
		retries    int
		available  bool
	)
	cmd := &cobra.Command{
		Use:   "nearby",
		Short: "Find places in the closest non-empty ring",
		Long: `Load places from a YAML file, index them in memory and print the places in
the query's cell, widening one ring per retry until something is found.

The file holds a top-level list:

places:
  - id: opera
    name: Sydney Opera House
    latitude: -33.856784
    longitude: 151.215297
    status: available`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("technique") {
				technique = cfg.Index.Technique
			}
			if !cmd.Flags().Changed("length") {
				length = cfg.Index.Length
			}
			if !cmd.Flags().Changed("retries") {
				retries = cfg.Index.MaxRetries
			}

			t, err := geoindex.ParseTechnique(technique)
			if err != nil {
				return err
			}
			index, err := geoindex.New(t, length)
			if err != nil {
				return eris.Wrap(err, "nearby: build index")
			}

			places, err := loadPlaces(pointsPath)
			if err != nil {
				return err
			}
			for _, p := range places {
				if err := index.Insert(p); err != nil {
					return eris.Wrap(err, "nearby")
				}
			}
			zap.L().Debug("nearby: indexed places",
				zap.Int("count", index.Len()),
				zap.String("technique", string(t)),
				zap.Int("length", length),
			)

			var found []models.Place
			if available {
				p, err := matching.FindFirst(index, lat, lon, retries, matching.Available)
				if err != nil {
					return eris.Wrap(err, "nearby")
				}
				found = []models.Place{*p}
			} else {
				found, err = geoindex.SearchNearbyWithRetries(index, lat, lon, retries)
				if err != nil {
					return eris.Wrap(err, "nearby")
				}
			}

			for _, p := range found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.Name, p.Geohash, formatFloat(p.Latitude), formatFloat(p.Longitude))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pointsPath, "points", "", "YAML file of places")
	cmd.Flags().Float64Var(&lat, "lat", 0, "query latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "query longitude")
	cmd.Flags().StringVar(&technique, "technique", string(geoindex.DefaultTechnique), "geohashing, rtree or quadtree")
	cmd.Flags().IntVar(&length, "length", 6, "geohash length of the index cells")
	cmd.Flags().IntVar(&retries, "retries", 5, "number of rings to try, starting with the query's own cell")
	cmd.Flags().BoolVar(&available, "available", false, "print only the first place with status available")
	_ = cmd.MarkFlagRequired("points")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")
	return cmd
}

func loadPlaces(path string) ([]models.Place, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "nearby: open %s", path)
	}
	defer f.Close()

	places, err := models.LoadPlaces(f)
	if err != nil {
		return nil, eris.Wrapf(err, "nearby: load %s", path)
	}
	return places, nil
}
