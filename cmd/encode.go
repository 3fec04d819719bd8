package cmd

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"geohash-kit/geohash"
)

func newEncodeCmd() *cobra.Command {
	var (
		precision float64
		length    int
	)
	cmd := &cobra.Command{
		Use:   "encode LAT LON",
		Short: "Encode a coordinate",
		Long: `Encode a latitude and longitude into a geohash.

Without --precision or --length the cell is sized to the number of decimals in
the input. Separate negative values with --:

$ geohash encode -- -33.8688 151.2093
r3gx2f77b`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lat, err := parseCoordinate("latitude", args[0])
			if err != nil {
				return err
			}
			lon, err := parseCoordinate("longitude", args[1])
			if err != nil {
				return err
			}

			var hash string
			switch {
			case cmd.Flags().Changed("length"):
				hash, err = geohash.EncodeLength(lat, lon, length)
			case cmd.Flags().Changed("precision"):
				hash, err = geohash.EncodeWithPrecision(lat, lon, precision)
			default:
				hash, err = geohash.EncodeWithPrecision(lat, lon, cfg.Encode.Precision)
			}
			if err != nil {
				return eris.Wrap(err, "encode")
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
	cmd.Flags().Float64Var(&precision, "precision", 0, "maximum cell size in degrees (0 derives it from the input)")
	cmd.Flags().IntVar(&length, "length", 0, "exact number of characters")
	cmd.MarkFlagsMutuallyExclusive("precision", "length")
	return cmd
}
