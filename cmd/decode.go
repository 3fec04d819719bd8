package cmd

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"geohash-kit/geohash"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode HASH...",
		Short: "Decode geohashes",
		Long: `Decode each geohash into the latitude and longitude of its cell, one per line.

$ geohash decode wtw3uyfjqw61
wtw3uyfjqw61	31.283131	121.500831`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, hash := range args {
				lat, lon, err := geohash.Decode(hash)
				if err != nil {
					return eris.Wrapf(err, "decode %q", hash)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", hash, formatFloat(lat), formatFloat(lon))
			}
			return nil
		},
	}
}
