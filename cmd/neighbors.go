package cmd

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"geohash-kit/geohash"
)

func newNeighborsCmd() *cobra.Command {
	var layer int
	cmd := &cobra.Command{
		Use:   "neighbors HASH",
		Short: "List the ring of cells around a geohash",
		Long: `List the 8*LAYER cells at distance LAYER from HASH, one per line, clockwise
from the cell above.

$ geohash neighbors r3gx0
r3gx2
r3gx3
...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("layer") {
				layer = cfg.Neighbors.Layer
			}
			ring, err := geohash.GetNeighbors(args[0], layer)
			if err != nil {
				return eris.Wrapf(err, "neighbors %q", args[0])
			}
			for _, hash := range ring {
				fmt.Fprintln(cmd.OutOrStdout(), hash)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&layer, "layer", 1, "ring distance in cells")
	return cmd
}
