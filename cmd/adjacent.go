package cmd

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"geohash-kit/geohash"
)

func newAdjacentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "adjacent HASH DIRECTION",
		Short: "Print the cell next to a geohash",
		Long: `Print the same-length cell next to HASH. DIRECTION is one of top, bottom,
left or right (north, south, west and east are accepted too).

$ geohash adjacent zzpgxc right
bp0581`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := geohash.ParseDirection(args[1])
			if err != nil {
				return err
			}
			hash, err := geohash.CalculateAdjacent(args[0], dir)
			if err != nil {
				return eris.Wrapf(err, "adjacent %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
