package cmd

import (
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"geohash-kit/config"
)

var cfg *config.Config

func newRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:     "geohash",
		Short:   "Encode, decode and walk geohash cells",
		Long:    "geohash converts coordinates to geohash.org compatible cells and back, steps to adjacent cells and lists rings of neighbouring cells.",
		Version: version,
		// Usage is only useful for argument errors, which cobra reports itself.
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load()
			if err != nil {
				return eris.Wrap(err, "load config")
			}
			cfg = c

			if err := config.InitLogger(cfg.Log); err != nil {
				return eris.Wrap(err, "init logger")
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}
	root.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newAdjacentCmd(),
		newNeighborsCmd(),
		newNearbyCmd(),
	)
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute(version string) {
	if err := newRootCmd(version).Execute(); err != nil {
		os.Exit(1)
	}
}

func parseCoordinate(name, s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "parse %s %q", name, s)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
