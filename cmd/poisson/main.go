// Command poisson pastes a region of one image into another with
// gradient-domain blending.
package main

import (
	"log/slog"
	"os"

	"github.com/setanarut/poisson"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "poisson",
		Short:         "Seamless cloning of image regions",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			poisson.SetLogger(logger)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log solver diagnostics")
	root.AddCommand(newPasteCmd(), newMatteCmd(), newPreviewCmd())
	return root
}
