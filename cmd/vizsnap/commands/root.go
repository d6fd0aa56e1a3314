// Package commands implements the vizsnap inspector CLI.
package commands

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedviz/vizsnap"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "vizsnap",
	Short: "Inspect simulation snapshot (.viz.bin) files",
	Long: `vizsnap decodes the binary snapshot files produced by the GPU
scheduling simulator and dumps their contents for inspection. Compressed
files (.viz.bin.zst, .s2, .lz4) are detected by content and decompressed
transparently.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// Execute runs the CLI and exits nonzero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadFile loads a snapshot for a subcommand, with a consistent log line
// on failure.
func loadFile(path string) (*vizsnap.File, error) {
	f, err := vizsnap.LoadFile(path)
	if err != nil {
		logrus.WithField("path", path).WithError(err).Error("Failed to load snapshot")

		return nil, err
	}

	return f, nil
}
