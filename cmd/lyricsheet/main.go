// Package main implements the lyricsheet CLI for classifying, encoding and
// fetching song sheets.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/sukalov/lyricsheet/internal/logger"
)

var version = "dev"

func main() {
	if err := logger.Init(nil); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lyricsheet",
		Short: "Classify and encode song sheet lines",
		Long: `lyricsheet marks every line of a song sheet as a section title, a chord
line, a non-break marker or plain lyrics, and converts title lines to and
from the marker encoding used for flat storage.`,
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newClassifyCmd(),
		newSectionsCmd(),
		newEncodeCmd(),
		newDecodeCmd(),
		newFetchCmd(),
		newAddCmd(),
		newImportCmd(),
		newShowCmd(),
	)
	return rootCmd
}
