package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:   "pubsub-cli",
		Short: "In-process pub/sub command line interface",
		Long: `pubsub-cli exercises the pubsub library from the command line.
It can run a local publish/subscribe demo and test glob patterns against
channel names.`,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newDemoCommand())
	rootCmd.AddCommand(newMatchCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
