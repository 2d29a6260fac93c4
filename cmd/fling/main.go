// fling is a keyboard-driven application launcher for Linux terminals.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/flingdev/fling/internal/config"
	"github.com/flingdev/fling/internal/tui"
	"github.com/flingdev/fling/internal/tuilog"
)

// Global flags
var (
	configPath string
	logPath    string
)

var rootCmd = &cobra.Command{
	Use:   "fling",
	Short: "Launch installed applications from the terminal",
	Long: `fling indexes the applications installed on this machine, lets you pick
one with fuzzy search, and remembers what you launch so frequent picks
surface first.

Running without a subcommand opens the interactive picker.

Examples:
  fling                  # open the picker
  fling list             # print the catalog
  fling launch Firefox   # launch by exact display name
  fling history          # show aggregated launch history`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return tuilog.Init(logPath)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("the picker needs a terminal; try `fling list` instead")
		}
		return tui.Run(config.Load(configPath))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/fling/config.toml)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "write debug logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(historyCmd)
}

func main() {
	defer tuilog.Log.Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
