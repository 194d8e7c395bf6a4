// Command racetrack learns to drive a car around a racetrack with
// off-policy Monte Carlo control and evaluates the learned policy.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// Exit codes
const (
	exitSuccess = 0
	exitError   = 1
)

var (
	configFile string
	verbose    bool

	rootCmd = &cobra.Command{
		Use:   "racetrack",
		Short: "Off-policy Monte Carlo control on the racetrack task",
		Long: `racetrack learns a greedy driving policy for a discrete racetrack
with off-policy Monte Carlo control using weighted importance sampling.
Episodes are generated with a uniform random behaviour policy.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(newLogger(verbose))
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"YAML experiment configuration (defaults are used if empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")

	rootCmd.AddCommand(trainCmd, evalCmd)
}

// newLogger returns a text logger writing to stderr
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitError)
	}
	os.Exit(exitSuccess)
}
