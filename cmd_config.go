package main

import (
	"log/slog"

	"github.com/samuelfneumann/racetrack/experiment"
)

// loadConfig loads the experiment configuration named by the --config
// flag, or the default configuration if no file was given
func loadConfig() (experiment.Config, error) {
	if configFile == "" {
		slog.Debug("using default configuration")
		return experiment.DefaultConfig(), nil
	}

	slog.Debug("loading configuration", "file", configFile)
	return experiment.LoadConfig(configFile)
}
