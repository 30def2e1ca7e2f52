package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"znkr.io/doxymd/generator/config"
	"znkr.io/doxymd/generator/site"
)

// setup reads the configuration, applies the command line flags and creates the logger.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	load := config.LoadOrDefault
	if cmd.Flags().Changed("config") {
		load = config.Load
	}
	cfg, err := load(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %v", err)
	}

	if cmd.Flags().Changed("input") {
		cfg.Input = input
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = output
	}
	if keepGoing {
		cfg.KeepGoing = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %v", err)
	}

	level, _ := cfg.Level()
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, log, nil
}

func loadSite(cfg *config.Config, log *slog.Logger) (*site.Site, error) {
	start := time.Now()
	s, err := site.Load(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("loading site: %v", err)
	}
	log.Info("site loaded", "input", cfg.Input, "duration", time.Since(start))
	return s, nil
}
