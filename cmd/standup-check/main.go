// Copyright 2026 The Standupd Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/standupd/standupd/lib/runner"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		count      int
		nowFlag    string
	)

	flag.StringVar(&configPath, "config", "", "path to the schedule config YAML (required)")
	flag.IntVar(&count, "count", 3, "number of upcoming run times to print")
	flag.StringVar(&nowFlag, "now", "", "base time in RFC3339; defaults to the current time")
	flag.Parse()

	if configPath == "" {
		return fmt.Errorf("--config is required")
	}
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	config, err := runner.LoadScheduleConfig(configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid schedule config: %w", err)
	}

	now := time.Now()
	if nowFlag != "" {
		now, err = time.Parse(time.RFC3339, nowFlag)
		if err != nil {
			return fmt.Errorf("invalid --now value %q: %w", nowFlag, err)
		}
	}

	if !config.Enabled {
		logger.Warn("schedule is disabled; run times shown are what an enabled schedule would produce")
	}

	next := now
	for i := 0; i < count; i++ {
		next, err = config.NextRun(next)
		if err != nil {
			return err
		}
		fmt.Println(next.Format(time.RFC3339))
	}
	return nil
}
