/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/carverauto/carbonscope/pkg/config"
	"github.com/carverauto/carbonscope/pkg/core"
	"github.com/carverauto/carbonscope/pkg/db"
	"github.com/carverauto/carbonscope/pkg/geo"
	"github.com/carverauto/carbonscope/pkg/lifecycle"
	"github.com/carverauto/carbonscope/pkg/logger"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/carbonscope/core.json", "Path to core config file")
	flag.Parse()

	ctx := context.Background()

	cfgLoader := config.NewConfig(nil)

	var cfg core.Config

	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		return fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	logConfig := cfg.Logging
	if logConfig == nil {
		logConfig = &logger.Config{
			Level:  "info",
			Output: "stdout",
		}
	}

	coreLogger, err := lifecycle.CreateComponentLogger(ctx, "core", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := db.New(ctx, cfg.Database, coreLogger)
	if err != nil {
		return err
	}
	defer store.Close()

	var locator geo.Locator = geo.Disabled{}

	if cfg.GeoIPDatabase != "" {
		locator, err = geo.Open(cfg.GeoIPDatabase)
		if err != nil {
			return fmt.Errorf("failed to open geoip database: %w", err)
		}

		coreLogger.Info().Str("path", cfg.GeoIPDatabase).Msg("GeoIP enrichment enabled")
	}

	server, err := core.NewServer(&cfg, store, locator, coreLogger)
	if err != nil {
		return err
	}

	return lifecycle.Run(ctx, &lifecycle.RunOptions{
		ServiceName: "core",
		Service:     server,
		Logger:      coreLogger,
	})
}
