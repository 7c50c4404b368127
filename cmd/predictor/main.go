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
	"github.com/carverauto/carbonscope/pkg/db"
	"github.com/carverauto/carbonscope/pkg/lifecycle"
	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/predictor"
)

var errFailedToLoadConfig = fmt.Errorf("failed to load config")

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	configPath := flag.String("config", "/etc/carbonscope/predictor.json", "Path to predictor config file")
	trainOnly := flag.Bool("train", false, "Train the model from the configured CSV sources and exit")
	flag.Parse()

	ctx := context.Background()

	cfgLoader := config.NewConfig(nil)

	var cfg predictor.Config

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

	predictorLogger, err := lifecycle.CreateComponentLogger(ctx, "predictor", logConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// The database is optional; without one the predictor trains from CSV
	// exports alone.
	var store db.Service

	if cfg.Database != nil {
		store, err = db.New(ctx, cfg.Database, predictorLogger)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	server, err := predictor.NewServer(&cfg, store, predictorLogger)
	if err != nil {
		return err
	}

	if *trainOnly {
		if err := server.TrainFromSources(ctx, nil); err != nil {
			return fmt.Errorf("training failed: %w", err)
		}

		predictorLogger.Info().Str("model_path", cfg.ModelPath).Msg("Model trained")

		return nil
	}

	return lifecycle.Run(ctx, &lifecycle.RunOptions{
		ServiceName: "predictor",
		Service:     server,
		Logger:      predictorLogger,
	})
}
