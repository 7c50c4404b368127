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

// Package lifecycle owns service startup, shutdown, and logger wiring.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/carverauto/carbonscope/pkg/logger"
)

const defaultShutdownTimeout = 10 * time.Second

// Service is the contract every long-running component implements. Start
// blocks until the context is canceled or the service fails; Stop performs a
// bounded graceful shutdown.
type Service interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// RunOptions configures Run.
type RunOptions struct {
	ServiceName     string
	Service         Service
	Logger          logger.Logger
	ShutdownTimeout time.Duration
}

// Run starts the service, waits for SIGINT/SIGTERM or service failure, then
// stops it within the shutdown timeout. Termination between poll/fetch
// boundaries is the only cancellation mechanism the services need.
func Run(ctx context.Context, opts *RunOptions) error {
	log := opts.Logger
	if log == nil {
		log = NewNoopLoggerFallback()
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		errCh <- opts.Service.Start(sigCtx)
	}()

	log.Info().Str("service", opts.ServiceName).Msg("Service started")

	var runErr error

	select {
	case <-sigCtx.Done():
		log.Info().Str("service", opts.ServiceName).Msg("Shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			runErr = fmt.Errorf("service %s failed: %w", opts.ServiceName, err)
		}
	}

	timeout := opts.ShutdownTimeout
	if timeout == 0 {
		timeout = defaultShutdownTimeout
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := opts.Service.Stop(stopCtx); err != nil {
		log.Error().Err(err).Str("service", opts.ServiceName).Msg("Error stopping service")

		if runErr == nil {
			runErr = err
		}
	}

	if err := ShutdownLogger(); err != nil {
		log.Error().Err(err).Msg("Error shutting down logger")
	}

	return runErr
}

// NewNoopLoggerFallback returns a discard logger so Run never nil-derefs.
func NewNoopLoggerFallback() logger.Logger {
	return logger.NewTestLogger()
}
