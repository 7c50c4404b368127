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

// Package db implements the Postgres-backed store for readings, footprints,
// and the historical grid-intensity series.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/carbonscope/pkg/logger"
	"github.com/carverauto/carbonscope/pkg/models"
)

// DB wraps a pgx pool with the Service operations.
type DB struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

// New connects to the configured cluster, runs schema migration, and returns
// the store service.
func New(ctx context.Context, cfg *models.PostgresDatabase, log logger.Logger) (Service, error) {
	pool, err := NewPool(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	database := &DB{
		pool:   pool,
		logger: log,
	}

	if err := database.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return database, nil
}

// Close releases the underlying pool.
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}

	return nil
}

// sendBatch executes a queued pgx batch and drains every result so
// per-statement failures surface.
func (db *DB) sendBatch(ctx context.Context, batch *pgx.Batch, label string) error {
	results := db.pool.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil {
			db.logger.Warn().Err(err).Str("batch", label).Msg("error closing batch results")
		}
	}()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("%w: %s statement %d: %w", ErrFailedToInsert, label, i, err)
		}
	}

	return nil
}
