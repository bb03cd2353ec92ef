/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"database/sql"
	"fmt"

	"kiwoomy-context-go/internal/auth"
	"kiwoomy-context-go/internal/models"
	"kiwoomy-context-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Compile-time checks: *Service must satisfy both store contracts.
var (
	_ store.RecordStore    = (*Service)(nil)
	_ auth.CredentialStore = (*Service)(nil)
)

type Service struct {
	db     *sql.DB
	hasher auth.Hasher
}

func NewService(ctx context.Context, cfg models.DatabaseConfig) (*Service, error) {
	// Validate configuration
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if cfg.MaxOpenConns <= 0 {
		return nil, fmt.Errorf("max open connections must be positive, got %d", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns < 0 {
		return nil, fmt.Errorf("max idle connections cannot be negative, got %d", cfg.MaxIdleConns)
	}
	if cfg.PingTimeout <= 0 {
		return nil, fmt.Errorf("ping timeout must be positive, got %v", cfg.PingTimeout)
	}

	zap.L().Info("Opening SQLite database", zap.String("file", cfg.Path))
	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=1000")
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open database: %v", store.ErrStoreUnavailable, err)
	}

	// Set connection timeouts and limits
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// Test connection with timeout
	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			zap.L().Warn("Failed to close database after ping failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("%w: unable to ping database: %v", store.ErrStoreUnavailable, err)
	}

	service := &Service{db: db, hasher: auth.NewBcryptHasher()}
	if err := service.initSchema(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			zap.L().Warn("Failed to close database after schema failure", zap.Error(closeErr))
		}
		return nil, fmt.Errorf("unable to initialize schema: %w", err)
	}

	if cfg.SeedReferenceData {
		if err := service.seedReferenceData(ctx); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				zap.L().Warn("Failed to close database after seed failure", zap.Error(closeErr))
			}
			return nil, fmt.Errorf("unable to seed reference data: %w", err)
		}
	} else {
		zap.L().Info("Skipping reference data seeding (SEED_REFERENCE_DATA=false)")
	}

	zap.L().Info("Database service initialized successfully")
	return service, nil
}

func (s *Service) Close() {
	if err := s.db.Close(); err != nil {
		zap.L().Warn("Failed to close database connection", zap.Error(err))
	}
}

func (s *Service) initSchema(ctx context.Context) error {
	schema := `
	-- Users table. Passwords live here only as bcrypt hashes.
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Account-level cash balance, one row per user.
	CREATE TABLE IF NOT EXISTS accounts (
		user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
		deposit TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Holdings, one row per (user, security).
	CREATE TABLE IF NOT EXISTS user_stocks (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		stock_code TEXT NOT NULL,
		stock_name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		avg_price TEXT NOT NULL,
		current_price TEXT NOT NULL,
		total_value TEXT NOT NULL,
		profit_loss TEXT NOT NULL,
		profit_rate TEXT NOT NULL,
		PRIMARY KEY (user_id, stock_code)
	);

	-- Index for per-user holding scans
	CREATE INDEX IF NOT EXISTS idx_user_stocks_user_id ON user_stocks(user_id);

	-- Executed trades.
	CREATE TABLE IF NOT EXISTS trade_history (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		account_number TEXT NOT NULL,
		stock_name TEXT NOT NULL,
		stock_code TEXT NOT NULL,
		trade_datetime TEXT NOT NULL,
		trade_type TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price TEXT NOT NULL,
		description TEXT NOT NULL
	);

	-- Index for per-user trade scans
	CREATE INDEX IF NOT EXISTS idx_trade_history_user_id ON trade_history(user_id);
	-- Index for date ordering
	CREATE INDEX IF NOT EXISTS idx_trade_history_datetime ON trade_history(user_id, trade_datetime);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}
