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
	"errors"
	"fmt"

	"kiwoomy-context-go/internal/models"

	"go.uber.org/zap"
)

// GetUsers returns every user, ordered by id.
func (s *Service) GetUsers(ctx context.Context) ([]models.User, error) {
	zap.L().Debug("Querying users")

	rows, err := s.db.QueryContext(ctx, queryGetUsers)
	if err != nil {
		zap.L().Error("Failed to query users", zap.Error(err))
		return nil, fmt.Errorf("unable to query users: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.Id, &user.Name); err != nil {
			zap.L().Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during user row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	zap.L().Info("Retrieved users", zap.Int("count", len(users)))
	return users, nil
}

// GetUser returns the user with the given id, or (nil, nil) when no such
// user exists. A miss is not an error.
func (s *Service) GetUser(ctx context.Context, userId string) (*models.User, error) {
	zap.L().Debug("Querying user by ID", zap.String("user_id", userId))

	var user models.User
	err := s.db.QueryRowContext(ctx, queryGetUserById, userId).Scan(&user.Id, &user.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("Failed to query user by ID", zap.String("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("unable to query user by ID: %w", err)
	}

	zap.L().Debug("Retrieved user by ID", zap.String("user_id", userId), zap.String("name", user.Name))
	return &user, nil
}

// GetPasswordHash returns the stored bcrypt hash for the user, or ("", nil)
// when the user does not exist. Only the authentication gate consumes this;
// the hash never rides on models.User.
func (s *Service) GetPasswordHash(ctx context.Context, userId string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, queryGetPasswordHash, userId).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		zap.L().Error("Failed to query credential", zap.String("user_id", userId), zap.Error(err))
		return "", fmt.Errorf("unable to query credential: %w", err)
	}
	return hash, nil
}

// PutUser upserts a user, hashing the supplied plaintext password before it
// touches disk. The store owns hashing so plaintext never persists.
func (s *Service) PutUser(ctx context.Context, user models.User, password string) error {
	zap.L().Info("Upserting user", zap.String("id", user.Id), zap.String("name", user.Name))

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("unable to hash password: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, queryUpsertUser, user.Id, user.Name, hash); err != nil {
		zap.L().Error("Failed to upsert user", zap.String("id", user.Id), zap.Error(err))
		return fmt.Errorf("unable to upsert user: %w", err)
	}

	return nil
}
