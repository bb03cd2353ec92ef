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

package auth

import (
	"context"
	"fmt"

	"kiwoomy-context-go/internal/models"

	"go.uber.org/zap"
)

// CredentialStore is the narrow slice of the record store the gate needs.
// GetPasswordHash returns ("", nil) when the user does not exist.
type CredentialStore interface {
	GetUser(ctx context.Context, userId string) (*models.User, error)
	GetPasswordHash(ctx context.Context, userId string) (string, error)
}

// Gate validates claimed credentials against stored ones.
type Gate struct {
	store  CredentialStore
	hasher Hasher
}

func NewGate(store CredentialStore, hasher Hasher) *Gate {
	return &Gate{store: store, hasher: hasher}
}

// Authenticate returns the user when the password matches the stored hash.
// A missing user and a wrong password both return (nil, nil): the two
// failure modes are indistinguishable to the caller.
func (g *Gate) Authenticate(ctx context.Context, userId, password string) (*models.User, error) {
	zap.L().Debug("Authenticating user", zap.String("user_id", userId))

	hash, err := g.store.GetPasswordHash(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("unable to load credential: %w", err)
	}
	if hash == "" {
		zap.L().Info("Authentication failed", zap.String("user_id", userId))
		return nil, nil
	}

	if err := g.hasher.Compare(hash, password); err != nil {
		zap.L().Info("Authentication failed", zap.String("user_id", userId))
		return nil, nil
	}

	user, err := g.store.GetUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("unable to load user: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	zap.L().Info("Authentication succeeded", zap.String("user_id", userId), zap.String("name", user.Name))
	return user, nil
}
