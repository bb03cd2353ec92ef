package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kiwoomy-context-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GetAccount returns the account-level cash balance for the user, or
// (nil, nil) when none exists.
func (s *Service) GetAccount(ctx context.Context, userId string) (*models.Account, error) {
	var account models.Account
	var depositStr string

	err := s.db.QueryRowContext(ctx, queryGetAccount, userId).Scan(&account.UserId, &depositStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("Failed to query account", zap.String("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("unable to query account: %w", err)
	}

	account.Deposit, err = decimal.NewFromString(depositStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse deposit '%s': %w", depositStr, err)
	}

	return &account, nil
}

// PutAccount upserts the account-level cash balance.
func (s *Service) PutAccount(ctx context.Context, account models.Account) error {
	if _, err := s.db.ExecContext(ctx, queryUpsertAccount, account.UserId, account.Deposit.String()); err != nil {
		zap.L().Error("Failed to upsert account", zap.String("user_id", account.UserId), zap.Error(err))
		return fmt.Errorf("unable to upsert account: %w", err)
	}
	return nil
}
