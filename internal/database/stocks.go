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

	"kiwoomy-context-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GetUserStocks returns every holding for the user. Order is unspecified;
// callers must not rely on it.
func (s *Service) GetUserStocks(ctx context.Context, userId string) ([]models.UserStock, error) {
	zap.L().Debug("Querying holdings", zap.String("user_id", userId))

	rows, err := s.db.QueryContext(ctx, queryGetUserStocks, userId)
	if err != nil {
		zap.L().Error("Failed to query holdings", zap.String("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("unable to query holdings: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var stocks []models.UserStock
	for rows.Next() {
		stock, err := scanUserStock(rows)
		if err != nil {
			zap.L().Error("Failed to scan holding row", zap.Error(err))
			return nil, err
		}
		stocks = append(stocks, stock)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during holding row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating holding rows: %w", err)
	}

	zap.L().Debug("Retrieved holdings", zap.String("user_id", userId), zap.Int("count", len(stocks)))
	return stocks, nil
}

// PutUserStock upserts a holding keyed by (user_id, stock_code).
func (s *Service) PutUserStock(ctx context.Context, stock models.UserStock) error {
	_, err := s.db.ExecContext(ctx, queryUpsertUserStock,
		stock.UserId, stock.StockCode, stock.StockName, stock.Quantity,
		stock.AvgPrice.String(), stock.CurrentPrice.String(),
		stock.TotalValue.String(), stock.ProfitLoss.String(), stock.ProfitRate)
	if err != nil {
		zap.L().Error("Failed to upsert holding",
			zap.String("user_id", stock.UserId),
			zap.String("stock_code", stock.StockCode),
			zap.Error(err))
		return fmt.Errorf("unable to upsert holding: %w", err)
	}
	return nil
}

func scanUserStock(rows *sql.Rows) (models.UserStock, error) {
	var stock models.UserStock
	var avgPriceStr, currentPriceStr, totalValueStr, profitLossStr string

	err := rows.Scan(&stock.UserId, &stock.StockCode, &stock.StockName, &stock.Quantity,
		&avgPriceStr, &currentPriceStr, &totalValueStr, &profitLossStr, &stock.ProfitRate)
	if err != nil {
		return stock, fmt.Errorf("unable to scan holding row: %w", err)
	}

	if stock.AvgPrice, err = decimal.NewFromString(avgPriceStr); err != nil {
		return stock, fmt.Errorf("unable to parse avg_price '%s': %w", avgPriceStr, err)
	}
	if stock.CurrentPrice, err = decimal.NewFromString(currentPriceStr); err != nil {
		return stock, fmt.Errorf("unable to parse current_price '%s': %w", currentPriceStr, err)
	}
	if stock.TotalValue, err = decimal.NewFromString(totalValueStr); err != nil {
		return stock, fmt.Errorf("unable to parse total_value '%s': %w", totalValueStr, err)
	}
	if stock.ProfitLoss, err = decimal.NewFromString(profitLossStr); err != nil {
		return stock, fmt.Errorf("unable to parse profit_loss '%s': %w", profitLossStr, err)
	}

	return stock, nil
}
