package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"kiwoomy-context-go/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// GetTradeHistory returns the user's trades sorted most-recent-first by
// trade date-time. Callers rely on this ordering.
func (s *Service) GetTradeHistory(ctx context.Context, userId string) ([]models.TradeHistory, error) {
	zap.L().Debug("Querying trade history", zap.String("user_id", userId))

	rows, err := s.db.QueryContext(ctx, queryGetTradeHistory, userId)
	if err != nil {
		zap.L().Error("Failed to query trade history", zap.String("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("unable to query trade history: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var trades []models.TradeHistory
	for rows.Next() {
		var trade models.TradeHistory
		var priceStr string

		err := rows.Scan(&trade.Id, &trade.UserId, &trade.AccountNumber,
			&trade.StockName, &trade.StockCode, &trade.TradeDateTime,
			&trade.TradeType, &trade.Quantity, &priceStr, &trade.Description)
		if err != nil {
			zap.L().Error("Failed to scan trade row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan trade row: %w", err)
		}

		trade.Price, err = decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("unable to parse price '%s': %w", priceStr, err)
		}

		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		zap.L().Error("Error during trade row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating trade rows: %w", err)
	}

	// The SQL already orders most-recent-first; keep a stable guard so the
	// contract holds even if rows were merged from another source.
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].TradeDateTime > trades[j].TradeDateTime
	})

	zap.L().Debug("Retrieved trade history", zap.String("user_id", userId), zap.Int("count", len(trades)))
	return trades, nil
}

// PutTradeHistory upserts a trade. An empty id gets a generated uuid; the
// stored trade is returned either way.
func (s *Service) PutTradeHistory(ctx context.Context, trade models.TradeHistory) (*models.TradeHistory, error) {
	if trade.Id == "" {
		trade.Id = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, queryUpsertTradeHistory,
		trade.Id, trade.UserId, trade.AccountNumber, trade.StockName,
		trade.StockCode, trade.TradeDateTime, trade.TradeType,
		trade.Quantity, trade.Price.String(), trade.Description)
	if err != nil {
		zap.L().Error("Failed to upsert trade",
			zap.String("trade_id", trade.Id),
			zap.String("user_id", trade.UserId),
			zap.Error(err))
		return nil, fmt.Errorf("unable to upsert trade: %w", err)
	}

	return &trade, nil
}
