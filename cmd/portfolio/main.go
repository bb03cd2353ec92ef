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

package main

import (
	"context"
	"flag"
	"fmt"

	"kiwoomy-context-go/internal/common"
	"kiwoomy-context-go/internal/config"
	"kiwoomy-context-go/internal/database"
	"kiwoomy-context-go/internal/models"
	"kiwoomy-context-go/internal/portfolio"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type portfolioStats struct {
	totalUsers        int
	totalHoldings     int
	usersWithHoldings int
}

func printHolding(stock models.UserStock, isLast bool) {
	fmt.Printf("%s %-12s (%s): %5d주 @ %10s, value %12s, P/L %10s (%s)\n",
		common.BoxPrefix(isLast),
		stock.StockName,
		stock.StockCode,
		stock.Quantity,
		stock.CurrentPrice.String(),
		stock.TotalValue.String(),
		stock.ProfitLoss.String(),
		stock.ProfitRate)
}

func printSummary(summary models.Summary) {
	fmt.Printf("│  total assets: %s, invested: %s, deposit: %s, P/L: %s (%s%%)\n",
		summary.TotalAssets.String(),
		summary.TotalValue.String(),
		summary.Deposit.String(),
		summary.TotalProfitLoss.String(),
		summary.ProfitRate)
}

func processUser(ctx context.Context, user models.User, dbService *database.Service) (int, error) {
	stocks, err := dbService.GetUserStocks(ctx, user.Id)
	if err != nil {
		return 0, fmt.Errorf("failed to get holdings: %w", err)
	}

	if len(stocks) == 0 {
		return 0, nil
	}

	deposit := decimal.Zero
	account, err := dbService.GetAccount(ctx, user.Id)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account != nil {
		deposit = account.Deposit
	}

	fmt.Printf("\n┌─ User: %s (%s)\n", user.Name, user.Id)
	fmt.Printf("│  Holdings: %d\n", len(stocks))
	common.PrintBoxSeparator(78)

	for i, stock := range stocks {
		printHolding(stock, i == len(stocks)-1)
	}
	printSummary(portfolio.Summarize(stocks, deposit))

	return len(stocks), nil
}

func processUsersAndGenerateReport(ctx context.Context, users []models.User, dbService *database.Service, logger *zap.Logger) portfolioStats {
	stats := portfolioStats{}

	for _, user := range users {
		stats.totalUsers++

		holdingCount, err := processUser(ctx, user, dbService)
		if err != nil {
			logger.Error("Failed to process user",
				zap.String("user_id", user.Id),
				zap.String("user_name", user.Name),
				zap.Error(err))
			continue
		}

		if holdingCount > 0 {
			stats.usersWithHoldings++
			stats.totalHoldings += holdingCount
		}
	}

	return stats
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	userFlag := flag.String("user", "", "Filter by specific user id (optional)")
	flag.Parse()

	logger.Info("Starting portfolio report")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Connecting to record store", zap.String("path", cfg.Database.Path))
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize record store", zap.Error(err))
	}
	defer dbService.Close()

	var users []models.User
	if *userFlag != "" {
		user, err := dbService.GetUser(ctx, *userFlag)
		if err != nil {
			logger.Fatal("Failed to query user", zap.Error(err))
		}
		if user == nil {
			logger.Fatal("User not found", zap.String("user_id", *userFlag))
		}
		users = []models.User{*user}
	} else {
		users, err = dbService.GetUsers(ctx)
		if err != nil {
			logger.Fatal("Failed to query users", zap.Error(err))
		}
	}

	common.PrintHeader("USER PORTFOLIO REPORT", common.DefaultWidth)

	stats := processUsersAndGenerateReport(ctx, users, dbService, logger)

	summary := fmt.Sprintf("SUMMARY: %d users with holdings (%d total holdings across %d users queried)",
		stats.usersWithHoldings, stats.totalHoldings, stats.totalUsers)
	common.PrintFooter(summary, common.DefaultWidth)

	logger.Info("Portfolio report completed",
		zap.Int("users_queried", stats.totalUsers),
		zap.Int("users_with_holdings", stats.usersWithHoldings),
		zap.Int("total_holdings", stats.totalHoldings))
}
