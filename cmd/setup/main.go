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
	"fmt"

	"kiwoomy-context-go/internal/common"
	"kiwoomy-context-go/internal/config"
	"kiwoomy-context-go/internal/database"

	"go.uber.org/zap"
)

func printUserRow(ctx context.Context, dbService *database.Service, userId, name string, isLast bool) error {
	stocks, err := dbService.GetUserStocks(ctx, userId)
	if err != nil {
		return err
	}
	trades, err := dbService.GetTradeHistory(ctx, userId)
	if err != nil {
		return err
	}
	account, err := dbService.GetAccount(ctx, userId)
	if err != nil {
		return err
	}

	deposit := "0"
	if account != nil {
		deposit = account.Deposit.String()
	}

	fmt.Printf("%s%s (%s): %d holdings, %d trades, deposit %s\n",
		common.BoxPrefix(isLast), userId, name, len(stocks), len(trades), deposit)
	return nil
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	logger.Info("Starting store setup")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Initializing record store", zap.String("path", cfg.Database.Path))
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize record store", zap.Error(err))
	}
	defer dbService.Close()

	users, err := dbService.GetUsers(ctx)
	if err != nil {
		logger.Fatal("Failed to query users", zap.Error(err))
	}

	common.PrintHeader("RECORD STORE SETUP", common.DefaultWidth)
	for i, user := range users {
		isLast := i == len(users)-1
		if err := printUserRow(ctx, dbService, user.Id, user.Name, isLast); err != nil {
			logger.Error("Failed to report user",
				zap.String("user_id", user.Id),
				zap.Error(err))
		}
	}
	common.PrintFooter(fmt.Sprintf("SETUP COMPLETE: %d users in store", len(users)), common.DefaultWidth)

	logger.Info("Store setup completed", zap.Int("users", len(users)))
}
