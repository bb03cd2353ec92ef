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
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"kiwoomy-context-go/internal/common"
	"kiwoomy-context-go/internal/config"
	"kiwoomy-context-go/internal/models"

	"go.uber.org/zap"
)

func printProfile(profile models.Profile) {
	fmt.Printf("│  Investment style: %s\n", profile.InvestmentStyle)
	fmt.Printf("│  Risk level:       %s\n", profile.RiskLevel)
	fmt.Printf("│  Preferred sectors: %s\n", strings.Join(profile.PreferredSectors, ", "))
	fmt.Printf("│  Trading frequency: %s\n", profile.TradingFrequency)
}

func main() {
	ctx := context.Background()

	logger, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	// Parse command line flags
	userFlag := flag.String("user", "", "User id to log in as (required)")
	passwordFlag := flag.String("password", "", "Password for the user (required)")
	showPayload := flag.Bool("payload", false, "Print the assembled chat request payload")
	flag.Parse()

	if *userFlag == "" || *passwordFlag == "" {
		logger.Fatal("Both -user and -password are required")
	}

	logger.Info("Starting assistant session", zap.String("user_id", *userFlag))

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	userContext, err := services.Assistant.Login(ctx, *userFlag, *passwordFlag)
	if err != nil {
		logger.Fatal("Login failed", zap.Error(err))
	}
	if userContext == nil {
		logger.Fatal("Authentication failed", zap.String("user_id", *userFlag))
	}

	common.PrintHeader(fmt.Sprintf("ASSISTANT CONTEXT: %s (%s)", userContext.User.Name, userContext.User.Id), common.DefaultWidth)
	printProfile(userContext.Profile)
	common.PrintBoxSeparator(78)
	fmt.Println(userContext.ContextPrompt)

	if *showPayload {
		request, err := services.Assistant.BuildChatRequest(nil)
		if err != nil {
			logger.Fatal("Failed to build chat request", zap.Error(err))
		}
		payload, err := json.MarshalIndent(request, "", "  ")
		if err != nil {
			logger.Fatal("Failed to marshal chat request", zap.Error(err))
		}
		common.PrintHeader("CHAT REQUEST PAYLOAD", common.DefaultWidth)
		fmt.Println(string(payload))
	}

	common.PrintFooter("SESSION READY", common.DefaultWidth)

	logger.Info("Assistant context built",
		zap.String("user_id", userContext.User.Id),
		zap.Int("stocks", userContext.Summary.StockCount),
		zap.Int("trades", len(userContext.Trades)))
}
