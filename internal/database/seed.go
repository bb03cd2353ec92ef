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

	"kiwoomy-context-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Fixed reference dataset, inserted once on first initialization. The
// figures are shared fixtures; downstream tests pin them, so they must be
// reproduced verbatim. All amounts are integer won.

type seedUser struct {
	id       string
	name     string
	password string
	deposit  int64
}

type seedStock struct {
	userId       string
	stockName    string
	stockCode    string
	quantity     int64
	avgPrice     int64
	currentPrice int64
	totalValue   int64
	profitLoss   int64
	profitRate   string
}

type seedTrade struct {
	id            string
	userId        string
	accountNumber string
	stockName     string
	stockCode     string
	tradeDateTime string
	tradeType     string
	quantity      int64
	price         int64
	description   string
}

var seedUsers = []seedUser{
	{"user01", "이경희", "1234", 2016927},
	{"user02", "김우진", "1234", 1712552},
	{"user03", "이준혁", "1234", 460250},
	{"user04", "김영철", "1234", 4222369},
	{"user05", "박정훈", "1234", 5030360},
	{"user06", "김승현", "1234", 1371179},
}

var seedStocks = []seedStock{
	{"user01", "한미약품", "128940", 27, 116924, 114084, 3080268, -76680, "-2.43%"},
	{"user01", "현대차", "5380", 15, 118202, 113256, 1698840, -74190, "-4.18%"},
	{"user01", "NAVER", "35420", 4, 85124, 92003, 368012, 27516, "8.08%"},
	{"user02", "HMM", "11200", 22, 82313, 89549, 1970078, 159192, "8.79%"},
	{"user02", "삼성바이오로직스", "207940", 4, 61152, 64039, 256156, 11548, "4.72%"},
	{"user03", "신한지주", "55550", 7, 69155, 76199, 533393, 49308, "10.19%"},
	{"user04", "포스코홀딩스", "5490", 66, 95160, 98424, 6495984, 215424, "3.43%"},
	{"user04", "셀트리온", "68270", 1, 54104, 61972, 61972, 7868, "14.54%"},
	{"user04", "삼성바이오로직스", "207940", 3, 77284, 86723, 260169, 28317, "12.21%"},
	{"user05", "HMM", "11200", 70, 58765, 60997, 4269790, 156240, "3.80%"},
	{"user06", "HMM", "11200", 84, 114002, 114620, 9628080, 51912, "0.54%"},
	{"user06", "한화에어로스페이스", "12450", 2, 67379, 66562, 133124, -1634, "-1.21%"},
	{"user06", "한국전력", "15760", 36, 57991, 60828, 2189808, 102132, "4.89%"},
	{"user06", "한미약품", "128940", 54, 66240, 75343, 4068522, 491562, "13.74%"},
}

var seedTrades = []seedTrade{
	{"1", "user01", "1111-1111", "한미약품", "128940", "2022-01-08 09:56", models.TradeTypeBuy, 10, 122443, "기관 매수세 확인 후 동참"},
	{"2", "user01", "1111-1111", "NAVER", "35420", "2022-01-22 12:47", models.TradeTypeBuy, 10, 83694, "주가 조정 구간에서 2차 매수 진입"},
	{"3", "user01", "1111-1111", "현대차", "5380", "2022-06-25 10:11", models.TradeTypeBuy, 6, 113344, "우량주 분할 매수 전략으로 첫 진입"},
	{"4", "user01", "1111-1111", "한미약품", "128940", "2022-11-10 13:55", models.TradeTypeSell, 4, 116060, "장기 보유 목적으로 리밸런싱"},
	{"5", "user01", "1111-1111", "NAVER", "35420", "2022-11-11 15:07", models.TradeTypeBuy, 8, 89287, "급락에 따른 저가 매수 대응"},
}

// seedReferenceData inserts the reference dataset if it is not already
// present. Idempotence is keyed on user01: when that record exists the whole
// seed is skipped. Individual insert failures are logged and skipped so
// initialization proceeds with whatever subset succeeded.
func (s *Service) seedReferenceData(ctx context.Context) error {
	existing, err := s.GetUser(ctx, "user01")
	if err != nil {
		return err
	}
	if existing != nil {
		zap.L().Info("Reference data already present, skipping seed")
		return nil
	}

	zap.L().Info("Seeding reference data",
		zap.Int("users", len(seedUsers)),
		zap.Int("stocks", len(seedStocks)),
		zap.Int("trades", len(seedTrades)))

	for _, u := range seedUsers {
		user := models.User{Id: u.id, Name: u.name}
		if err := s.PutUser(ctx, user, u.password); err != nil {
			zap.L().Error("Failed to seed user", zap.String("id", u.id), zap.Error(err))
			continue
		}
		account := models.Account{UserId: u.id, Deposit: decimal.NewFromInt(u.deposit)}
		if err := s.PutAccount(ctx, account); err != nil {
			zap.L().Error("Failed to seed account", zap.String("user_id", u.id), zap.Error(err))
		}
	}

	for _, st := range seedStocks {
		stock := models.UserStock{
			UserId:       st.userId,
			StockCode:    st.stockCode,
			StockName:    st.stockName,
			Quantity:     st.quantity,
			AvgPrice:     decimal.NewFromInt(st.avgPrice),
			CurrentPrice: decimal.NewFromInt(st.currentPrice),
			TotalValue:   decimal.NewFromInt(st.totalValue),
			ProfitLoss:   decimal.NewFromInt(st.profitLoss),
			ProfitRate:   st.profitRate,
		}
		if err := s.PutUserStock(ctx, stock); err != nil {
			zap.L().Error("Failed to seed holding",
				zap.String("user_id", st.userId),
				zap.String("stock_code", st.stockCode),
				zap.Error(err))
		}
	}

	for _, tr := range seedTrades {
		trade := models.TradeHistory{
			Id:            tr.id,
			UserId:        tr.userId,
			AccountNumber: tr.accountNumber,
			StockName:     tr.stockName,
			StockCode:     tr.stockCode,
			TradeDateTime: tr.tradeDateTime,
			TradeType:     tr.tradeType,
			Quantity:      tr.quantity,
			Price:         decimal.NewFromInt(tr.price),
			Description:   tr.description,
		}
		if _, err := s.PutTradeHistory(ctx, trade); err != nil {
			zap.L().Error("Failed to seed trade", zap.String("id", tr.id), zap.Error(err))
		}
	}

	zap.L().Info("Reference data seeded")
	return nil
}
