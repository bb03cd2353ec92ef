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

package portfolio

import (
	"kiwoomy-context-go/internal/models"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Summarize computes derived portfolio statistics from a holding set and the
// account-level deposit. Pure and deterministic; an empty holding set yields
// a zero-valued summary with profit rate "0.00".
//
// The profit rate denominator is the cost basis (value minus profit), not
// the current value: return over what was originally invested.
func Summarize(stocks []models.UserStock, deposit decimal.Decimal) models.Summary {
	totalValue := decimal.Zero
	totalProfitLoss := decimal.Zero
	for _, stock := range stocks {
		totalValue = totalValue.Add(stock.TotalValue)
		totalProfitLoss = totalProfitLoss.Add(stock.ProfitLoss)
	}

	profitRate := "0.00"
	if totalValue.IsPositive() {
		costBasis := totalValue.Sub(totalProfitLoss)
		profitRate = totalProfitLoss.Div(costBasis).Mul(oneHundred).StringFixed(2)
	}

	return models.Summary{
		TotalAssets:     totalValue.Add(deposit),
		TotalValue:      totalValue,
		TotalProfitLoss: totalProfitLoss,
		ProfitRate:      profitRate,
		Deposit:         deposit,
		StockCount:      len(stocks),
	}
}
