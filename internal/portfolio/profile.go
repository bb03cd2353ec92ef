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
	"sort"
	"strings"

	"kiwoomy-context-go/internal/models"

	"github.com/shopspring/decimal"
)

// Classification category strings. These are literal contract values shared
// with the chat assistant's prompts; do not reword them.
const (
	StyleAggressive   = "적극형"
	StyleNeutral      = "중립형"
	StyleConservative = "안정형"

	RiskAggressive   = "공격적"
	RiskMedium       = "중간"
	RiskConservative = "보수적"

	FrequencyActive   = "활발한 거래형"
	FrequencyMedium   = "중간 거래형"
	FrequencyLongTerm = "장기 보유형"
)

var (
	riskAggressiveThreshold = decimal.NewFromInt(10)
	riskMediumThreshold     = decimal.NewFromInt(5)
)

// Analyzer classifies a user's investment behaviour from their holdings and
// trade history. Pure, no external calls.
type Analyzer struct {
	rules []SectorRule
}

// NewAnalyzer returns an Analyzer using the given sector classification
// rules, or the built-in defaults when rules is nil.
func NewAnalyzer(rules []SectorRule) *Analyzer {
	if rules == nil {
		rules = DefaultSectorRules()
	}
	return &Analyzer{rules: rules}
}

// Analyze derives the investment profile. All thresholds are strict
// greater-than comparisons evaluated in descending order.
func (a *Analyzer) Analyze(stocks []models.UserStock, trades []models.TradeHistory) models.Profile {
	return models.Profile{
		InvestmentStyle:  investmentStyle(stocks),
		RiskLevel:        riskLevel(stocks),
		PreferredSectors: a.preferredSectors(stocks),
		TradingFrequency: tradingFrequency(trades),
	}
}

func investmentStyle(stocks []models.UserStock) string {
	switch {
	case len(stocks) > 5:
		return StyleAggressive
	case len(stocks) > 3:
		return StyleNeutral
	default:
		return StyleConservative
	}
}

// riskLevel averages the absolute per-holding profit rate. An empty holding
// set has no average and defaults to conservative.
func riskLevel(stocks []models.UserStock) string {
	if len(stocks) == 0 {
		return RiskConservative
	}

	sum := decimal.Zero
	for _, stock := range stocks {
		rate, err := decimal.NewFromString(strings.TrimSuffix(stock.ProfitRate, "%"))
		if err != nil {
			// Unparseable rates count as zero rather than poisoning the average.
			continue
		}
		sum = sum.Add(rate.Abs())
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(stocks))))

	switch {
	case avg.GreaterThan(riskAggressiveThreshold):
		return RiskAggressive
	case avg.GreaterThan(riskMediumThreshold):
		return RiskMedium
	default:
		return RiskConservative
	}
}

// preferredSectors tallies holdings into sector buckets and returns the top
// two by count. Ties break by bucket declaration order.
func (a *Analyzer) preferredSectors(stocks []models.UserStock) []string {
	counts := make(map[string]int)
	for _, stock := range stocks {
		counts[classifySector(a.rules, stock.StockName)]++
	}

	type bucket struct {
		sector string
		count  int
	}
	var buckets []bucket
	for _, sector := range sectorOrder(a.rules) {
		if counts[sector] > 0 {
			buckets = append(buckets, bucket{sector, counts[sector]})
		}
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].count > buckets[j].count
	})

	var sectors []string
	for _, b := range buckets {
		if len(sectors) == 2 {
			break
		}
		sectors = append(sectors, b.sector)
	}
	return sectors
}

func tradingFrequency(trades []models.TradeHistory) string {
	switch {
	case len(trades) > 10:
		return FrequencyActive
	case len(trades) > 5:
		return FrequencyMedium
	default:
		return FrequencyLongTerm
	}
}
