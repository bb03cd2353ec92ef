package portfolio

import (
	"fmt"
	"testing"

	"kiwoomy-context-go/internal/models"

	"github.com/shopspring/decimal"
)

func makeStocks(n int, profitRate string) []models.UserStock {
	stocks := make([]models.UserStock, n)
	for i := range stocks {
		stocks[i] = models.UserStock{
			StockCode:  fmt.Sprintf("%06d", i),
			StockName:  fmt.Sprintf("종목%d", i),
			TotalValue: decimal.NewFromInt(100000),
			ProfitRate: profitRate,
		}
	}
	return stocks
}

func makeTrades(n int) []models.TradeHistory {
	trades := make([]models.TradeHistory, n)
	for i := range trades {
		trades[i] = models.TradeHistory{Id: fmt.Sprintf("%d", i), TradeType: models.TradeTypeBuy}
	}
	return trades
}

func TestInvestmentStyleThresholds(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	cases := []struct {
		stockCount int
		expected   string
	}{
		{6, StyleAggressive},
		{5, StyleNeutral},
		{4, StyleNeutral},
		{3, StyleConservative},
		{0, StyleConservative},
	}

	for _, tc := range cases {
		profile := analyzer.Analyze(makeStocks(tc.stockCount, "1.00%"), nil)
		if profile.InvestmentStyle != tc.expected {
			t.Errorf("%d stocks: expected style %s, got %s", tc.stockCount, tc.expected, profile.InvestmentStyle)
		}
	}
}

func TestRiskLevelThresholds(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	cases := []struct {
		rates    []string
		expected string
	}{
		{[]string{"12.00%", "-11.00%"}, RiskAggressive}, // avg 11.5
		{[]string{"6.00%", "5.50%"}, RiskMedium},        // avg 5.75
		{[]string{"10.00%"}, RiskMedium},                // strict >, 10 is not aggressive
		{[]string{"5.00%"}, RiskConservative},           // strict >, 5 is not medium
		{[]string{"1.00%", "-2.00%"}, RiskConservative},
	}

	for _, tc := range cases {
		stocks := make([]models.UserStock, len(tc.rates))
		for i, rate := range tc.rates {
			stocks[i] = models.UserStock{StockName: "종목", ProfitRate: rate}
		}
		profile := analyzer.Analyze(stocks, nil)
		if profile.RiskLevel != tc.expected {
			t.Errorf("rates %v: expected risk %s, got %s", tc.rates, tc.expected, profile.RiskLevel)
		}
	}
}

func TestRiskLevelEmptyHoldings(t *testing.T) {
	profile := NewAnalyzer(nil).Analyze(nil, nil)
	if profile.RiskLevel != RiskConservative {
		t.Errorf("Expected conservative risk with no holdings, got %s", profile.RiskLevel)
	}
	if len(profile.PreferredSectors) != 0 {
		t.Errorf("Expected no preferred sectors with no holdings, got %v", profile.PreferredSectors)
	}
}

func TestPreferredSectorsTopTwo(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	stocks := []models.UserStock{
		{StockName: "한미약품", ProfitRate: "1.00%"},
		{StockName: "삼성바이오로직스", ProfitRate: "1.00%"},
		{StockName: "한국전력", ProfitRate: "1.00%"},
		{StockName: "HMM", ProfitRate: "1.00%"},
		{StockName: "현대차", ProfitRate: "1.00%"},
	}
	profile := analyzer.Analyze(stocks, nil)

	// 바이오/제약 has 2, the rest 1 each; the 1-count tie breaks by
	// bucket declaration order (에너지 before 자동차 and 해운/물류).
	expected := []string{"바이오/제약", "에너지"}
	if len(profile.PreferredSectors) != 2 {
		t.Fatalf("Expected 2 sectors, got %v", profile.PreferredSectors)
	}
	for i, sector := range expected {
		if profile.PreferredSectors[i] != sector {
			t.Errorf("Expected sector[%d] %s, got %s", i, sector, profile.PreferredSectors[i])
		}
	}
}

func TestPreferredSectorsMisc(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	stocks := []models.UserStock{
		{StockName: "NAVER", ProfitRate: "1.00%"},
		{StockName: "신한지주", ProfitRate: "1.00%"},
	}
	profile := analyzer.Analyze(stocks, nil)

	if len(profile.PreferredSectors) != 1 || profile.PreferredSectors[0] != SectorMisc {
		t.Errorf("Expected only the misc bucket, got %v", profile.PreferredSectors)
	}
}

func TestTradingFrequencyThresholds(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	cases := []struct {
		tradeCount int
		expected   string
	}{
		{11, FrequencyActive},
		{10, FrequencyMedium},
		{6, FrequencyMedium},
		{5, FrequencyLongTerm},
		{0, FrequencyLongTerm},
	}

	for _, tc := range cases {
		profile := analyzer.Analyze(nil, makeTrades(tc.tradeCount))
		if profile.TradingFrequency != tc.expected {
			t.Errorf("%d trades: expected frequency %s, got %s", tc.tradeCount, tc.expected, profile.TradingFrequency)
		}
	}
}

func TestClassifySectorPriority(t *testing.T) {
	rules := DefaultSectorRules()

	cases := []struct {
		stockName string
		expected  string
	}{
		{"한미약품", "바이오/제약"},
		{"삼성바이오로직스", "바이오/제약"},
		{"한국전력", "에너지"},
		{"현대차", "자동차"},
		{"HMM", "해운/물류"},
		{"NAVER", SectorMisc},
	}

	for _, tc := range cases {
		if got := classifySector(rules, tc.stockName); got != tc.expected {
			t.Errorf("%s: expected sector %s, got %s", tc.stockName, tc.expected, got)
		}
	}
}
