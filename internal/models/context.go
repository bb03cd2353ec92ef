package models

import (
	"github.com/shopspring/decimal"
)

// Summary holds derived portfolio statistics. Pure function of a holding set
// plus the account deposit; never persisted.
type Summary struct {
	TotalAssets     decimal.Decimal
	TotalValue      decimal.Decimal
	TotalProfitLoss decimal.Decimal
	ProfitRate      string
	Deposit         decimal.Decimal
	StockCount      int
}

// Profile holds the heuristic investment-style classification.
type Profile struct {
	InvestmentStyle  string
	RiskLevel        string
	PreferredSectors []string
	TradingFrequency string
}

// UserContext is the derived, in-memory aggregate for the currently
// authenticated user. Built fresh on login or refresh, discarded on logout.
type UserContext struct {
	User          User
	Stocks        []UserStock
	Trades        []TradeHistory
	Summary       Summary
	Profile       Profile
	ContextPrompt string
}
