package models

import (
	"github.com/shopspring/decimal"
)

// Trade types as stored in trade_history (literal contract values).
const (
	TradeTypeBuy  = "매수"
	TradeTypeSell = "매도"
)

// User represents a user in the system. Credentials are stored separately
// as a password hash and never appear on this struct.
type User struct {
	Id   string `db:"id"`
	Name string `db:"name"`
}

// Account represents a user's account-level cash balance. Deposit used to be
// denormalized onto every holding row; it lives here now, keyed by user.
type Account struct {
	UserId  string          `db:"user_id"`
	Deposit decimal.Decimal `db:"deposit"`
}

// UserStock represents one holding: a user's position in a single security.
// Composite key (UserId, StockCode).
type UserStock struct {
	UserId       string          `db:"user_id"`
	StockCode    string          `db:"stock_code"`
	StockName    string          `db:"stock_name"`
	Quantity     int64           `db:"quantity"`
	AvgPrice     decimal.Decimal `db:"avg_price"`
	CurrentPrice decimal.Decimal `db:"current_price"`
	TotalValue   decimal.Decimal `db:"total_value"`
	ProfitLoss   decimal.Decimal `db:"profit_loss"`
	ProfitRate   string          `db:"profit_rate"`
}

// TradeHistory represents one executed trade. TradeDateTime keeps the
// fixture's "2006-01-02 15:04" layout; lexicographic order on that layout is
// chronological order.
type TradeHistory struct {
	Id            string          `db:"id"`
	UserId        string          `db:"user_id"`
	AccountNumber string          `db:"account_number"`
	StockName     string          `db:"stock_name"`
	StockCode     string          `db:"stock_code"`
	TradeDateTime string          `db:"trade_datetime"`
	TradeType     string          `db:"trade_type"`
	Quantity      int64           `db:"quantity"`
	Price         decimal.Decimal `db:"price"`
	Description   string          `db:"description"`
}
