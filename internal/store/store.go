package store

import (
	"context"
	"errors"

	"kiwoomy-context-go/internal/models"
)

// Sentinel errors shared by every record-store implementation.
var (
	// ErrStoreUnavailable wraps a failure to open or reach the storage
	// engine. Lookup misses are not errors: point lookups return (nil, nil).
	ErrStoreUnavailable = errors.New("record store unavailable")
)

// RecordStore defines the contract for the persistent record store holding
// users, accounts, holdings and trade history.
//
// Point lookups return (nil, nil) when the record does not exist.
// GetTradeHistory returns trades sorted non-increasing by trade date-time;
// callers rely on most-recent-first. GetUserStocks guarantees no order.
// All upserts are idempotent, keyed by the record's primary key.
type RecordStore interface {
	// --- Users ---
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, userId string) (*models.User, error)
	// PutUser hashes the plaintext password before storing it; secrets are
	// never persisted or returned in the clear.
	PutUser(ctx context.Context, user models.User, password string) error

	// --- Accounts ---
	GetAccount(ctx context.Context, userId string) (*models.Account, error)
	PutAccount(ctx context.Context, account models.Account) error

	// --- Holdings ---
	GetUserStocks(ctx context.Context, userId string) ([]models.UserStock, error)
	PutUserStock(ctx context.Context, stock models.UserStock) error

	// --- Trade history ---
	GetTradeHistory(ctx context.Context, userId string) ([]models.TradeHistory, error)
	PutTradeHistory(ctx context.Context, trade models.TradeHistory) (*models.TradeHistory, error)

	// --- Lifecycle ---
	Close()
}
