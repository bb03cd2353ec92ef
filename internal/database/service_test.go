package database

import (
	"context"
	"testing"
	"time"

	"kiwoomy-context-go/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupTestDb(t *testing.T) (*Service, func()) {
	t.Helper()

	cfg := models.DatabaseConfig{
		Path:              ":memory:",
		MaxOpenConns:      1,
		MaxIdleConns:      1,
		ConnMaxLifetime:   time.Minute,
		ConnMaxIdleTime:   time.Minute,
		PingTimeout:       5 * time.Second,
		SeedReferenceData: true,
	}

	service, err := NewService(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	return service, service.Close
}

func TestSeedCounts(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	users, err := service.GetUsers(ctx)
	if err != nil {
		t.Fatalf("GetUsers failed: %v", err)
	}
	if len(users) != 6 {
		t.Errorf("Expected 6 seeded users, got %d", len(users))
	}

	totalStocks := 0
	for _, user := range users {
		stocks, err := service.GetUserStocks(ctx, user.Id)
		if err != nil {
			t.Fatalf("GetUserStocks(%s) failed: %v", user.Id, err)
		}
		totalStocks += len(stocks)
	}
	if totalStocks != 14 {
		t.Errorf("Expected 14 seeded holdings, got %d", totalStocks)
	}

	trades, err := service.GetTradeHistory(ctx, "user01")
	if err != nil {
		t.Fatalf("GetTradeHistory failed: %v", err)
	}
	if len(trades) != 5 {
		t.Errorf("Expected 5 seeded trades for user01, got %d", len(trades))
	}
}

func TestSeedIdempotent(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	// Seeding again must be a no-op: user01 already exists.
	if err := service.seedReferenceData(ctx); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}

	users, err := service.GetUsers(ctx)
	if err != nil {
		t.Fatalf("GetUsers failed: %v", err)
	}
	if len(users) != 6 {
		t.Errorf("Expected 6 users after double seed, got %d", len(users))
	}

	stocks, err := service.GetUserStocks(ctx, "user06")
	if err != nil {
		t.Fatalf("GetUserStocks failed: %v", err)
	}
	if len(stocks) != 4 {
		t.Errorf("Expected 4 holdings for user06 after double seed, got %d", len(stocks))
	}
}

func TestSeedSkippedWhenUser01Present(t *testing.T) {
	cfg := models.DatabaseConfig{
		Path:              ":memory:",
		MaxOpenConns:      1,
		MaxIdleConns:      1,
		PingTimeout:       5 * time.Second,
		SeedReferenceData: false,
	}
	service, err := NewService(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	defer service.Close()
	ctx := context.Background()

	// Plant user01 before seeding; the whole seed must then be skipped.
	if err := service.PutUser(ctx, models.User{Id: "user01", Name: "기존사용자"}, "pw"); err != nil {
		t.Fatalf("PutUser failed: %v", err)
	}
	if err := service.seedReferenceData(ctx); err != nil {
		t.Fatalf("seedReferenceData failed: %v", err)
	}

	users, err := service.GetUsers(ctx)
	if err != nil {
		t.Fatalf("GetUsers failed: %v", err)
	}
	if len(users) != 1 {
		t.Errorf("Expected seed to be skipped, got %d users", len(users))
	}
	user, err := service.GetUser(ctx, "user01")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user == nil || user.Name != "기존사용자" {
		t.Errorf("Expected pre-existing user01 to survive, got %+v", user)
	}
}

func TestSeedHoldingValueInvariant(t *testing.T) {
	// total_value must equal quantity * current_price for every fixture row.
	for _, st := range seedStocks {
		expected := decimal.NewFromInt(st.quantity).Mul(decimal.NewFromInt(st.currentPrice))
		actual := decimal.NewFromInt(st.totalValue)
		if !actual.Equal(expected) {
			t.Errorf("Seed row %s/%s: total_value %s != quantity*current_price %s",
				st.userId, st.stockCode, actual.String(), expected.String())
		}
	}
}

func TestGetUserMissing(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	user, err := service.GetUser(context.Background(), "nouser")
	if err != nil {
		t.Fatalf("GetUser returned error for missing user: %v", err)
	}
	if user != nil {
		t.Errorf("Expected nil user for missing id, got %+v", user)
	}
}

func TestGetAccountDeposit(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()
	ctx := context.Background()

	account, err := service.GetAccount(ctx, "user06")
	if err != nil {
		t.Fatalf("GetAccount failed: %v", err)
	}
	if account == nil {
		t.Fatal("Expected account for user06, got nil")
	}
	if !account.Deposit.Equal(decimal.NewFromInt(1371179)) {
		t.Errorf("Expected deposit 1371179, got %s", account.Deposit.String())
	}

	missing, err := service.GetAccount(ctx, "nouser")
	if err != nil {
		t.Fatalf("GetAccount returned error for missing account: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil account for missing user, got %+v", missing)
	}
}

func TestPasswordNeverStoredInClear(t *testing.T) {
	service, cleanup := setupTestDb(t)
	defer cleanup()

	hash, err := service.GetPasswordHash(context.Background(), "user01")
	if err != nil {
		t.Fatalf("GetPasswordHash failed: %v", err)
	}
	if hash == "" {
		t.Fatal("Expected a stored hash for user01")
	}
	if hash == "1234" {
		t.Error("Password stored in plaintext")
	}

	missingHash, err := service.GetPasswordHash(context.Background(), "nouser")
	if err != nil {
		t.Fatalf("GetPasswordHash returned error for missing user: %v", err)
	}
	if missingHash != "" {
		t.Errorf("Expected empty hash for missing user, got %q", missingHash)
	}
}
