package assist

import (
	"context"
	"strings"
	"testing"
	"time"

	"kiwoomy-context-go/internal/auth"
	"kiwoomy-context-go/internal/database"
	"kiwoomy-context-go/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

func setupTestService(t *testing.T) (*Service, *database.Service, func()) {
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

	dbService, err := database.NewService(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	gate := auth.NewGate(dbService, auth.NewBcryptHasher())
	service := NewService(ServiceConfig{
		Store: dbService,
		Gate:  gate,
	})

	return service, dbService, dbService.Close
}

func TestLoginSuccess(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	userContext, err := service.Login(context.Background(), "user01", "1234")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if userContext == nil {
		t.Fatal("Expected a user context on successful login")
	}
	if userContext.User.Name != "이경희" {
		t.Errorf("Expected user 이경희, got %s", userContext.User.Name)
	}
	if userContext.Summary.StockCount != 3 {
		t.Errorf("Expected 3 holdings, got %d", userContext.Summary.StockCount)
	}
	if len(userContext.Trades) != 5 {
		t.Errorf("Expected 5 trades, got %d", len(userContext.Trades))
	}
	if userContext.ContextPrompt == "" {
		t.Error("Expected a rendered context prompt")
	}

	current := service.CurrentContext()
	if current == nil || current.User.Id != "user01" {
		t.Error("Expected the login context to be published as current")
	}
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := service.Login(ctx, "user01", "1234"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	userContext, err := service.Login(ctx, "user01", "wrong")
	if err != nil {
		t.Fatalf("Login with bad password errored: %v", err)
	}
	if userContext != nil {
		t.Error("Expected nil context for wrong password")
	}

	userContext, err = service.Login(ctx, "ghost", "1234")
	if err != nil {
		t.Fatalf("Login with unknown user errored: %v", err)
	}
	if userContext != nil {
		t.Error("Expected nil context for unknown user")
	}

	current := service.CurrentContext()
	if current == nil || current.User.Id != "user01" {
		t.Error("Expected the prior session to survive failed logins")
	}
}

func TestClearContext(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	if _, err := service.Login(context.Background(), "user01", "1234"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	service.ClearContext()
	if service.CurrentContext() != nil {
		t.Error("Expected no current context after clear")
	}
}

func TestContextIsolationBetweenUsers(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := service.Login(ctx, "user01", "1234"); err != nil {
		t.Fatalf("Login user01 failed: %v", err)
	}
	userContext, err := service.Login(ctx, "user06", "1234")
	if err != nil {
		t.Fatalf("Login user06 failed: %v", err)
	}
	if userContext == nil {
		t.Fatal("Expected a user context for user06")
	}

	if strings.Contains(userContext.ContextPrompt, "현대차") {
		t.Error("Expected no user01 holdings in the user06 context")
	}
	if !userContext.Summary.TotalAssets.Equal(decimal.NewFromInt(17390713)) {
		t.Errorf("Expected total assets 17390713, got %s", userContext.Summary.TotalAssets)
	}
	if userContext.Summary.ProfitRate != "4.19" {
		t.Errorf("Expected profit rate 4.19, got %s", userContext.Summary.ProfitRate)
	}
}

func TestCreateUserContextUnknownUser(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	userContext, err := service.CreateUserContext(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("CreateUserContext errored: %v", err)
	}
	if userContext != nil {
		t.Error("Expected nil context for unknown user")
	}
}

func TestBuildChatRequest(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	if _, err := service.BuildChatRequest(nil); err == nil {
		t.Error("Expected an error with no active session")
	}

	if _, err := service.Login(context.Background(), "user01", "1234"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	history := []models.ChatMessage{
		{Role: models.ChatRoleUser, Content: "삼성전자 어떻게 보세요?"},
		{Role: models.ChatRoleAssistant, Content: "현재 보유하고 계시네요."},
		{Role: models.ChatRoleUser, Content: "더 살까요?"},
	}
	request, err := service.BuildChatRequest(history)
	if err != nil {
		t.Fatalf("BuildChatRequest failed: %v", err)
	}

	if request.Model != "gemma3:4b" {
		t.Errorf("Expected model gemma3:4b, got %s", request.Model)
	}
	if request.Stream {
		t.Error("Expected stream disabled")
	}
	if len(request.Messages) != len(history)+1 {
		t.Fatalf("Expected %d messages, got %d", len(history)+1, len(request.Messages))
	}
	if request.Messages[0].Role != models.ChatRoleSystem {
		t.Errorf("Expected a leading system message, got role %s", request.Messages[0].Role)
	}
	if !strings.Contains(request.Messages[0].Content, "이경희") {
		t.Error("Expected the context prompt as the system message")
	}
	if request.Messages[3].Content != "더 살까요?" {
		t.Error("Expected history preserved in order after the system message")
	}
}

func TestRefreshStockPrices(t *testing.T) {
	service, dbService, cleanup := setupTestService(t)
	defer cleanup()
	ctx := context.Background()

	userContext, err := service.Login(ctx, "user06", "1234")
	if err != nil || userContext == nil {
		t.Fatalf("Login failed: %v", err)
	}
	profileBefore := userContext.Profile

	err = dbService.PutUserStock(ctx, models.UserStock{
		UserId:       "user06",
		StockCode:    "028300",
		StockName:    "HLB",
		Quantity:     60,
		AvgPrice:     decimal.NewFromInt(102000),
		CurrentPrice: decimal.NewFromInt(110000),
		TotalValue:   decimal.NewFromInt(6600000),
		ProfitLoss:   decimal.NewFromInt(480000),
		ProfitRate:   "7.84%",
	})
	if err != nil {
		t.Fatalf("PutUserStock failed: %v", err)
	}

	if err := service.RefreshStockPrices(ctx, "user06"); err != nil {
		t.Fatalf("RefreshStockPrices failed: %v", err)
	}

	refreshed := service.CurrentContext()
	if refreshed == nil {
		t.Fatal("Expected an active context after refresh")
	}
	if !refreshed.Summary.TotalValue.Equal(decimal.NewFromInt(16576214)) {
		t.Errorf("Expected refreshed total value 16576214, got %s", refreshed.Summary.TotalValue)
	}
	if !strings.Contains(refreshed.ContextPrompt, "110,000원") {
		t.Error("Expected the refreshed price in the prompt")
	}
	if refreshed.Profile.RiskLevel != profileBefore.RiskLevel {
		t.Error("Expected the profile to survive a price refresh unchanged")
	}
}

func TestRefreshStockPricesNoSession(t *testing.T) {
	service, _, cleanup := setupTestService(t)
	defer cleanup()

	if err := service.RefreshStockPrices(context.Background(), "user06"); err != nil {
		t.Errorf("Expected refresh with no session to be a no-op, got %v", err)
	}

	if _, err := service.Login(context.Background(), "user01", "1234"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := service.RefreshStockPrices(context.Background(), "user06"); err != nil {
		t.Errorf("Expected refresh for a different user to be a no-op, got %v", err)
	}
}
