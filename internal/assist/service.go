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

package assist

import (
	"context"
	"fmt"
	"sync"

	"kiwoomy-context-go/internal/auth"
	"kiwoomy-context-go/internal/models"
	"kiwoomy-context-go/internal/portfolio"
	"kiwoomy-context-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultChatModel is the model the chat backend serves.
const DefaultChatModel = "gemma3:4b"

// ServiceConfig contains configuration for the assistant context service.
type ServiceConfig struct {
	Store     store.RecordStore
	Gate      *auth.Gate
	Analyzer  *portfolio.Analyzer
	ChatModel string
}

// Service owns the derived context of the currently authenticated user.
// One active session at a time: Login/CreateUserContext replace it,
// ClearContext discards it. A context is always built completely before it
// is published, so readers never observe a partial one.
type Service struct {
	store     store.RecordStore
	gate      *auth.Gate
	analyzer  *portfolio.Analyzer
	chatModel string

	mu      sync.Mutex
	current *models.UserContext
}

func NewService(cfg ServiceConfig) *Service {
	analyzer := cfg.Analyzer
	if analyzer == nil {
		analyzer = portfolio.NewAnalyzer(nil)
	}
	chatModel := cfg.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	return &Service{
		store:     cfg.Store,
		gate:      cfg.Gate,
		analyzer:  analyzer,
		chatModel: chatModel,
	}
}

// Login authenticates the user and, on success, builds and publishes a fresh
// context. Returns (nil, nil) when the credentials do not match; the prior
// session (if any) is left untouched in that case.
func (s *Service) Login(ctx context.Context, userId, password string) (*models.UserContext, error) {
	user, err := s.gate.Authenticate(ctx, userId, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	return s.publishContext(ctx, user)
}

// CreateUserContext builds and publishes a context for an already
// authenticated user. Returns (nil, nil) when the user does not exist.
func (s *Service) CreateUserContext(ctx context.Context, userId string) (*models.UserContext, error) {
	user, err := s.store.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if user == nil {
		zap.L().Warn("Cannot build context for unknown user", zap.String("user_id", userId))
		return nil, nil
	}

	return s.publishContext(ctx, user)
}

func (s *Service) publishContext(ctx context.Context, user *models.User) (*models.UserContext, error) {
	built, err := s.buildContext(ctx, *user)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = built
	s.mu.Unlock()

	zap.L().Info("User context published",
		zap.String("user_id", user.Id),
		zap.Int("stocks", built.Summary.StockCount),
		zap.Int("trades", len(built.Trades)))
	return built, nil
}

// buildContext assembles the full derived aggregate. Any failure aborts the
// whole build; nothing is published.
func (s *Service) buildContext(ctx context.Context, user models.User) (*models.UserContext, error) {
	deposit, err := s.accountDeposit(ctx, user.Id)
	if err != nil {
		return nil, err
	}

	stocks, err := s.store.GetUserStocks(ctx, user.Id)
	if err != nil {
		return nil, fmt.Errorf("unable to load holdings: %w", err)
	}

	trades, err := s.store.GetTradeHistory(ctx, user.Id)
	if err != nil {
		return nil, fmt.Errorf("unable to load trade history: %w", err)
	}

	summary := portfolio.Summarize(stocks, deposit)
	profile := s.analyzer.Analyze(stocks, trades)
	prompt := RenderPrompt(user, stocks, trades, summary, profile)

	return &models.UserContext{
		User:          user,
		Stocks:        stocks,
		Trades:        trades,
		Summary:       summary,
		Profile:       profile,
		ContextPrompt: prompt,
	}, nil
}

func (s *Service) accountDeposit(ctx context.Context, userId string) (decimal.Decimal, error) {
	account, err := s.store.GetAccount(ctx, userId)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unable to load account: %w", err)
	}
	if account == nil {
		return decimal.Zero, nil
	}
	return account.Deposit, nil
}

// CurrentContext returns the active session's context, or nil when no
// session is active.
func (s *Service) CurrentContext() *models.UserContext {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// ClearContext discards the active session. The context is fully dropped
// before returning; a subsequent CurrentContext sees nil, never stale data.
func (s *Service) ClearContext() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	zap.L().Info("User context cleared")
}

// RefreshStockPrices re-reads the user's holdings and account and rebuilds
// the summary and prompt in place. No-op unless the given user owns the
// active session. The profile is kept: trading behaviour does not change
// with a price tick.
func (s *Service) RefreshStockPrices(ctx context.Context, userId string) error {
	s.mu.Lock()
	active := s.current != nil && s.current.User.Id == userId
	s.mu.Unlock()
	if !active {
		return nil
	}

	deposit, err := s.accountDeposit(ctx, userId)
	if err != nil {
		return err
	}
	stocks, err := s.store.GetUserStocks(ctx, userId)
	if err != nil {
		return fmt.Errorf("unable to reload holdings: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.User.Id != userId {
		// Session changed while we were reading; drop the refresh.
		return nil
	}
	s.current.Stocks = stocks
	s.current.Summary = portfolio.Summarize(stocks, deposit)
	s.current.ContextPrompt = RenderPrompt(s.current.User, stocks, s.current.Trades, s.current.Summary, s.current.Profile)

	zap.L().Info("User context refreshed", zap.String("user_id", userId))
	return nil
}

// BuildChatRequest assembles the chat-backend payload for the active
// session: the rendered context prompt as the leading system message,
// followed by the conversation so far.
func (s *Service) BuildChatRequest(history []models.ChatMessage) (*models.ChatRequest, error) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current == nil {
		return nil, fmt.Errorf("no active user context")
	}

	messages := make([]models.ChatMessage, 0, len(history)+1)
	messages = append(messages, models.ChatMessage{
		Role:    models.ChatRoleSystem,
		Content: current.ContextPrompt,
	})
	messages = append(messages, history...)

	return &models.ChatRequest{
		Messages: messages,
		Model:    s.chatModel,
		Stream:   false,
	}, nil
}
