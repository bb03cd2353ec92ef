package assist

import (
	"fmt"
	"strings"

	"kiwoomy-context-go/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// recentTradeLimit caps how many trades ride into the prompt. Trades arrive
// already sorted most-recent-first.
const recentTradeLimit = 5

var wonPrinter = message.NewPrinter(language.Korean)

// RenderPrompt renders the user's full financial picture into the system
// prompt consumed by the chat backend. Deterministic for a given input; the
// wording is a contract with existing fixtures, so edit with care.
func RenderPrompt(user models.User, stocks []models.UserStock, trades []models.TradeHistory,
	summary models.Summary, profile models.Profile) string {

	var b strings.Builder

	fmt.Fprintf(&b, "당신은 %s님의 전용 금융 AI 상담사입니다. 다음은 %s님의 상세 정보입니다:\n\n", user.Name, user.Name)

	b.WriteString("## 🏛️ 기본 정보\n")
	fmt.Fprintf(&b, "- 이름: %s\n", user.Name)
	fmt.Fprintf(&b, "- 사용자 ID: %s\n\n", user.Id)

	b.WriteString("## 💰 자산 현황\n")
	fmt.Fprintf(&b, "- 총 자산: %s원\n", formatWon(summary.TotalAssets))
	fmt.Fprintf(&b, "- 투자 금액: %s원\n", formatWon(summary.TotalValue))
	fmt.Fprintf(&b, "- 예수금: %s원\n", formatWon(summary.Deposit))
	fmt.Fprintf(&b, "- 평가손익: %s%s원\n", plusSign(summary.TotalProfitLoss), formatWon(summary.TotalProfitLoss))
	fmt.Fprintf(&b, "- 수익률: %s%s%%\n", plusSign(summary.TotalProfitLoss), summary.ProfitRate)
	fmt.Fprintf(&b, "- 보유종목 수: %d개\n\n", summary.StockCount)

	b.WriteString("## 📈 보유종목 상세\n")
	for _, stock := range stocks {
		fmt.Fprintf(&b, "\n- %s (%s)\n", stock.StockName, stock.StockCode)
		fmt.Fprintf(&b, "  * 수량: %s주\n", formatWon(decimal.NewFromInt(stock.Quantity)))
		fmt.Fprintf(&b, "  * 평균단가: %s원\n", formatWon(stock.AvgPrice))
		fmt.Fprintf(&b, "  * 현재가: %s원\n", formatWon(stock.CurrentPrice))
		fmt.Fprintf(&b, "  * 평가금액: %s원\n", formatWon(stock.TotalValue))
		fmt.Fprintf(&b, "  * 손익: %s%s원 (%s)\n", plusSign(stock.ProfitLoss), formatWon(stock.ProfitLoss), stock.ProfitRate)
	}

	b.WriteString("\n## 📊 투자 성향 분석\n")
	fmt.Fprintf(&b, "- 투자 스타일: %s\n", profile.InvestmentStyle)
	fmt.Fprintf(&b, "- 리스크 성향: %s\n", profile.RiskLevel)
	fmt.Fprintf(&b, "- 선호 섹터: %s\n", strings.Join(profile.PreferredSectors, ", "))
	fmt.Fprintf(&b, "- 거래 빈도: %s\n\n", profile.TradingFrequency)

	fmt.Fprintf(&b, "## 💱 최근 거래내역 (최대 %d건)\n", recentTradeLimit)
	for i, trade := range trades {
		if i == recentTradeLimit {
			break
		}
		fmt.Fprintf(&b, "\n- %s: %s %s %s주 @%s원\n", trade.TradeDateTime, trade.TradeType,
			trade.StockName, formatWon(decimal.NewFromInt(trade.Quantity)), formatWon(trade.Price))
		fmt.Fprintf(&b, "  사유: %s\n", trade.Description)
	}

	b.WriteString("\n## 🎯 상담 지침\n")
	fmt.Fprintf(&b, "1. %s님의 이름을 자연스럽게 사용하여 개인화된 상담을 제공하세요.\n", user.Name)
	b.WriteString("2. 위 정보를 바탕으로 구체적이고 개인화된 투자 조언을 제공하세요.\n")
	fmt.Fprintf(&b, "3. %s님의 투자 성향(%s, %s)에 맞는 조언을 하세요.\n", user.Name, profile.InvestmentStyle, profile.RiskLevel)
	b.WriteString("4. 현재 보유종목의 손익 상황을 고려한 조언을 제공하세요.\n")
	b.WriteString("5. 친근하고 전문적인 톤으로 대화하세요.\n")
	b.WriteString("6. 구체적인 수치와 데이터를 활용하여 설득력 있는 조언을 하세요.\n\n")

	fmt.Fprintf(&b, "이제 %s님과 자연스럽고 개인화된 금융 상담을 시작하세요.", user.Name)

	return b.String()
}

// formatWon formats an amount with locale-aware thousands separators,
// matching the rest of the UI's number displays.
func formatWon(amount decimal.Decimal) string {
	whole := amount.Truncate(0)
	formatted := wonPrinter.Sprintf("%d", whole.IntPart())
	if frac := amount.Sub(whole); !frac.IsZero() {
		fracStr := frac.Abs().String()
		// frac.Abs().String() is "0.<digits>"; keep the dot and digits.
		formatted += fracStr[1:]
	}
	return formatted
}

// plusSign returns "+" for non-negative amounts; negatives already carry
// their own sign.
func plusSign(amount decimal.Decimal) string {
	if amount.Sign() >= 0 {
		return "+"
	}
	return ""
}
