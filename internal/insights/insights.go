// Package insights generates a short AI commentary on the current portfolio.
package insights

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/shopspring/decimal"

	"github.com/portfoliotracker/backend/internal/apperrors"
	"github.com/portfoliotracker/backend/internal/model"
	"github.com/portfoliotracker/backend/internal/news"
	"github.com/portfoliotracker/backend/internal/quote"
)

const systemPrompt = "You are a financial assistant for a personal stock portfolio tracker. " +
	"Given the portfolio positions, cash balance, and profit figures, write a brief, " +
	"factual commentary (3-5 sentences). Do not give buy or sell recommendations."

const tickerSystemPrompt = "You are a financial assistant for a personal stock portfolio tracker. " +
	"Given one stock's market data and recent headlines, write a short note (3-5 sentences) " +
	"characterizing current sentiment as bullish, neutral, or bearish. This is informational " +
	"only; do not present it as financial advice."

// Generator produces portfolio commentary via a chat completion model.
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a Generator. An empty API key yields a generator that
// reports ErrInsightsNotConfigured on use.
func NewGenerator(apiKey, model string) *Generator {
	g := &Generator{model: model}
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
	}
	return g
}

// Configured reports whether an API key was provided.
func (g *Generator) Configured() bool {
	return g.client != nil
}

// PortfolioCommentary summarizes the given portfolio state in a few
// sentences.
func (g *Generator) PortfolioCommentary(ctx context.Context, holdings []model.Holding, cash decimal.Decimal, report model.PnLReport) (string, error) {
	if g.client == nil {
		return "", apperrors.ErrInsightsNotConfigured
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: describePortfolio(holdings, cash, report)},
		},
		MaxTokens: 300,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate portfolio commentary: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// TickerNote summarizes one stock's market data and headlines into a short
// sentiment note. An empty article list is fine; the note then leans on the
// market data alone.
func (g *Generator) TickerNote(ctx context.Context, data quote.MarketData, articles []news.Article) (string, error) {
	if g.client == nil {
		return "", apperrors.ErrInsightsNotConfigured
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: tickerSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: describeTicker(data, articles)},
		},
		MaxTokens: 300,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate ticker note: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func describeTicker(data quote.MarketData, articles []news.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", data.Symbol, data.Name)
	fmt.Fprintf(&b, "Price: %s %s, day change %s (%s%%)\n",
		data.Price.StringFixed(2), data.Currency,
		data.DayGain.StringFixed(2), data.DayGainPercent.StringFixed(2))
	fmt.Fprintf(&b, "Day range: %s - %s, 52-week range: %s - %s\n",
		data.DayLow.StringFixed(2), data.DayHigh.StringFixed(2),
		data.YearLow.StringFixed(2), data.YearHigh.StringFixed(2))
	fmt.Fprintf(&b, "Volume: %d\n", data.Volume)

	b.WriteString("Recent headlines:\n")
	if len(articles) == 0 {
		b.WriteString("  (none available)\n")
	}
	for _, a := range articles {
		fmt.Fprintf(&b, "  %s (%s)\n", a.Title, a.Source)
	}

	return b.String()
}

func describePortfolio(holdings []model.Holding, cash decimal.Decimal, report model.PnLReport) string {
	var b strings.Builder

	b.WriteString("Positions:\n")
	if len(holdings) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, h := range holdings {
		fmt.Fprintf(&b, "  %s: %d shares at average cost %s\n",
			h.Ticker, h.Quantity, h.AverageCost.StringFixed(2))
	}

	fmt.Fprintf(&b, "Cash balance: %s\n", cash.StringFixed(2))
	fmt.Fprintf(&b, "Total realized gain: %s\n", report.TotalRealized.StringFixed(2))
	fmt.Fprintf(&b, "Total unrealized gain: %s\n", report.TotalUnrealized.StringFixed(2))

	return b.String()
}
