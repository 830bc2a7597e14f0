// Package advisor turns a household's numbers into budgeting advice, either
// from a chat-completion model or from a deterministic fallback.
package advisor

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sdg1/budgetcoach/internal/calculator"
	"github.com/sdg1/budgetcoach/internal/models"
)

//go:embed system_prompt.txt
var defaultSystemPrompt string

const (
	temperature = 0.4
	callTimeout = 30 * time.Second

	chatFallback = "I'm having trouble connecting right now, but I'm here to help! Based on your question about budgeting, I recommend starting with the 50/30/20 rule: 50% for needs, 30% for wants, and 20% for savings and debt repayment. What's your current monthly income?"
)

// jsonSpan matches from the first '{' to the last '}', across lines.
var jsonSpan = regexp.MustCompile(`(?s)\{.*\}`)

var adviceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "budgetcoach_advice_total",
	Help: "Advice responses by kind and source.",
}, []string{"kind", "source"})

// ChatCompleter is the part of the OpenAI client the advisor uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config configures an Advisor.
type Config struct {
	APIKey string
	// BaseURL points at an OpenAI-compatible endpoint; empty uses api.openai.com.
	BaseURL          string
	Model            string
	SystemPromptPath string
	Currency         string
}

// Advisor produces plain-text budgeting advice.
type Advisor struct {
	client       ChatCompleter
	model        string
	systemPrompt string
	currency     string
	printer      *message.Printer
	logger       *slog.Logger
}

// New builds an Advisor. Without an API key every answer is the fallback text.
func New(cfg Config, logger *slog.Logger) (*Advisor, error) {
	prompt := defaultSystemPrompt
	if cfg.SystemPromptPath != "" {
		b, err := os.ReadFile(cfg.SystemPromptPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read system prompt: %w", err)
		}
		prompt = string(b)
	}

	var client ChatCompleter
	if cfg.APIKey != "" {
		oc := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			oc.BaseURL = cfg.BaseURL
		}
		client = openai.NewClientWithConfig(oc)
	} else {
		logger.Info("OPENAI_API_KEY not set, advice will use the built-in fallback")
	}

	return NewWithClient(client, cfg.Model, prompt, cfg.Currency, logger), nil
}

// NewWithClient builds an Advisor around an existing completer. client may be nil.
func NewWithClient(client ChatCompleter, model, systemPrompt, currency string, logger *slog.Logger) *Advisor {
	return &Advisor{
		client:       client,
		model:        model,
		systemPrompt: strings.TrimSpace(systemPrompt),
		currency:     currency,
		printer:      message.NewPrinter(language.English),
		logger:       logger,
	}
}

// Enabled reports whether a model is configured.
func (a *Advisor) Enabled() bool {
	return a.client != nil
}

// Advice returns budgeting tips for the household.
func (a *Advisor) Advice(ctx context.Context, profile models.HouseholdProfile, txs []models.Transaction) string {
	prompt := BuildPrompt(profile, txs) + " Provide friendly budgeting tips."
	return a.answer(ctx, "advice", prompt, func() string { return a.Fallback(profile, txs) })
}

// Chat answers a free-form question in the context of the household.
func (a *Advisor) Chat(ctx context.Context, profile models.HouseholdProfile, txs []models.Transaction, question string) string {
	prompt := BuildPrompt(profile, txs) + " Question: " + strings.TrimSpace(question)
	return a.answer(ctx, "chat", prompt, func() string { return chatFallback })
}

func (a *Advisor) answer(ctx context.Context, kind, userPrompt string, fallback func() string) string {
	if a.client == nil {
		adviceTotal.WithLabelValues(kind, "fallback").Inc()
		return fallback()
	}

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: a.systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		a.logger.Warn("Chat completion failed, using fallback", "kind", kind, "error", err)
		adviceTotal.WithLabelValues(kind, "fallback").Inc()
		return fallback()
	}
	if len(resp.Choices) == 0 {
		adviceTotal.WithLabelValues(kind, "fallback").Inc()
		return fallback()
	}

	text := StripJSON(resp.Choices[0].Message.Content)
	if text == "" {
		adviceTotal.WithLabelValues(kind, "fallback").Inc()
		return fallback()
	}

	adviceTotal.WithLabelValues(kind, "model").Inc()
	return text
}

// BuildPrompt describes the household as
// "Household size N, income = I. Expenses: cat = amt; cat = amt.".
func BuildPrompt(profile models.HouseholdProfile, txs []models.Transaction) string {
	lines := make([]string, 0, len(txs))
	for _, tx := range txs {
		lines = append(lines, fmt.Sprintf("%s = %d", tx.Category, tx.Amount))
	}
	return fmt.Sprintf("Household size %d, income = %d. Expenses: %s.",
		profile.HouseholdSize, profile.MonthlyIncome, strings.Join(lines, "; "))
}

// Fallback is the deterministic advice used when the model is unavailable.
func (a *Advisor) Fallback(profile models.HouseholdProfile, txs []models.Transaction) string {
	income := profile.MonthlyIncome
	left := calculator.Remaining(income, calculator.TotalExpenses(txs))
	save := calculator.SavingsTarget(left)

	return strings.Join([]string{
		a.printer.Sprintf("You make about %d %s each month.", income, a.currency),
		"Rent and food take most of it — that's okay.",
		"Try buying staples in bulk and reduce small phone costs.",
		fmt.Sprintf("You could aim to save about %d %s this month.", save, a.currency),
		"Keep going step by step — you're doing great!",
	}, " ")
}

// StripJSON removes any brace-delimited span and trims the result.
func StripJSON(s string) string {
	return strings.TrimSpace(jsonSpan.ReplaceAllString(s, ""))
}
