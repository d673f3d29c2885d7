package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// FallbackReviewer implements adapter.ReviewGenerator over a prioritized list
// of completion backends. Backends are tried in order until one returns a
// parsable review.
type FallbackReviewer struct {
	backends []adapter.CompletionBackend
	timeout  time.Duration
}

// NewFallbackReviewer creates a reviewer trying backends in the given order.
func NewFallbackReviewer(backends ...adapter.CompletionBackend) *FallbackReviewer {
	return &FallbackReviewer{backends: backends}
}

// WithTimeout bounds every backend call to d. Zero disables the bound.
func (r *FallbackReviewer) WithTimeout(d time.Duration) *FallbackReviewer {
	r.timeout = d
	return r
}

// IsAvailable reports whether at least one backend is configured.
func (r *FallbackReviewer) IsAvailable() bool {
	return len(r.backends) > 0
}

// GenerateReview builds the prompt once and asks each backend in turn. When
// every backend fails the last failure is returned.
func (r *FallbackReviewer) GenerateReview(ctx context.Context, request *adapter.ReviewRequest) (*entity.AIReview, error) {
	if !r.IsAvailable() {
		return nil, domainerror.NewAIError(domainerror.ErrCodeAINotConfigured, "no AI backend is configured", domainerror.ErrAINotConfigured)
	}

	prompt := BuildReviewPrompt(request)

	var lastErr error
	for _, backend := range r.backends {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := r.complete(ctx, backend, prompt)
		if err == nil {
			var review *entity.AIReview
			review, err = ParseReview(text)
			if err == nil {
				review.Model = backend.Name()
				return review, nil
			}
		}

		lastErr = err
		slog.Warn("AI backend failed, trying next", "model", backend.Name(), "error", err)
	}

	var aiErr *domainerror.AIError
	if errors.As(lastErr, &aiErr) {
		return nil, lastErr
	}
	return nil, domainerror.NewAIError(domainerror.ErrCodeAIAllModelsError, "no AI backend produced a review", lastErr)
}

func (r *FallbackReviewer) complete(ctx context.Context, backend adapter.CompletionBackend, prompt string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return backend.Complete(ctx, prompt)
}

// BuildReviewPrompt renders the monthly report and the profile into the
// instructions sent to the model.
func BuildReviewPrompt(request *adapter.ReviewRequest) string {
	current := entity.NewEmptyMonthlyReport(0, 0)
	previous := entity.NewEmptyMonthlyReport(0, 0)
	changeType := entity.ChangeTypeNoChange
	if c := request.Comparison; c != nil {
		if c.Current != nil {
			current = c.Current
		}
		if c.Previous != nil {
			previous = c.Previous
		}
		if c.Comparison.ChangeType != "" {
			changeType = c.Comparison.ChangeType
		}
	}

	name := "User"
	userType := string(entity.UserTypeIndividual)
	var income, budget, saving *decimal.Decimal
	if p := request.Profile; p != nil {
		if p.FullName != "" {
			name = p.FullName
		}
		if p.UserType != "" {
			userType = string(p.UserType)
		}
		income, budget, saving = p.MonthlyIncome, p.MonthlyBudget, p.SavingTarget
	}

	var sb strings.Builder

	sb.WriteString("You are a friendly personal finance assistant analyzing spending data for a user.\n\n")

	sb.WriteString("User profile:\n")
	sb.WriteString(fmt.Sprintf("- Name: %s\n", name))
	sb.WriteString(fmt.Sprintf("- Type: %s\n", userType))
	sb.WriteString(fmt.Sprintf("- Monthly income: %s\n", optionalAmount(income)))
	sb.WriteString(fmt.Sprintf("- Monthly budget: %s\n", optionalAmount(budget)))
	sb.WriteString(fmt.Sprintf("- Saving target: %s\n\n", optionalAmount(saving)))

	sb.WriteString(fmt.Sprintf("Month: %d/%d\n\n", current.Month, current.Year))

	sb.WriteString("Current month spending:\n")
	sb.WriteString(fmt.Sprintf("- Total: $%s\n", current.TotalExpense.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("- Transactions: %d\n", current.TotalTransactions))
	sb.WriteString(fmt.Sprintf("- Categories: %s\n", formatBreakdown(current.CategoryBreakdown)))
	sb.WriteString(fmt.Sprintf("- Needs vs Wants: %s\n", formatBreakdown(current.NeedVsWantBreakdown)))
	sb.WriteString(fmt.Sprintf("- Payment methods: %s\n\n", formatBreakdown(current.PaymentModeBreakdown)))

	sb.WriteString(fmt.Sprintf("Previous month: $%s\n", previous.TotalExpense.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Change: %s\n", changeType))

	sb.WriteString(`
INSTRUCTIONS:
1. Analyze the spending patterns thoughtfully
2. If spending is $0, encourage the user to start tracking expenses
3. Compare against budget if provided
4. Be supportive and constructive, not judgmental
5. Keep language natural and conversational
6. DO NOT use markdown formatting (no **, __, [], etc.) - just plain text
7. Be specific with numbers and percentages

Return ONLY valid JSON (no markdown wrapper, no extra text):
{
  "headline": "A catchy, encouraging one-line summary (plain text, no formatting)",
  "score": number between 0-10,
  "summary": "2-3 sentence overview with specific numbers and insights",
  "highlights": ["3 positive observations about their spending"],
  "risks": ["2 areas of concern or potential issues"],
  "actionPlan": ["3 concrete, actionable steps"]
}
`)

	return sb.String()
}

func optionalAmount(d *decimal.Decimal) string {
	if d == nil {
		return "not provided"
	}
	return "$" + d.StringFixed(2)
}

// formatBreakdown renders a breakdown as {"key": amount, ...} with sorted keys.
func formatBreakdown[K ~string](m map[K]decimal.Decimal) string {
	if len(m) == 0 {
		return "{}"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q: %s", k, m[K(k)].StringFixed(2)))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// rawReview keeps every field loosely typed so that a model answering with
// the wrong shape is normalized instead of rejected.
type rawReview struct {
	Headline   any `json:"headline"`
	Score      any `json:"score"`
	Summary    any `json:"summary"`
	Highlights any `json:"highlights"`
	Risks      any `json:"risks"`
	ActionPlan any `json:"actionPlan"`
}

// ParseReview extracts the JSON object spanning from the first '{' to the
// last '}' of text and normalizes it. The score is forced into [0,10] (0 when
// not a number) and list fields that are not arrays become empty.
func ParseReview(text string) (*entity.AIReview, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, domainerror.NewAIError(domainerror.ErrCodeAINoJSON, "model did not return JSON", domainerror.ErrAINoJSON)
	}

	var raw rawReview
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return nil, domainerror.NewAIError(domainerror.ErrCodeAIInvalidJSON, "model returned invalid JSON", errors.Join(domainerror.ErrAIInvalidJSON, err))
	}

	return &entity.AIReview{
		Headline:   asString(raw.Headline),
		Score:      clampScore(raw.Score),
		Summary:    asString(raw.Summary),
		Highlights: asStringList(raw.Highlights),
		Risks:      asStringList(raw.Risks),
		ActionPlan: asStringList(raw.ActionPlan),
	}, nil
}

func clampScore(v any) float64 {
	score, ok := v.(float64)
	if !ok {
		return entity.MinReviewScore
	}
	if score > entity.MaxReviewScore {
		return entity.MaxReviewScore
	}
	if score < entity.MinReviewScore {
		return entity.MinReviewScore
	}
	return score
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case string:
			result = append(result, t)
		case nil:
		default:
			result = append(result, fmt.Sprint(t))
		}
	}
	return result
}

var _ adapter.ReviewGenerator = (*FallbackReviewer)(nil)
