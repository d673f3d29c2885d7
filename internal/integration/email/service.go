package email

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
)

// DefaultCurrencySymbol prefixes amounts in emails.
const DefaultCurrencySymbol = "₹"

// Service renders application emails and hands them to an EmailSender.
type Service struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
	currency string
}

// NewService creates a new email service. A nil sender means no transport is
// configured and every send fails with a configuration error.
func NewService(sender adapter.EmailSender, renderer *templates.Renderer) *Service {
	return &Service{
		sender:   sender,
		renderer: renderer,
		currency: DefaultCurrencySymbol,
	}
}

// SendMonthlyReport renders the monthly report for the profile and sends it.
func (s *Service) SendMonthlyReport(ctx context.Context, input adapter.MonthlyReportEmailInput) (*adapter.SendEmailResult, error) {
	if s.sender == nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailNotConfigured,
			"email service not configured (missing RESEND_API_KEY or EMAIL_USER/EMAIL_PASS)",
			domainerror.ErrEmailNotConfigured,
		)
	}
	if !input.Profile.HasEmail() || input.Comparison == nil || input.Comparison.Current == nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"monthly report email requires a recipient and a report",
			domainerror.ErrInvalidTemplate,
		)
	}

	data := s.buildMonthlyReportData(input)

	html, text, err := s.renderer.Render(templates.MonthlyReport, data)
	if err != nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render monthly report email",
			errors.Join(domainerror.ErrTemplateRenderFailed, err),
		)
	}

	return s.sender.Send(ctx, adapter.SendEmailInput{
		To:      input.Profile.Email,
		Name:    input.Profile.FullName,
		Subject: MonthlyReportSubject(data.Period),
		HTML:    html,
		Text:    text,
	})
}

// MonthlyReportSubject returns the subject line for period ("M/YYYY").
func MonthlyReportSubject(period string) string {
	return "Your Monthly Expense Report - " + period
}

func (s *Service) buildMonthlyReportData(input adapter.MonthlyReportEmailInput) templates.MonthlyReportData {
	current := input.Comparison.Current
	summary := input.Comparison.Comparison

	name := input.Profile.FullName
	if name == "" {
		name = "User"
	}

	data := templates.MonthlyReportData{
		Name:              name,
		Period:            fmt.Sprintf("%d/%d", current.Month, current.Year),
		TotalExpense:      s.money(current.TotalExpense),
		TotalTransactions: current.TotalTransactions,
		PreviousTotal:     s.money(summary.PreviousTotal),
		ChangeType:        string(summary.ChangeType),
		Categories:        rowsOf(s, current.CategoryBreakdown),
		PaymentModes:      rowsOf(s, current.PaymentModeBreakdown),
		NeedVsWant:        rowsOf(s, current.NeedVsWantBreakdown),
	}
	if summary.PercentageChange != nil {
		data.PercentageChange = summary.PercentageChange.StringFixed(2) + "%"
	}

	if r := input.Review; r != nil {
		data.Review = &templates.ReviewData{
			Headline:   r.Headline,
			Score:      strconv.FormatFloat(r.Score, 'f', -1, 64),
			Summary:    r.Summary,
			Highlights: r.Highlights,
			Risks:      r.Risks,
			ActionPlan: r.ActionPlan,
		}
	}

	return data
}

func (s *Service) money(d decimal.Decimal) string {
	return s.currency + d.StringFixed(2)
}

// rowsOf sorts a breakdown by amount descending, then label. Labels are
// title-cased since categories are free text.
func rowsOf[K ~string](s *Service, m map[K]decimal.Decimal) []templates.BreakdownRow {
	title := cases.Title(language.English)

	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if c := m[keys[i]].Cmp(m[keys[j]]); c != 0 {
			return c > 0
		}
		return keys[i] < keys[j]
	})

	rows := make([]templates.BreakdownRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, templates.BreakdownRow{
			Label:  title.String(string(k)),
			Amount: s.money(m[k]),
		})
	}
	return rows
}

var _ adapter.EmailService = (*Service)(nil)
