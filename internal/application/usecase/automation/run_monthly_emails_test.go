package automation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

type emailFixture struct {
	uc        *RunMonthlyEmailsUseCase
	expenses  *adaptertest.ExpenseRepository
	profiles  *adaptertest.ProfileRepository
	generator *adaptertest.ReviewGenerator
	emails    *adaptertest.EmailService
}

func newEmailFixture(now time.Time, generator *adaptertest.ReviewGenerator) *emailFixture {
	f := &emailFixture{
		expenses:  adaptertest.NewExpenseRepository(),
		profiles:  adaptertest.NewProfileRepository(),
		generator: generator,
		emails:    &adaptertest.EmailService{},
	}
	f.uc = NewRunMonthlyEmailsUseCase(
		f.profiles,
		report.NewGetComparisonUseCase(f.expenses),
		f.generator,
		f.emails,
		adaptertest.NewClock(now),
	)
	return f
}

func (f *emailFixture) addProfile(t *testing.T, ownerID, email string) {
	t.Helper()
	if err := f.profiles.Upsert(context.Background(), &entity.Profile{OwnerID: ownerID, FullName: ownerID, Email: email}); err != nil {
		t.Fatalf("failed to add profile: %v", err)
	}
}

func TestRunMonthlyEmails_ReportsPreviousMonth(t *testing.T) {
	ctx := context.Background()
	generator := &adaptertest.ReviewGenerator{Available: true, Review: &entity.AIReview{Headline: "Steady", Score: 6}}
	f := newEmailFixture(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC), generator)
	f.addProfile(t, "user_1", "one@example.com")

	_ = f.expenses.Create(ctx, entity.NewExpense("user_1", decimal.NewFromInt(120), "Food", "", "", "", date(2024, 12, 5)))
	_ = f.expenses.Create(ctx, entity.NewExpense("user_1", decimal.NewFromInt(80), "Food", "", "", "", date(2024, 11, 5)))
	_ = f.expenses.Create(ctx, entity.NewExpense("user_1", decimal.NewFromInt(999), "Food", "", "", "", date(2025, 1, 1)))

	output, err := f.uc.Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.Month != 12 || output.Year != 2024 {
		t.Errorf("expected 12/2024, got %d/%d", output.Month, output.Year)
	}
	if output.SentCount != 1 || output.FailedCount != 0 || output.NarrativeFailedCount != 0 {
		t.Fatalf("unexpected output %+v", output)
	}

	sent := f.emails.Sent[0]
	if !sent.Comparison.Current.TotalExpense.Equal(decimal.NewFromInt(120)) {
		t.Errorf("expected current total 120, got %s", sent.Comparison.Current.TotalExpense)
	}
	if !sent.Comparison.Previous.TotalExpense.Equal(decimal.NewFromInt(80)) {
		t.Errorf("expected previous total 80, got %s", sent.Comparison.Previous.TotalExpense)
	}
	if sent.Review == nil || sent.Review.Headline != "Steady" {
		t.Errorf("expected review to be attached, got %+v", sent.Review)
	}
}

func TestRunMonthlyEmails_SendsWithoutNarrative(t *testing.T) {
	tests := []struct {
		name      string
		generator *adaptertest.ReviewGenerator
	}{
		{name: "generator fails", generator: &adaptertest.ReviewGenerator{Available: true, Err: errors.New("quota exceeded")}},
		{name: "generator not configured", generator: &adaptertest.ReviewGenerator{Available: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEmailFixture(date(2025, 4, 1), tt.generator)
			f.addProfile(t, "user_1", "one@example.com")

			output, err := f.uc.Execute(context.Background())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.SentCount != 1 || output.NarrativeFailedCount != 1 {
				t.Errorf("unexpected output %+v", output)
			}
			if f.emails.Sent[0].Review != nil {
				t.Error("expected email without review")
			}
		})
	}
}

func TestRunMonthlyEmails_IsolatesSendFailures(t *testing.T) {
	f := newEmailFixture(date(2025, 4, 1), &adaptertest.ReviewGenerator{Available: true, Review: &entity.AIReview{}})
	f.addProfile(t, "user_1", "bad@example.com")
	f.addProfile(t, "user_2", "good@example.com")
	f.emails.FailFor = map[string]error{"bad@example.com": errors.New("mailbox unavailable")}

	output, err := f.uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.SentCount != 1 || output.FailedCount != 1 {
		t.Errorf("unexpected output %+v", output)
	}
	if len(f.emails.Sent) != 1 || f.emails.Sent[0].Profile.OwnerID != "user_2" {
		t.Errorf("expected only user_2 to be emailed, got %+v", f.emails.Sent)
	}
}

func TestRunMonthlyEmails_SkipsProfilesWithoutEmail(t *testing.T) {
	f := newEmailFixture(date(2025, 4, 1), &adaptertest.ReviewGenerator{Available: true, Review: &entity.AIReview{}})
	f.addProfile(t, "user_1", "")

	output, err := f.uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.SentCount != 0 || output.FailedCount != 0 {
		t.Errorf("unexpected output %+v", output)
	}
}
