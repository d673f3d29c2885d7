package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

func newExpense(amount string, category string, mode entity.PaymentMode, kind entity.EssentialType, date time.Time) *entity.Expense {
	return entity.NewExpense("user_1", decimal.RequireFromString(amount), category, "", mode, kind, date)
}

func march(day int) time.Time {
	return time.Date(2025, 3, day, 0, 0, 0, 0, time.UTC)
}

func TestBuildMonthlyReport(t *testing.T) {
	period := valueobject.MonthPeriod{Month: 3, Year: 2025}

	t.Run("empty month yields zeros and empty maps", func(t *testing.T) {
		r := BuildMonthlyReport(period, nil)
		if !r.TotalExpense.IsZero() {
			t.Errorf("expected zero total, got %s", r.TotalExpense)
		}
		if r.TotalTransactions != 0 {
			t.Errorf("expected 0 transactions, got %d", r.TotalTransactions)
		}
		if len(r.CategoryBreakdown) != 0 || len(r.PaymentModeBreakdown) != 0 || len(r.NeedVsWantBreakdown) != 0 {
			t.Error("expected empty breakdowns")
		}
	})

	t.Run("sums per category mode and type", func(t *testing.T) {
		expenses := []*entity.Expense{
			newExpense("100", "Food", entity.PaymentModeUPI, entity.EssentialTypeNeed, march(1)),
			newExpense("200", "Food", entity.PaymentModeCard, entity.EssentialTypeWant, march(15)),
			newExpense("50", "Travel", entity.PaymentModeUPI, entity.EssentialTypeNeed, march(31)),
			newExpense("999", "Food", entity.PaymentModeUPI, entity.EssentialTypeNeed, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)),
		}

		r := BuildMonthlyReport(period, expenses)

		if !r.TotalExpense.Equal(decimal.NewFromInt(350)) {
			t.Errorf("expected total 350, got %s", r.TotalExpense)
		}
		if r.TotalTransactions != 3 {
			t.Errorf("expected 3 transactions, got %d", r.TotalTransactions)
		}
		if got := r.CategoryBreakdown["Food"]; !got.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected Food 300, got %s", got)
		}
		if got := r.CategoryBreakdown["Travel"]; !got.Equal(decimal.NewFromInt(50)) {
			t.Errorf("expected Travel 50, got %s", got)
		}
		if _, ok := r.PaymentModeBreakdown[entity.PaymentModeCash]; ok {
			t.Error("expected absent payment modes to be omitted")
		}

		for name, breakdown := range map[string]decimal.Decimal{
			"category":     sum(r.CategoryBreakdown),
			"payment mode": sum(r.PaymentModeBreakdown),
			"need vs want": sum(r.NeedVsWantBreakdown),
		} {
			if !breakdown.Equal(r.TotalExpense) {
				t.Errorf("%s breakdown sums to %s, expected %s", name, breakdown, r.TotalExpense)
			}
		}
	})
}

func sum[K comparable](m map[K]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range m {
		total = total.Add(v)
	}
	return total
}

func TestCompare(t *testing.T) {
	report := func(total string) *entity.MonthlyReport {
		r := entity.NewEmptyMonthlyReport(3, 2025)
		r.TotalExpense = decimal.RequireFromString(total)
		return r
	}

	tests := []struct {
		name        string
		current     string
		previous    string
		wantType    entity.ChangeType
		wantDiff    string
		wantPercent *string
	}{
		{name: "increase", current: "150", previous: "100", wantType: entity.ChangeTypeIncreased, wantDiff: "50", wantPercent: strPtr("50")},
		{name: "decrease", current: "75", previous: "100", wantType: entity.ChangeTypeDecreased, wantDiff: "-25", wantPercent: strPtr("-25")},
		{name: "equal", current: "100", previous: "100", wantType: entity.ChangeTypeNoChange, wantDiff: "0", wantPercent: strPtr("0")},
		{name: "tiny increase is still an increase", current: "100.01", previous: "100", wantType: entity.ChangeTypeIncreased, wantDiff: "0.01", wantPercent: strPtr("0.01")},
		{name: "previous zero omits percentage", current: "40", previous: "0", wantType: entity.ChangeTypeIncreased, wantDiff: "40"},
		{name: "both zero", current: "0", previous: "0", wantType: entity.ChangeTypeNoChange, wantDiff: "0"},
		{name: "rounds to two decimals", current: "200", previous: "300", wantType: entity.ChangeTypeDecreased, wantDiff: "-100", wantPercent: strPtr("-33.33")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compare(report(tt.current), report(tt.previous))

			if got.ChangeType != tt.wantType {
				t.Errorf("expected change type %s, got %s", tt.wantType, got.ChangeType)
			}
			if !got.Difference.Equal(decimal.RequireFromString(tt.wantDiff)) {
				t.Errorf("expected difference %s, got %s", tt.wantDiff, got.Difference)
			}
			switch {
			case tt.wantPercent == nil && got.PercentageChange != nil:
				t.Errorf("expected no percentage, got %s", got.PercentageChange)
			case tt.wantPercent != nil && got.PercentageChange == nil:
				t.Errorf("expected percentage %s, got nil", *tt.wantPercent)
			case tt.wantPercent != nil && !got.PercentageChange.Equal(decimal.RequireFromString(*tt.wantPercent)):
				t.Errorf("expected percentage %s, got %s", *tt.wantPercent, got.PercentageChange)
			}
		})
	}
}

func strPtr(s string) *string { return &s }

func TestGetComparison(t *testing.T) {
	ctx := context.Background()
	repo := adaptertest.NewExpenseRepository()
	_ = repo.Create(ctx, newExpense("80", "Food", entity.PaymentModeUPI, entity.EssentialTypeNeed, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	_ = repo.Create(ctx, newExpense("120", "Food", entity.PaymentModeUPI, entity.EssentialTypeNeed, time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)))

	uc := NewGetComparisonUseCase(repo)

	output, err := uc.Execute(ctx, GetComparisonInput{OwnerID: "user_1", Month: 1, Year: 2025})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := output.Comparison
	if c.Previous.Month != 12 || c.Previous.Year != 2024 {
		t.Errorf("expected previous period 12/2024, got %d/%d", c.Previous.Month, c.Previous.Year)
	}
	if !c.Comparison.CurrentTotal.Equal(decimal.NewFromInt(120)) || !c.Comparison.PreviousTotal.Equal(decimal.NewFromInt(80)) {
		t.Errorf("unexpected totals %s / %s", c.Comparison.CurrentTotal, c.Comparison.PreviousTotal)
	}
	if c.Comparison.ChangeType != entity.ChangeTypeIncreased {
		t.Errorf("expected increased, got %s", c.Comparison.ChangeType)
	}

	t.Run("invalid month", func(t *testing.T) {
		_, err := uc.Execute(ctx, GetComparisonInput{OwnerID: "user_1", Month: 0, Year: 2025})
		if !errors.Is(err, domainerror.ErrInvalidReportMonth) {
			t.Errorf("expected invalid month error, got %v", err)
		}
	})

	t.Run("invalid year", func(t *testing.T) {
		_, err := uc.Execute(ctx, GetComparisonInput{OwnerID: "user_1", Month: 1, Year: 1999})
		if !errors.Is(err, domainerror.ErrInvalidReportYear) {
			t.Errorf("expected invalid year error, got %v", err)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		failing := adaptertest.NewExpenseRepository()
		failing.FindErr = errors.New("connection refused")
		_, err := NewGetComparisonUseCase(failing).Execute(ctx, GetComparisonInput{OwnerID: "user_1", Month: 1, Year: 2025})
		var rptErr *domainerror.ReportError
		if !errors.As(err, &rptErr) || rptErr.Code != domainerror.ErrCodeReportInternal {
			t.Errorf("expected internal report error, got %v", err)
		}
	})
}
