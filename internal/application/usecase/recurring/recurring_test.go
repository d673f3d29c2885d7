package recurring

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

var testNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func recurringCode(err error) domainerror.RecurringErrorCode {
	var recErr *domainerror.RecurringError
	if errors.As(err, &recErr) {
		return recErr.Code
	}
	return ""
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestNormalizeVendorName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "trims and lowercases", in: "  Netflix ", want: "netflix"},
		{name: "too short", in: " N ", wantErr: true},
		{name: "too long", in: "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz", wantErr: true},
		{name: "exactly fifty", in: "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwx", want: "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeVendorName(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCreateRecurringPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		repo := adaptertest.NewRecurringPaymentRepository()
		uc := NewCreateRecurringPaymentUseCase(repo, adaptertest.NewClock(testNow))

		output, err := uc.Execute(ctx, CreateRecurringPaymentInput{
			OwnerID:    "user_1",
			VendorName: "Netflix",
			Amount:     decimal.RequireFromString("15.99"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		p := output.RecurringPayment
		if p.VendorName != "netflix" {
			t.Errorf("expected vendor netflix, got %s", p.VendorName)
		}
		if p.Category != entity.DefaultRecurringCategory {
			t.Errorf("expected default category, got %s", p.Category)
		}
		if p.Frequency != entity.FrequencyMonthly {
			t.Errorf("expected monthly, got %s", p.Frequency)
		}
		if !p.IsActive {
			t.Error("expected payment to be active")
		}
		if !p.StartDate.Equal(*date(2025, 3, 14)) {
			t.Errorf("expected start date today, got %v", p.StartDate)
		}
		if p.NextDueDate != nil {
			t.Errorf("expected no next due date, got %v", p.NextDueDate)
		}
	})

	t.Run("duplicate vendor conflicts", func(t *testing.T) {
		repo := adaptertest.NewRecurringPaymentRepository()
		uc := NewCreateRecurringPaymentUseCase(repo, adaptertest.NewClock(testNow))
		input := CreateRecurringPaymentInput{OwnerID: "user_1", VendorName: "Netflix", Amount: decimal.NewFromInt(10)}

		if _, err := uc.Execute(ctx, input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		input.VendorName = " NETFLIX"
		_, err := uc.Execute(ctx, input)
		if code := recurringCode(err); code != domainerror.ErrCodeDuplicateVendor {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeDuplicateVendor, code)
		}

		input.OwnerID = "user_2"
		if _, err := uc.Execute(ctx, input); err != nil {
			t.Errorf("expected other owner to reuse vendor, got %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name         string
			input        CreateRecurringPaymentInput
			expectedCode domainerror.RecurringErrorCode
		}{
			{
				name:         "zero amount",
				input:        CreateRecurringPaymentInput{VendorName: "spotify", Amount: decimal.Zero},
				expectedCode: domainerror.ErrCodeInvalidRecurringAmount,
			},
			{
				name:         "category too long",
				input:        CreateRecurringPaymentInput{VendorName: "spotify", Amount: decimal.NewFromInt(1), Category: "abcdefghijklmnopqrstuvwxyz12345"},
				expectedCode: domainerror.ErrCodeInvalidRecurringCategory,
			},
			{
				name:         "weekly frequency",
				input:        CreateRecurringPaymentInput{VendorName: "spotify", Amount: decimal.NewFromInt(1), Frequency: "weekly"},
				expectedCode: domainerror.ErrCodeInvalidFrequency,
			},
			{
				name: "next due before start",
				input: CreateRecurringPaymentInput{
					VendorName:  "spotify",
					Amount:      decimal.NewFromInt(1),
					StartDate:   date(2025, 3, 10),
					NextDueDate: date(2025, 3, 9),
				},
				expectedCode: domainerror.ErrCodeNextDueBeforeStart,
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := NewCreateRecurringPaymentUseCase(adaptertest.NewRecurringPaymentRepository(), adaptertest.NewClock(testNow))
				tt.input.OwnerID = "user_1"
				_, err := uc.Execute(ctx, tt.input)
				if code := recurringCode(err); code != tt.expectedCode {
					t.Errorf("expected code %s, got %s (%v)", tt.expectedCode, code, err)
				}
			})
		}
	})
}

func TestUpdateRecurringPayment(t *testing.T) {
	ctx := context.Background()
	repo := adaptertest.NewRecurringPaymentRepository()
	netflix := entity.NewRecurringPayment("user_1", "netflix", decimal.NewFromInt(10), "", *date(2025, 1, 1), date(2025, 4, 1))
	spotify := entity.NewRecurringPayment("user_1", "spotify", decimal.NewFromInt(5), "", *date(2025, 1, 1), nil)
	_ = repo.Create(ctx, netflix)
	_ = repo.Create(ctx, spotify)
	uc := NewUpdateRecurringPaymentUseCase(repo)

	t.Run("renaming onto an existing vendor conflicts", func(t *testing.T) {
		vendor := "Spotify"
		_, err := uc.Execute(ctx, UpdateRecurringPaymentInput{RecurringPaymentID: netflix.ID, OwnerID: "user_1", VendorName: &vendor})
		if code := recurringCode(err); code != domainerror.ErrCodeDuplicateVendor {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeDuplicateVendor, code)
		}
	})

	t.Run("keeping the same vendor is allowed", func(t *testing.T) {
		vendor := "NETFLIX"
		amount := decimal.NewFromInt(12)
		output, err := uc.Execute(ctx, UpdateRecurringPaymentInput{RecurringPaymentID: netflix.ID, OwnerID: "user_1", VendorName: &vendor, Amount: &amount})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.RecurringPayment.Amount.Equal(amount) {
			t.Errorf("expected amount %s, got %s", amount, output.RecurringPayment.Amount)
		}
	})

	t.Run("start date after next due date is rejected", func(t *testing.T) {
		_, err := uc.Execute(ctx, UpdateRecurringPaymentInput{RecurringPaymentID: netflix.ID, OwnerID: "user_1", StartDate: date(2025, 5, 1)})
		if code := recurringCode(err); code != domainerror.ErrCodeNextDueBeforeStart {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeNextDueBeforeStart, code)
		}
	})

	t.Run("other owner gets not found", func(t *testing.T) {
		amount := decimal.NewFromInt(1)
		_, err := uc.Execute(ctx, UpdateRecurringPaymentInput{RecurringPaymentID: netflix.ID, OwnerID: "user_2", Amount: &amount})
		if code := recurringCode(err); code != domainerror.ErrCodeRecurringNotFound {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeRecurringNotFound, code)
		}
	})
}

func TestToggleAndDeleteRecurringPayment(t *testing.T) {
	ctx := context.Background()
	repo := adaptertest.NewRecurringPaymentRepository()
	p := entity.NewRecurringPayment("user_1", "gym", decimal.NewFromInt(30), "Health", *date(2025, 1, 1), nil)
	_ = repo.Create(ctx, p)

	toggle := NewToggleRecurringPaymentUseCase(repo)
	output, err := toggle.Execute(ctx, ToggleRecurringPaymentInput{RecurringPaymentID: p.ID, OwnerID: "user_1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if output.RecurringPayment.IsActive {
		t.Error("expected payment to be paused")
	}
	output, _ = toggle.Execute(ctx, ToggleRecurringPaymentInput{RecurringPaymentID: p.ID, OwnerID: "user_1"})
	if !output.RecurringPayment.IsActive {
		t.Error("expected payment to be resumed")
	}

	del := NewDeleteRecurringPaymentUseCase(repo)
	if err := del.Execute(ctx, DeleteRecurringPaymentInput{RecurringPaymentID: p.ID, OwnerID: "user_2"}); !errors.Is(err, domainerror.ErrRecurringNotFound) {
		t.Errorf("expected not found for other owner, got %v", err)
	}
	if err := del.Execute(ctx, DeleteRecurringPaymentInput{RecurringPaymentID: p.ID, OwnerID: "user_1"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if repo.Get(p.ID) != nil {
		t.Error("expected payment to be removed")
	}
}
