package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter/adaptertest"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func profileCode(err error) domainerror.ProfileErrorCode {
	var prfErr *domainerror.ProfileError
	if errors.As(err, &prfErr) {
		return prfErr.Code
	}
	return ""
}

func strPtr(s string) *string { return &s }

func TestUpsertProfile(t *testing.T) {
	ctx := context.Background()
	income := decimal.NewFromInt(50000)

	t.Run("stores normalized profile", func(t *testing.T) {
		repo := adaptertest.NewProfileRepository()
		uc := NewUpsertProfileUseCase(repo)

		output, err := uc.Execute(ctx, UpsertProfileInput{
			OwnerID:            "user_1",
			FullName:           " Asha Rao ",
			Email:              "Asha@Example.com",
			Username:           strPtr("AshaR"),
			UserType:           entity.UserTypeStudent,
			IncomeTrackingMode: entity.IncomeModeFixed,
			MonthlyIncome:      &income,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p := output.Profile
		if p.Email != "asha@example.com" {
			t.Errorf("expected lowercase email, got %s", p.Email)
		}
		if p.Username == nil || *p.Username != "ashar" {
			t.Errorf("expected lowercase username, got %v", p.Username)
		}
		if p.MonthlyIncome == nil || !p.MonthlyIncome.Equal(income) {
			t.Errorf("expected fixed income to be kept, got %v", p.MonthlyIncome)
		}
	})

	t.Run("variable income drops monthly income", func(t *testing.T) {
		repo := adaptertest.NewProfileRepository()
		uc := NewUpsertProfileUseCase(repo)

		output, err := uc.Execute(ctx, UpsertProfileInput{
			OwnerID:            "user_1",
			FullName:           "Asha",
			Email:              "asha@example.com",
			IncomeTrackingMode: entity.IncomeModeVariable,
			MonthlyIncome:      &income,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Profile.MonthlyIncome != nil {
			t.Errorf("expected monthly income to be dropped, got %v", output.Profile.MonthlyIncome)
		}
	})

	t.Run("email and username of another owner conflict", func(t *testing.T) {
		repo := adaptertest.NewProfileRepository()
		uc := NewUpsertProfileUseCase(repo)
		_, err := uc.Execute(ctx, UpsertProfileInput{OwnerID: "user_1", FullName: "A", Email: "a@example.com", Username: strPtr("alpha")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err = uc.Execute(ctx, UpsertProfileInput{OwnerID: "user_2", FullName: "B", Email: "A@example.com"})
		if code := profileCode(err); code != domainerror.ErrCodeEmailInUse {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeEmailInUse, code)
		}

		_, err = uc.Execute(ctx, UpsertProfileInput{OwnerID: "user_2", FullName: "B", Email: "b@example.com", Username: strPtr("ALPHA")})
		if code := profileCode(err); code != domainerror.ErrCodeUsernameInUse {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeUsernameInUse, code)
		}

		// Re-submitting one's own email is an update, not a conflict.
		if _, err := uc.Execute(ctx, UpsertProfileInput{OwnerID: "user_1", FullName: "A2", Email: "a@example.com", Username: strPtr("alpha")}); err != nil {
			t.Errorf("unexpected error on self update: %v", err)
		}
	})

	t.Run("validation", func(t *testing.T) {
		negative := decimal.NewFromInt(-1)
		tests := []struct {
			name         string
			input        UpsertProfileInput
			expectedCode domainerror.ProfileErrorCode
		}{
			{name: "missing name", input: UpsertProfileInput{Email: "a@example.com"}, expectedCode: domainerror.ErrCodeMissingFullName},
			{name: "bad email", input: UpsertProfileInput{FullName: "A", Email: "not-an-email"}, expectedCode: domainerror.ErrCodeInvalidEmail},
			{name: "short username", input: UpsertProfileInput{FullName: "A", Email: "a@example.com", Username: strPtr("ab")}, expectedCode: domainerror.ErrCodeInvalidUsername},
			{name: "bad user type", input: UpsertProfileInput{FullName: "A", Email: "a@example.com", UserType: "robot"}, expectedCode: domainerror.ErrCodeInvalidUserType},
			{name: "bad income mode", input: UpsertProfileInput{FullName: "A", Email: "a@example.com", IncomeTrackingMode: "lottery"}, expectedCode: domainerror.ErrCodeInvalidIncomeMode},
			{name: "negative budget", input: UpsertProfileInput{FullName: "A", Email: "a@example.com", MonthlyBudget: &negative}, expectedCode: domainerror.ErrCodeNegativeProfileValue},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc := NewUpsertProfileUseCase(adaptertest.NewProfileRepository())
				tt.input.OwnerID = "user_1"
				_, err := uc.Execute(ctx, tt.input)
				if code := profileCode(err); code != tt.expectedCode {
					t.Errorf("expected code %s, got %s", tt.expectedCode, code)
				}
			})
		}
	})
}

func TestGetProfile_NotOnboarded(t *testing.T) {
	uc := NewGetProfileUseCase(adaptertest.NewProfileRepository())

	_, err := uc.Execute(context.Background(), GetProfileInput{OwnerID: "user_1"})
	if code := profileCode(err); code != domainerror.ErrCodeProfileNotFound {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeProfileNotFound, code)
	}
}
