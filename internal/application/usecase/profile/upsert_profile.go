// Package profile contains profile onboarding use cases.
package profile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 30
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UpsertProfileInput represents the onboarding payload of an owner.
type UpsertProfileInput struct {
	OwnerID            string
	FullName           string
	Email              string
	Username           *string
	UserType           entity.UserType
	IncomeTrackingMode entity.IncomeTrackingMode
	MonthlyIncome      *decimal.Decimal
	MonthlyBudget      *decimal.Decimal
	SavingTarget       *decimal.Decimal
}

// UpsertProfileOutput represents the stored profile.
type UpsertProfileOutput struct {
	Profile *entity.Profile
}

// UpsertProfileUseCase creates or replaces the caller's profile.
type UpsertProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewUpsertProfileUseCase creates a new UpsertProfileUseCase instance.
func NewUpsertProfileUseCase(profileRepo adapter.ProfileRepository) *UpsertProfileUseCase {
	return &UpsertProfileUseCase{profileRepo: profileRepo}
}

// Execute validates the payload, checks email and username ownership and stores the profile.
func (uc *UpsertProfileUseCase) Execute(ctx context.Context, input UpsertProfileInput) (*UpsertProfileOutput, error) {
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeMissingFullName,
			"fullName is required",
			domainerror.ErrMissingFullName,
		)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailRegex.MatchString(email) {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	var username *string
	if input.Username != nil {
		u := strings.ToLower(strings.TrimSpace(*input.Username))
		if u != "" {
			if n := utf8.RuneCountInString(u); n < minUsernameLength || n > maxUsernameLength {
				return nil, domainerror.NewProfileError(
					domainerror.ErrCodeInvalidUsername,
					fmt.Sprintf("username must be between %d and %d characters", minUsernameLength, maxUsernameLength),
					domainerror.ErrInvalidUsername,
				)
			}
			username = &u
		}
	}

	userType := input.UserType
	if userType == "" {
		userType = entity.UserTypeIndividual
	}
	if !userType.IsValid() {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeInvalidUserType,
			"userType must be one of: student, individual, business",
			domainerror.ErrInvalidUserType,
		)
	}

	incomeMode := input.IncomeTrackingMode
	if incomeMode == "" {
		incomeMode = entity.IncomeModeVariable
	}
	if !incomeMode.IsValid() {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeInvalidIncomeMode,
			"incomeTrackingMode must be one of: fixedIncome, variableIncome",
			domainerror.ErrInvalidIncomeMode,
		)
	}

	for _, v := range []*decimal.Decimal{input.MonthlyIncome, input.MonthlyBudget, input.SavingTarget} {
		if v != nil && v.IsNegative() {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeNegativeProfileValue,
				"monthlyIncome, monthlyBudget and savingTarget cannot be negative",
				domainerror.ErrNegativeProfileValue,
			)
		}
	}

	if err := uc.ensureEmailAvailable(ctx, input.OwnerID, email); err != nil {
		return nil, err
	}
	if username != nil {
		if err := uc.ensureUsernameAvailable(ctx, input.OwnerID, *username); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	profile := &entity.Profile{
		OwnerID:            input.OwnerID,
		FullName:           fullName,
		Email:              email,
		Username:           username,
		UserType:           userType,
		IncomeTrackingMode: incomeMode,
		MonthlyBudget:      input.MonthlyBudget,
		SavingTarget:       input.SavingTarget,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	// Income is only meaningful when it is fixed.
	if incomeMode == entity.IncomeModeFixed {
		profile.MonthlyIncome = input.MonthlyIncome
	}

	existing, err := uc.profileRepo.FindByOwner(ctx, input.OwnerID)
	switch {
	case err == nil:
		profile.CreatedAt = existing.CreatedAt
	case !errors.Is(err, domainerror.ErrProfileNotFound):
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		switch {
		case errors.Is(err, domainerror.ErrEmailInUse):
			return nil, emailInUseError()
		case errors.Is(err, domainerror.ErrUsernameInUse):
			return nil, usernameInUseError()
		}
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return &UpsertProfileOutput{Profile: profile}, nil
}

func (uc *UpsertProfileUseCase) ensureEmailAvailable(ctx context.Context, ownerID, email string) error {
	other, err := uc.profileRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if other.OwnerID != ownerID {
		return emailInUseError()
	}
	return nil
}

func (uc *UpsertProfileUseCase) ensureUsernameAvailable(ctx context.Context, ownerID, username string) error {
	other, err := uc.profileRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil
		}
		return fmt.Errorf("failed to check username: %w", err)
	}
	if other.OwnerID != ownerID {
		return usernameInUseError()
	}
	return nil
}

func emailInUseError() error {
	return domainerror.NewProfileError(
		domainerror.ErrCodeEmailInUse,
		"This email is already linked to another account.",
		domainerror.ErrEmailInUse,
	)
}

func usernameInUseError() error {
	return domainerror.NewProfileError(
		domainerror.ErrCodeUsernameInUse,
		"Username already taken. Please choose another.",
		domainerror.ErrUsernameInUse,
	)
}
