package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// GetProfileInput identifies the profile to load.
type GetProfileInput struct {
	OwnerID string
}

// GetProfileOutput represents the caller's profile.
type GetProfileOutput struct {
	Profile *entity.Profile
}

// GetProfileUseCase loads the caller's profile.
type GetProfileUseCase struct {
	profileRepo adapter.ProfileRepository
}

// NewGetProfileUseCase creates a new GetProfileUseCase instance.
func NewGetProfileUseCase(profileRepo adapter.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: profileRepo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	profile, err := uc.profileRepo.FindByOwner(ctx, input.OwnerID)
	if err != nil {
		if errors.Is(err, domainerror.ErrProfileNotFound) {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeProfileNotFound,
				"Profile not found. Please onboard first.",
				domainerror.ErrProfileNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &GetProfileOutput{Profile: profile}, nil
}
