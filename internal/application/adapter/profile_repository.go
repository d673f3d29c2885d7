package adapter

import (
	"context"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ProfileRepository defines the interface for profile persistence operations.
type ProfileRepository interface {
	// FindByOwner returns domainerror.ErrProfileNotFound when the owner has not onboarded.
	FindByOwner(ctx context.Context, ownerID string) (*entity.Profile, error)

	// FindByEmail returns domainerror.ErrProfileNotFound when no profile uses the email.
	FindByEmail(ctx context.Context, email string) (*entity.Profile, error)

	// FindByUsername returns domainerror.ErrProfileNotFound when no profile uses the username.
	FindByUsername(ctx context.Context, username string) (*entity.Profile, error)

	// Upsert creates or replaces the owner's profile.
	Upsert(ctx context.Context, profile *entity.Profile) error

	// FindAllWithEmail lists every profile with a non-empty email.
	FindAllWithEmail(ctx context.Context) ([]*entity.Profile, error)
}
