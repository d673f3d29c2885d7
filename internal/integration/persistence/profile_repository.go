package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// profileRepository implements the adapter.ProfileRepository interface.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository instance.
func NewProfileRepository(db *gorm.DB) adapter.ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

// FindByOwner retrieves the owner's profile.
func (r *profileRepository) FindByOwner(ctx context.Context, ownerID string) (*entity.Profile, error) {
	return r.findOne(r.db.WithContext(ctx).Where("owner_id = ?", ownerID))
}

// FindByEmail retrieves the profile using email.
func (r *profileRepository) FindByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	return r.findOne(r.db.WithContext(ctx).Where("email = ?", email))
}

// FindByUsername retrieves the profile using username.
func (r *profileRepository) FindByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	return r.findOne(r.db.WithContext(ctx).Where("username = ?", username))
}

func (r *profileRepository) findOne(query *gorm.DB) (*entity.Profile, error) {
	var profileModel model.ProfileModel
	if err := query.First(&profileModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrProfileNotFound
		}
		return nil, err
	}
	return profileModel.ToEntity(), nil
}

// Upsert inserts the profile or replaces every column but created_at. A
// unique violation lost to a concurrent onboarding is reported as
// domainerror.ErrEmailInUse or domainerror.ErrUsernameInUse.
func (r *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name",
				"email",
				"username",
				"user_type",
				"income_tracking_mode",
				"monthly_income",
				"monthly_budget",
				"saving_target",
				"updated_at",
			}),
		}).
		Create(model.ProfileFromEntity(profile))
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			if strings.Contains(strings.ToLower(result.Error.Error()), "username") {
				return domainerror.ErrUsernameInUse
			}
			return domainerror.ErrEmailInUse
		}
		return result.Error
	}
	return nil
}

// FindAllWithEmail lists every profile that can receive email, by owner.
func (r *profileRepository) FindAllWithEmail(ctx context.Context) ([]*entity.Profile, error) {
	var profileModels []model.ProfileModel
	result := r.db.WithContext(ctx).
		Where("email IS NOT NULL AND email <> ''").
		Order("owner_id ASC").
		Find(&profileModels)
	if result.Error != nil {
		return nil, result.Error
	}

	profiles := make([]*entity.Profile, len(profileModels))
	for i := range profileModels {
		profiles[i] = profileModels[i].ToEntity()
	}
	return profiles, nil
}
