package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ProfileModel represents the profiles table in the database.
type ProfileModel struct {
	OwnerID            string           `gorm:"type:varchar(191);primaryKey"`
	FullName           string           `gorm:"type:varchar(100);not null"`
	Email              string           `gorm:"type:varchar(255);not null;uniqueIndex"`
	Username           *string          `gorm:"type:varchar(30);uniqueIndex"`
	UserType           string           `gorm:"type:varchar(20);not null;default:individual"`
	IncomeTrackingMode string           `gorm:"type:varchar(20);not null;default:variableIncome"`
	MonthlyIncome      *decimal.Decimal `gorm:"type:decimal(15,2)"`
	MonthlyBudget      *decimal.Decimal `gorm:"type:decimal(15,2)"`
	SavingTarget       *decimal.Decimal `gorm:"type:decimal(15,2)"`
	CreatedAt          time.Time        `gorm:"not null"`
	UpdatedAt          time.Time        `gorm:"not null"`
}

// TableName returns the table name for the ProfileModel.
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToEntity converts a ProfileModel to a domain Profile entity.
func (m *ProfileModel) ToEntity() *entity.Profile {
	return &entity.Profile{
		OwnerID:            m.OwnerID,
		FullName:           m.FullName,
		Email:              m.Email,
		Username:           m.Username,
		UserType:           entity.UserType(m.UserType),
		IncomeTrackingMode: entity.IncomeTrackingMode(m.IncomeTrackingMode),
		MonthlyIncome:      m.MonthlyIncome,
		MonthlyBudget:      m.MonthlyBudget,
		SavingTarget:       m.SavingTarget,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ProfileFromEntity creates a ProfileModel from a domain Profile entity.
func ProfileFromEntity(profile *entity.Profile) *ProfileModel {
	return &ProfileModel{
		OwnerID:            profile.OwnerID,
		FullName:           profile.FullName,
		Email:              profile.Email,
		Username:           profile.Username,
		UserType:           string(profile.UserType),
		IncomeTrackingMode: string(profile.IncomeTrackingMode),
		MonthlyIncome:      profile.MonthlyIncome,
		MonthlyBudget:      profile.MonthlyBudget,
		SavingTarget:       profile.SavingTarget,
		CreatedAt:          profile.CreatedAt,
		UpdatedAt:          profile.UpdatedAt,
	}
}

// AllModels lists every model migrated at start-up.
func AllModels() []interface{} {
	return []interface{}{
		&ExpenseModel{},
		&RecurringPaymentModel{},
		&ProfileModel{},
	}
}
