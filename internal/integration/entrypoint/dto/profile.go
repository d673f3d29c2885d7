package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// UpsertProfileRequest represents the onboarding payload.
type UpsertProfileRequest struct {
	FullName           string           `json:"fullName"`
	Email              string           `json:"email"`
	Username           *string          `json:"username"`
	UserType           string           `json:"userType"`
	IncomeTrackingMode string           `json:"incomeTrackingMode"`
	MonthlyIncome      *decimal.Decimal `json:"monthlyIncome"`
	MonthlyBudget      *decimal.Decimal `json:"monthlyBudget"`
	SavingTarget       *decimal.Decimal `json:"savingTarget"`
}

// ProfileResponse represents a profile in API responses.
type ProfileResponse struct {
	OwnerID            string    `json:"ownerId"`
	FullName           string    `json:"fullName"`
	Email              string    `json:"email"`
	Username           *string   `json:"username"`
	UserType           string    `json:"userType"`
	IncomeTrackingMode string    `json:"incomeTrackingMode"`
	MonthlyIncome      *float64  `json:"monthlyIncome"`
	MonthlyBudget      *float64  `json:"monthlyBudget"`
	SavingTarget       *float64  `json:"savingTarget"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// ToProfileResponse converts a domain Profile entity.
func ToProfileResponse(p *entity.Profile) ProfileResponse {
	return ProfileResponse{
		OwnerID:            p.OwnerID,
		FullName:           p.FullName,
		Email:              p.Email,
		Username:           p.Username,
		UserType:           string(p.UserType),
		IncomeTrackingMode: string(p.IncomeTrackingMode),
		MonthlyIncome:      toOptionalFloat(p.MonthlyIncome),
		MonthlyBudget:      toOptionalFloat(p.MonthlyBudget),
		SavingTarget:       toOptionalFloat(p.SavingTarget),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
