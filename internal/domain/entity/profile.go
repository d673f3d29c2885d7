package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserType describes who the profile belongs to.
type UserType string

const (
	UserTypeStudent    UserType = "student"
	UserTypeIndividual UserType = "individual"
	UserTypeBusiness   UserType = "business"
)

// IsValid reports whether the user type is supported.
func (u UserType) IsValid() bool {
	switch u {
	case UserTypeStudent, UserTypeIndividual, UserTypeBusiness:
		return true
	}
	return false
}

// IncomeTrackingMode describes how the owner's income is tracked.
type IncomeTrackingMode string

const (
	IncomeModeFixed    IncomeTrackingMode = "fixedIncome"
	IncomeModeVariable IncomeTrackingMode = "variableIncome"
)

// IsValid reports whether the income mode is supported.
func (m IncomeTrackingMode) IsValid() bool {
	return m == IncomeModeFixed || m == IncomeModeVariable
}

// Profile holds the onboarding information of an owner.
type Profile struct {
	OwnerID            string
	FullName           string
	Email              string // lowercase
	Username           *string
	UserType           UserType
	IncomeTrackingMode IncomeTrackingMode
	MonthlyIncome      *decimal.Decimal // only kept for fixedIncome
	MonthlyBudget      *decimal.Decimal
	SavingTarget       *decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasEmail reports whether the profile can receive email.
func (p *Profile) HasEmail() bool {
	return p != nil && p.Email != ""
}
