package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// RecurringPaymentModel represents the recurring_payments table in the database.
type RecurringPaymentModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID     string          `gorm:"type:varchar(191);not null;uniqueIndex:idx_recurring_owner_vendor,priority:1"`
	VendorName  string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_recurring_owner_vendor,priority:2"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category    string          `gorm:"type:varchar(30);not null;default:Subscription"`
	Frequency   string          `gorm:"type:varchar(10);not null;default:monthly"`
	StartDate   time.Time       `gorm:"type:date;not null"`
	NextDueDate *time.Time      `gorm:"type:date"`
	IsActive    bool            `gorm:"not null;default:true;index"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the RecurringPaymentModel.
func (RecurringPaymentModel) TableName() string {
	return "recurring_payments"
}

// ToEntity converts a RecurringPaymentModel to a domain RecurringPayment entity.
func (m *RecurringPaymentModel) ToEntity() *entity.RecurringPayment {
	var next *time.Time
	if m.NextDueDate != nil {
		n := m.NextDueDate.UTC()
		next = &n
	}

	return &entity.RecurringPayment{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		VendorName:  m.VendorName,
		Amount:      m.Amount,
		Category:    m.Category,
		Frequency:   entity.RecurringFrequency(m.Frequency),
		StartDate:   m.StartDate.UTC(),
		NextDueDate: next,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// RecurringPaymentFromEntity creates a RecurringPaymentModel from a domain RecurringPayment entity.
func RecurringPaymentFromEntity(payment *entity.RecurringPayment) *RecurringPaymentModel {
	return &RecurringPaymentModel{
		ID:          payment.ID,
		OwnerID:     payment.OwnerID,
		VendorName:  payment.VendorName,
		Amount:      payment.Amount,
		Category:    payment.Category,
		Frequency:   string(payment.Frequency),
		StartDate:   payment.StartDate,
		NextDueDate: payment.NextDueDate,
		IsActive:    payment.IsActive,
		CreatedAt:   payment.CreatedAt,
		UpdatedAt:   payment.UpdatedAt,
	}
}
