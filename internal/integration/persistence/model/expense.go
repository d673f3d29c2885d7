// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OwnerID         string          `gorm:"type:varchar(191);not null;index:idx_expenses_owner_date,priority:1"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Category        string          `gorm:"type:varchar(100);not null"`
	Note            string          `gorm:"type:varchar(200)"`
	PaymentMode     string          `gorm:"type:varchar(10);not null;default:upi"`
	EssentialType   string          `gorm:"type:varchar(10);not null;default:need"`
	Date            time.Time       `gorm:"type:date;not null;index:idx_expenses_owner_date,priority:2"`
	RecurringVendor *string         `gorm:"type:varchar(50);index"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		Amount:          m.Amount,
		Category:        m.Category,
		Note:            m.Note,
		PaymentMode:     entity.PaymentMode(m.PaymentMode),
		EssentialType:   entity.EssentialType(m.EssentialType),
		Date:            m.Date.UTC(),
		RecurringVendor: m.RecurringVendor,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:              expense.ID,
		OwnerID:         expense.OwnerID,
		Amount:          expense.Amount,
		Category:        expense.Category,
		Note:            expense.Note,
		PaymentMode:     string(expense.PaymentMode),
		EssentialType:   string(expense.EssentialType),
		Date:            expense.Date,
		RecurringVendor: expense.RecurringVendor,
		CreatedAt:       expense.CreatedAt,
		UpdatedAt:       expense.UpdatedAt,
	}
}
