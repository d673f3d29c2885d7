package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for expense creation.
type CreateExpenseRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Note          string          `json:"note"`
	PaymentMode   string          `json:"paymentMode"`
	EssentialType string          `json:"essentialType"`
	Date          *string         `json:"date"`
}

// UpdateExpenseRequest represents the request body for expense update.
// Only the listed fields can be changed; anything else in the body is ignored.
type UpdateExpenseRequest struct {
	Amount        *decimal.Decimal `json:"amount"`
	Category      *string          `json:"category"`
	Note          *string          `json:"note"`
	PaymentMode   *string          `json:"paymentMode"`
	EssentialType *string          `json:"essentialType"`
	Date          *string          `json:"date"`
}

// MonthQuery represents the optional month/year query parameters.
type MonthQuery struct {
	Month *int `form:"month"`
	Year  *int `form:"year"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"ownerId"`
	Amount          float64   `json:"amount"`
	Category        string    `json:"category"`
	Note            string    `json:"note"`
	PaymentMode     string    `json:"paymentMode"`
	EssentialType   string    `json:"essentialType"`
	Date            string    `json:"date"`
	RecurringVendor *string   `json:"recurringVendor"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DeletedResponse identifies a removed resource.
type DeletedResponse struct {
	ID string `json:"id"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:              e.ID.String(),
		OwnerID:         e.OwnerID,
		Amount:          toFloat(e.Amount),
		Category:        e.Category,
		Note:            e.Note,
		PaymentMode:     string(e.PaymentMode),
		EssentialType:   string(e.EssentialType),
		Date:            formatDate(e.Date),
		RecurringVendor: e.RecurringVendor,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// ToExpenseListResponse converts a list of expenses, never returning nil.
func ToExpenseListResponse(expenses []*entity.Expense) []ExpenseResponse {
	responses := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = ToExpenseResponse(e)
	}
	return responses
}
