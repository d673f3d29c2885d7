package dto

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateRecurringRequest represents the request body for recurring payment creation.
type CreateRecurringRequest struct {
	VendorName  string          `json:"vendorName"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Frequency   string          `json:"frequency"`
	StartDate   *string         `json:"startDate"`
	NextDueDate *string         `json:"nextDueDate"`
}

// UpdateRecurringRequest represents the request body for recurring payment update.
type UpdateRecurringRequest struct {
	VendorName  *string          `json:"vendorName"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Frequency   *string          `json:"frequency"`
	StartDate   *string          `json:"startDate"`
	NextDueDate NullableString   `json:"nextDueDate"`
	IsActive    *bool            `json:"isActive"`
}

// NullableString distinguishes an absent field from an explicit null.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON records that the field was present.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// RecurringResponse represents a single recurring payment in API responses.
type RecurringResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	VendorName  string    `json:"vendorName"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Frequency   string    `json:"frequency"`
	StartDate   string    `json:"startDate"`
	NextDueDate *string   `json:"nextDueDate"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToRecurringResponse converts a domain RecurringPayment to a RecurringResponse DTO.
func ToRecurringResponse(p *entity.RecurringPayment) RecurringResponse {
	return RecurringResponse{
		ID:          p.ID.String(),
		OwnerID:     p.OwnerID,
		VendorName:  p.VendorName,
		Amount:      toFloat(p.Amount),
		Category:    p.Category,
		Frequency:   string(p.Frequency),
		StartDate:   formatDate(p.StartDate),
		NextDueDate: formatOptionalDate(p.NextDueDate),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToRecurringListResponse converts a list of recurring payments.
func ToRecurringListResponse(payments []*entity.RecurringPayment) []RecurringResponse {
	responses := make([]RecurringResponse, len(payments))
	for i, p := range payments {
		responses[i] = ToRecurringResponse(p)
	}
	return responses
}
