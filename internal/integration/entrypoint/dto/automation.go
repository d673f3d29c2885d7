package dto

import "github.com/expense-tracker/backend/internal/application/usecase/automation"

// RecurringJobResponse summarizes a recurring automation run.
type RecurringJobResponse struct {
	CreatedCount int `json:"createdCount"`
	SkippedCount int `json:"skippedCount"`
	FailedCount  int `json:"failedCount"`
}

// MonthlyEmailJobResponse summarizes a monthly email run.
type MonthlyEmailJobResponse struct {
	SentCount            int `json:"sentCount"`
	FailedCount          int `json:"failedCount"`
	NarrativeFailedCount int `json:"narrativeFailedCount"`
	Month                int `json:"month"`
	Year                 int `json:"year"`
}

// ToRecurringJobResponse converts a recurring automation summary.
func ToRecurringJobResponse(o *automation.RunRecurringExpensesOutput) RecurringJobResponse {
	return RecurringJobResponse{
		CreatedCount: o.CreatedCount,
		SkippedCount: o.SkippedCount,
		FailedCount:  o.FailedCount,
	}
}

// ToMonthlyEmailJobResponse converts a monthly email summary.
func ToMonthlyEmailJobResponse(o *automation.RunMonthlyEmailsOutput) MonthlyEmailJobResponse {
	return MonthlyEmailJobResponse{
		SentCount:            o.SentCount,
		FailedCount:          o.FailedCount,
		NarrativeFailedCount: o.NarrativeFailedCount,
		Month:                o.Month,
		Year:                 o.Year,
	}
}
