package entity

import (
	"github.com/shopspring/decimal"
)

// ChangeType describes the direction of a month-over-month change.
type ChangeType string

const (
	ChangeTypeIncreased ChangeType = "increased"
	ChangeTypeDecreased ChangeType = "decreased"
	ChangeTypeNoChange  ChangeType = "no_change"
)

// MonthlyReport summarizes the expenses of one calendar month.
type MonthlyReport struct {
	Month                int
	Year                 int
	TotalExpense         decimal.Decimal
	TotalTransactions    int
	CategoryBreakdown    map[string]decimal.Decimal
	PaymentModeBreakdown map[PaymentMode]decimal.Decimal
	NeedVsWantBreakdown  map[EssentialType]decimal.Decimal
}

// NewEmptyMonthlyReport returns a zero-valued report with initialized maps.
func NewEmptyMonthlyReport(month, year int) *MonthlyReport {
	return &MonthlyReport{
		Month:                month,
		Year:                 year,
		TotalExpense:         decimal.Zero,
		CategoryBreakdown:    make(map[string]decimal.Decimal),
		PaymentModeBreakdown: make(map[PaymentMode]decimal.Decimal),
		NeedVsWantBreakdown:  make(map[EssentialType]decimal.Decimal),
	}
}

// ComparisonSummary holds the month-over-month delta.
type ComparisonSummary struct {
	CurrentTotal     decimal.Decimal
	PreviousTotal    decimal.Decimal
	Difference       decimal.Decimal
	PercentageChange *decimal.Decimal // nil when the previous total is zero
	ChangeType       ChangeType
}

// MonthlyComparison pairs a month's report with the preceding month's.
type MonthlyComparison struct {
	Current    *MonthlyReport
	Previous   *MonthlyReport
	Comparison ComparisonSummary
}
