// Package report contains the monthly report and comparison use cases.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// BuildMonthlyReport aggregates the expenses dated inside period.
// Expenses outside the period are ignored.
func BuildMonthlyReport(period valueobject.MonthPeriod, expenses []*entity.Expense) *entity.MonthlyReport {
	report := entity.NewEmptyMonthlyReport(period.Month, period.Year)

	for _, e := range expenses {
		if e == nil || !period.Contains(e.Date) {
			continue
		}

		report.TotalExpense = report.TotalExpense.Add(e.Amount)
		report.TotalTransactions++

		report.CategoryBreakdown[e.Category] = report.CategoryBreakdown[e.Category].Add(e.Amount)
		report.PaymentModeBreakdown[e.PaymentMode] = report.PaymentModeBreakdown[e.PaymentMode].Add(e.Amount)
		report.NeedVsWantBreakdown[e.EssentialType] = report.NeedVsWantBreakdown[e.EssentialType].Add(e.Amount)
	}

	return report
}

// Compare computes the month-over-month delta between two reports.
func Compare(current, previous *entity.MonthlyReport) entity.ComparisonSummary {
	summary := entity.ComparisonSummary{
		CurrentTotal:  current.TotalExpense,
		PreviousTotal: previous.TotalExpense,
		Difference:    current.TotalExpense.Sub(previous.TotalExpense),
	}

	switch current.TotalExpense.Cmp(previous.TotalExpense) {
	case 1:
		summary.ChangeType = entity.ChangeTypeIncreased
	case -1:
		summary.ChangeType = entity.ChangeTypeDecreased
	default:
		summary.ChangeType = entity.ChangeTypeNoChange
	}

	if !previous.TotalExpense.IsZero() {
		pct := summary.Difference.Div(previous.TotalExpense).Mul(hundred).Round(2)
		summary.PercentageChange = &pct
	}

	return summary
}
