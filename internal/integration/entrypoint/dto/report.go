package dto

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ReportQuery represents the required month/year query parameters.
type ReportQuery struct {
	Month int `form:"month"`
	Year  int `form:"year"`
}

// MonthlyReportResponse represents a monthly report.
type MonthlyReportResponse struct {
	Month                int                `json:"month"`
	Year                 int                `json:"year"`
	TotalExpense         float64            `json:"totalExpense"`
	TotalTransactions    int                `json:"totalTransactions"`
	CategoryBreakdown    map[string]float64 `json:"categoryBreakdown"`
	PaymentModeBreakdown map[string]float64 `json:"paymentModeBreakdown"`
	NeedVsWantBreakdown  map[string]float64 `json:"needVsWantBreakdown"`
}

// ComparisonSummaryResponse represents the month-over-month delta.
type ComparisonSummaryResponse struct {
	CurrentTotal     float64  `json:"currentTotal"`
	PreviousTotal    float64  `json:"previousTotal"`
	Difference       float64  `json:"difference"`
	PercentageChange *float64 `json:"percentageChange"`
	ChangeType       string   `json:"changeType"`
}

// MonthlyComparisonResponse represents a report with its previous month.
type MonthlyComparisonResponse struct {
	Current    MonthlyReportResponse     `json:"current"`
	Previous   MonthlyReportResponse     `json:"previous"`
	Comparison ComparisonSummaryResponse `json:"comparison"`
}

// ToMonthlyReportResponse converts a domain MonthlyReport.
func ToMonthlyReportResponse(r *entity.MonthlyReport) MonthlyReportResponse {
	return MonthlyReportResponse{
		Month:                r.Month,
		Year:                 r.Year,
		TotalExpense:         toFloat(r.TotalExpense),
		TotalTransactions:    r.TotalTransactions,
		CategoryBreakdown:    toFloatMap(r.CategoryBreakdown),
		PaymentModeBreakdown: toFloatMap(r.PaymentModeBreakdown),
		NeedVsWantBreakdown:  toFloatMap(r.NeedVsWantBreakdown),
	}
}

// ToMonthlyComparisonResponse converts a domain MonthlyComparison.
func ToMonthlyComparisonResponse(c *entity.MonthlyComparison) MonthlyComparisonResponse {
	return MonthlyComparisonResponse{
		Current:  ToMonthlyReportResponse(c.Current),
		Previous: ToMonthlyReportResponse(c.Previous),
		Comparison: ComparisonSummaryResponse{
			CurrentTotal:     toFloat(c.Comparison.CurrentTotal),
			PreviousTotal:    toFloat(c.Comparison.PreviousTotal),
			Difference:       toFloat(c.Comparison.Difference),
			PercentageChange: toOptionalFloat(c.Comparison.PercentageChange),
			ChangeType:       string(c.Comparison.ChangeType),
		},
	}
}

func toFloatMap[K ~string](m map[K]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[string(k)] = toFloat(v)
	}
	return out
}
