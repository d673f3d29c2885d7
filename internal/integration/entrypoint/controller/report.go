package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ReportController handles report endpoints.
type ReportController struct {
	comparisonUseCase *report.GetComparisonUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(comparisonUseCase *report.GetComparisonUseCase) *ReportController {
	return &ReportController{comparisonUseCase: comparisonUseCase}
}

// Monthly handles GET /reports/monthly?month&year requests.
func (c *ReportController) Monthly(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	output, err := c.comparisonUseCase.Execute(ctx.Request.Context(), report.GetComparisonInput{
		OwnerID: ownerID,
		Month:   intQuery(ctx, "month"),
		Year:    intQuery(ctx, "year"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToMonthlyComparisonResponse(output.Comparison), "Monthly report generated"))
}
