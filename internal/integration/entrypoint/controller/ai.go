package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/aireview"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// AIController handles AI narrative endpoints.
type AIController struct {
	reviewUseCase *aireview.GetMonthlyReviewUseCase
}

// NewAIController creates a new AI controller instance.
func NewAIController(reviewUseCase *aireview.GetMonthlyReviewUseCase) *AIController {
	return &AIController{reviewUseCase: reviewUseCase}
}

// MonthlyReview handles GET /ai/monthly-review?month&year requests.
func (c *AIController) MonthlyReview(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	output, err := c.reviewUseCase.Execute(ctx.Request.Context(), aireview.GetMonthlyReviewInput{
		OwnerID: ownerID,
		Month:   intQuery(ctx, "month"),
		Year:    intQuery(ctx, "year"),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToMonthlyReviewResponse(output), "AI monthly review generated"))
}
