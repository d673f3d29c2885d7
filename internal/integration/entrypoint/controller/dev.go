package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/automation"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// DevController exposes manual triggers for the scheduled jobs.
type DevController struct {
	recurringUseCase    *automation.RunRecurringExpensesUseCase
	monthlyEmailUseCase *automation.RunMonthlyEmailsUseCase
	modelLister         adapter.ModelLister
}

// NewDevController creates a new dev controller instance. modelLister may be
// nil when no Gemini key is configured.
func NewDevController(
	recurringUseCase *automation.RunRecurringExpensesUseCase,
	monthlyEmailUseCase *automation.RunMonthlyEmailsUseCase,
	modelLister adapter.ModelLister,
) *DevController {
	return &DevController{
		recurringUseCase:    recurringUseCase,
		monthlyEmailUseCase: monthlyEmailUseCase,
		modelLister:         modelLister,
	}
}

// RunRecurringJob handles POST /dev/run-recurring-job requests.
func (c *DevController) RunRecurringJob(ctx *gin.Context) {
	output, err := c.recurringUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToRecurringJobResponse(output), "Recurring automation executed manually"))
}

// RunMonthlyEmailJob handles POST /dev/run-monthly-email-job requests.
func (c *DevController) RunMonthlyEmailJob(ctx *gin.Context) {
	output, err := c.monthlyEmailUseCase.Execute(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToMonthlyEmailJobResponse(output), "Monthly email job executed manually"))
}

// ListGeminiModels handles GET /dev/gemini/models requests.
func (c *DevController) ListGeminiModels(ctx *gin.Context) {
	if c.modelLister == nil {
		respondError(ctx, domainerror.NewAIError(
			domainerror.ErrCodeAINotConfigured,
			"GEMINI_API_KEY is missing in environment variables",
			domainerror.ErrAINotConfigured,
		))
		return
	}

	models, err := c.modelLister.ListModels(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToModelListResponse(models), "Gemini models fetched successfully"))
}
