package controller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/profile"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// ProfileController handles onboarding profile endpoints.
type ProfileController struct {
	upsertUseCase *profile.UpsertProfileUseCase
	getUseCase    *profile.GetProfileUseCase
}

// NewProfileController creates a new profile controller instance.
func NewProfileController(upsertUseCase *profile.UpsertProfileUseCase, getUseCase *profile.GetProfileUseCase) *ProfileController {
	return &ProfileController{
		upsertUseCase: upsertUseCase,
		getUseCase:    getUseCase,
	}
}

// Upsert handles POST /profile requests.
func (c *ProfileController) Upsert(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	var req dto.UpsertProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeMissingFullName))
		return
	}

	// The verified token email stands in for an omitted one.
	email := req.Email
	if strings.TrimSpace(email) == "" {
		email, _ = middleware.GetOwnerEmailFromContext(ctx)
	}

	output, err := c.upsertUseCase.Execute(ctx.Request.Context(), profile.UpsertProfileInput{
		OwnerID:            ownerID,
		FullName:           req.FullName,
		Email:              email,
		Username:           req.Username,
		UserType:           entity.UserType(req.UserType),
		IncomeTrackingMode: entity.IncomeTrackingMode(req.IncomeTrackingMode),
		MonthlyIncome:      req.MonthlyIncome,
		MonthlyBudget:      req.MonthlyBudget,
		SavingTarget:       req.SavingTarget,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToProfileResponse(output.Profile), "Profile saved successfully"))
}

// Me handles GET /profile/me requests.
func (c *ProfileController) Me(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), profile.GetProfileInput{OwnerID: ownerID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToProfileResponse(output.Profile), "Profile fetched successfully"))
}
