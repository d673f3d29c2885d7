package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// RecurringController handles recurring payment endpoints.
type RecurringController struct {
	createUseCase *recurring.CreateRecurringPaymentUseCase
	listUseCase   *recurring.ListRecurringPaymentsUseCase
	updateUseCase *recurring.UpdateRecurringPaymentUseCase
	toggleUseCase *recurring.ToggleRecurringPaymentUseCase
	deleteUseCase *recurring.DeleteRecurringPaymentUseCase
}

// NewRecurringController creates a new recurring payment controller instance.
func NewRecurringController(
	createUseCase *recurring.CreateRecurringPaymentUseCase,
	listUseCase *recurring.ListRecurringPaymentsUseCase,
	updateUseCase *recurring.UpdateRecurringPaymentUseCase,
	toggleUseCase *recurring.ToggleRecurringPaymentUseCase,
	deleteUseCase *recurring.DeleteRecurringPaymentUseCase,
) *RecurringController {
	return &RecurringController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		toggleUseCase: toggleUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /recurring requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	var req dto.CreateRecurringRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidRecurringAmount))
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		badRequest(ctx, "invalid startDate, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidRecurringDate))
		return
	}
	nextDueDate, err := parseOptionalDate(req.NextDueDate)
	if err != nil {
		badRequest(ctx, "invalid nextDueDate, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidRecurringDate))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), recurring.CreateRecurringPaymentInput{
		OwnerID:     ownerID,
		VendorName:  req.VendorName,
		Amount:      req.Amount,
		Category:    req.Category,
		Frequency:   entity.RecurringFrequency(req.Frequency),
		StartDate:   startDate,
		NextDueDate: nextDueDate,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success(dto.ToRecurringResponse(output.RecurringPayment), "Recurring payment created"))
}

// List handles GET /recurring requests.
func (c *RecurringController) List(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurring.ListRecurringPaymentsInput{OwnerID: ownerID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToRecurringListResponse(output.RecurringPayments), "Recurring payments fetched"))
}

// Update handles PATCH /recurring/:id requests.
func (c *RecurringController) Update(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	paymentID, ok := parseRecurringID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateRecurringRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeNoRecurringFields))
		return
	}

	startDate, err := parseOptionalDate(req.StartDate)
	if err != nil {
		badRequest(ctx, "invalid startDate, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidRecurringDate))
		return
	}
	nextDueDate, err := parseOptionalDate(req.NextDueDate.Value)
	if err != nil {
		badRequest(ctx, "invalid nextDueDate, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidRecurringDate))
		return
	}

	input := recurring.UpdateRecurringPaymentInput{
		RecurringPaymentID: paymentID,
		OwnerID:            ownerID,
		VendorName:         req.VendorName,
		Amount:             req.Amount,
		Category:           req.Category,
		StartDate:          startDate,
		NextDueDate:        nextDueDate,
		ClearNextDueDate:   req.NextDueDate.Set && req.NextDueDate.Value == nil,
		IsActive:           req.IsActive,
	}
	if req.Frequency != nil {
		frequency := entity.RecurringFrequency(*req.Frequency)
		input.Frequency = &frequency
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToRecurringResponse(output.RecurringPayment), "Recurring payment updated"))
}

// Toggle handles PATCH /recurring/:id/toggle requests.
func (c *RecurringController) Toggle(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	paymentID, ok := parseRecurringID(ctx)
	if !ok {
		return
	}

	output, err := c.toggleUseCase.Execute(ctx.Request.Context(), recurring.ToggleRecurringPaymentInput{
		RecurringPaymentID: paymentID,
		OwnerID:            ownerID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToRecurringResponse(output.RecurringPayment), "Recurring payment toggled"))
}

// Delete handles DELETE /recurring/:id requests.
func (c *RecurringController) Delete(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	paymentID, ok := parseRecurringID(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), recurring.DeleteRecurringPaymentInput{
		RecurringPaymentID: paymentID,
		OwnerID:            ownerID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.DeletedResponse{ID: paymentID.String()}, "Recurring payment deleted"))
}

func parseRecurringID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid recurring payment ID format", string(domainerror.ErrCodeInvalidRecurringID))
		return uuid.Nil, false
	}
	return id, true
}
