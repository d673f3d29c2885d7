package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	createUseCase *expense.CreateExpenseUseCase
	listUseCase   *expense.ListExpensesUseCase
	updateUseCase *expense.UpdateExpenseUseCase
	deleteUseCase *expense.DeleteExpenseUseCase
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	createUseCase *expense.CreateExpenseUseCase,
	listUseCase *expense.ListExpensesUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
) *ExpenseController {
	return &ExpenseController{
		createUseCase: createUseCase,
		listUseCase:   listUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeInvalidExpenseAmount))
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, domainerror.ErrInvalidExpenseDate.Error(), string(domainerror.ErrCodeInvalidExpenseDate))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), expense.CreateExpenseInput{
		OwnerID:       ownerID,
		Amount:        req.Amount,
		Category:      req.Category,
		Note:          req.Note,
		PaymentMode:   entity.PaymentMode(req.PaymentMode),
		EssentialType: entity.EssentialType(req.EssentialType),
		Date:          date,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.Success(dto.ToExpenseResponse(output.Expense), "Expense created successfully"))
}

// List handles GET /expenses requests with optional month and year.
func (c *ExpenseController) List(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	month, err := optionalIntQuery(ctx, "month")
	if err != nil {
		badRequest(ctx, "month must be a number", string(domainerror.ErrCodeInvalidExpensePeriod))
		return
	}
	year, err := optionalIntQuery(ctx, "year")
	if err != nil {
		badRequest(ctx, "year must be a number", string(domainerror.ErrCodeInvalidExpensePeriod))
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), expense.ListExpensesInput{
		OwnerID: ownerID,
		Month:   month,
		Year:    year,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToExpenseListResponse(output.Expenses), "Expenses fetched successfully"))
}

// Update handles PATCH /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body: "+err.Error(), string(domainerror.ErrCodeNoExpenseFields))
		return
	}

	date, err := parseOptionalDate(req.Date)
	if err != nil {
		badRequest(ctx, domainerror.ErrInvalidExpenseDate.Error(), string(domainerror.ErrCodeInvalidExpenseDate))
		return
	}

	input := expense.UpdateExpenseInput{
		ExpenseID: expenseID,
		OwnerID:   ownerID,
		Amount:    req.Amount,
		Category:  req.Category,
		Note:      req.Note,
		Date:      date,
	}
	if req.PaymentMode != nil {
		mode := entity.PaymentMode(*req.PaymentMode)
		input.PaymentMode = &mode
	}
	if req.EssentialType != nil {
		essentialType := entity.EssentialType(*req.EssentialType)
		input.EssentialType = &essentialType
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.ToExpenseResponse(output.Expense), "Expense updated successfully"))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	ownerID, ok := requireOwner(ctx)
	if !ok {
		return
	}

	expenseID, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{
		ExpenseID: expenseID,
		OwnerID:   ownerID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Success(dto.DeletedResponse{ID: expenseID.String()}, "Expense deleted successfully"))
}

func parseExpenseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		badRequest(ctx, "Invalid expense ID format", string(domainerror.ErrCodeInvalidExpenseID))
		return uuid.Nil, false
	}
	return id, true
}
