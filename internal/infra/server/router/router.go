// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine              *gin.Engine
	healthController    *controller.HealthController
	expenseController   *controller.ExpenseController
	recurringController *controller.RecurringController
	reportController    *controller.ReportController
	aiController        *controller.AIController
	profileController   *controller.ProfileController
	devController       *controller.DevController
	rateLimiter         *middleware.RateLimiter
	identityMiddleware  *middleware.IdentityMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	expenseController *controller.ExpenseController,
	recurringController *controller.RecurringController,
	reportController *controller.ReportController,
	aiController *controller.AIController,
	profileController *controller.ProfileController,
	devController *controller.DevController,
	rateLimiter *middleware.RateLimiter,
	identityMiddleware *middleware.IdentityMiddleware,
) *Router {
	return &Router{
		healthController:    healthController,
		expenseController:   expenseController,
		recurringController: recurringController,
		reportController:    reportController,
		aiController:        aiController,
		profileController:   profileController,
		devController:       devController,
		rateLimiter:         rateLimiter,
		identityMiddleware:  identityMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	switch environment {
	case config.EnvProduction:
		gin.SetMode(gin.ReleaseMode)
	case config.EnvTest:
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(middleware.Recovery(), middleware.RequestLogger())

	r.setupHealthRoutes()
	r.setupAPIRoutes(environment == config.EnvProduction)

	return r.engine
}

// setupHealthRoutes configures health check endpoints, outside the rate limit.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes(production bool) {
	v1 := r.engine.Group("/api/v1")
	if r.rateLimiter != nil {
		v1.Use(r.rateLimiter.Middleware())
	}

	v1.GET("/health", r.healthController.Check)

	authenticate := r.identityMiddleware.Authenticate()

	if r.profileController != nil {
		profile := v1.Group("/profile")
		profile.Use(authenticate)
		{
			profile.POST("", r.profileController.Upsert)
			profile.GET("/me", r.profileController.Me)
		}
	}

	if r.expenseController != nil {
		expenses := v1.Group("/expenses")
		expenses.Use(authenticate)
		{
			expenses.POST("", r.expenseController.Create)
			expenses.GET("", r.expenseController.List)
			expenses.PATCH("/:id", r.expenseController.Update)
			expenses.DELETE("/:id", r.expenseController.Delete)
		}
	}

	if r.recurringController != nil {
		recurring := v1.Group("/recurring")
		recurring.Use(authenticate)
		{
			recurring.POST("", r.recurringController.Create)
			recurring.GET("", r.recurringController.List)
			recurring.PATCH("/:id", r.recurringController.Update)
			recurring.PATCH("/:id/toggle", r.recurringController.Toggle)
			recurring.DELETE("/:id", r.recurringController.Delete)
		}
	}

	if r.reportController != nil {
		reports := v1.Group("/reports")
		reports.Use(authenticate)
		{
			reports.GET("/monthly", r.reportController.Monthly)
		}
	}

	if r.aiController != nil {
		ai := v1.Group("/ai")
		ai.Use(authenticate)
		{
			ai.GET("/monthly-review", r.aiController.MonthlyReview)
		}
	}

	if r.devController != nil {
		dev := v1.Group("/dev")
		dev.Use(middleware.DevOnly(production))
		{
			dev.POST("/run-recurring-job", r.devController.RunRecurringJob)
			dev.POST("/run-monthly-email-job", r.devController.RunMonthlyEmailJob)
			dev.GET("/gemini/models", r.devController.ListGeminiModels)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
