// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/aireview"
	"github.com/expense-tracker/backend/internal/application/usecase/automation"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/application/usecase/profile"
	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/infra/scheduler"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/events"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// Overrides replaces external integrations, mainly for tests.
type Overrides struct {
	Clock       adapter.Clock
	Reviewer    adapter.ReviewGenerator
	EmailSender adapter.EmailSender
	Publisher   adapter.ExpenseEventPublisher
	RedisClient *redis.Client
}

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *router.Router
	Scheduler *scheduler.Scheduler

	RunRecurringExpenses *automation.RunRecurringExpensesUseCase
	RunMonthlyEmails     *automation.RunMonthlyEmailsUseCase

	closers []func() error
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB, dbHealthChecker func() bool, overrides Overrides) (*Injector, error) {
	inj := &Injector{Config: cfg, DB: db}

	// Create repositories
	expenseRepo := persistence.NewExpenseRepository(db)
	recurringRepo := persistence.NewRecurringPaymentRepository(db)
	profileRepo := persistence.NewProfileRepository(db)

	// Create adapters/services
	clock := overrides.Clock
	if clock == nil {
		clock = adapters.NewSystemClock(cfg.Server.Location())
	}

	publisher := overrides.Publisher
	if publisher == nil {
		publisher = inj.newPublisher(cfg.AMQP)
	}

	reviewer := overrides.Reviewer
	if reviewer == nil {
		reviewer = newReviewer(cfg.AI)
	}

	sender := overrides.EmailSender
	if sender == nil {
		sender = newEmailSender(cfg.Email)
	}

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailService := email.NewService(sender, renderer)

	var modelLister adapter.ModelLister
	if cfg.AI.GeminiAPIKey != "" {
		modelLister = adapters.NewGeminiModelLister(cfg.AI.GeminiAPIKey)
	}

	verifier := adapters.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer)
	rateStore := inj.newRateLimitStore(cfg.Redis, overrides.RedisClient)

	// Create expense use cases
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, publisher, clock)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo)

	// Create recurring use cases
	createRecurringUseCase := recurring.NewCreateRecurringPaymentUseCase(recurringRepo, clock)
	listRecurringUseCase := recurring.NewListRecurringPaymentsUseCase(recurringRepo)
	updateRecurringUseCase := recurring.NewUpdateRecurringPaymentUseCase(recurringRepo)
	toggleRecurringUseCase := recurring.NewToggleRecurringPaymentUseCase(recurringRepo)
	deleteRecurringUseCase := recurring.NewDeleteRecurringPaymentUseCase(recurringRepo)

	// Create report, review and profile use cases
	comparisonUseCase := report.NewGetComparisonUseCase(expenseRepo)
	reviewUseCase := aireview.NewGetMonthlyReviewUseCase(profileRepo, comparisonUseCase, reviewer)
	upsertProfileUseCase := profile.NewUpsertProfileUseCase(profileRepo)
	getProfileUseCase := profile.NewGetProfileUseCase(profileRepo)

	// Create automation use cases
	inj.RunRecurringExpenses = automation.NewRunRecurringExpensesUseCase(recurringRepo, expenseRepo, publisher, clock)
	inj.RunMonthlyEmails = automation.NewRunMonthlyEmailsUseCase(profileRepo, comparisonUseCase, reviewer, emailService, clock)

	// Create controllers
	healthController := controller.NewHealthController(dbHealthChecker)
	expenseController := controller.NewExpenseController(
		createExpenseUseCase,
		listExpensesUseCase,
		updateExpenseUseCase,
		deleteExpenseUseCase,
	)
	recurringController := controller.NewRecurringController(
		createRecurringUseCase,
		listRecurringUseCase,
		updateRecurringUseCase,
		toggleRecurringUseCase,
		deleteRecurringUseCase,
	)
	reportController := controller.NewReportController(comparisonUseCase)
	aiController := controller.NewAIController(reviewUseCase)
	profileController := controller.NewProfileController(upsertProfileUseCase, getProfileUseCase)
	devController := controller.NewDevController(inj.RunRecurringExpenses, inj.RunMonthlyEmails, modelLister)

	// Create middleware
	rateLimiter := middleware.NewRateLimiterWithConfig(rateStore, cfg.RateLimit.Requests, cfg.RateLimit.Window)
	identityMiddleware := middleware.NewIdentityMiddleware(verifier, cfg.Auth.TrustHeader)

	// Create router
	inj.Router = router.NewRouter(
		healthController,
		expenseController,
		recurringController,
		reportController,
		aiController,
		profileController,
		devController,
		rateLimiter,
		identityMiddleware,
	)

	// Create scheduler
	if cfg.Scheduler.Enabled {
		inj.Scheduler = scheduler.New(cfg.Server.Location())
		if err := inj.Scheduler.AddJob("recurring-expenses", cfg.Scheduler.RecurringSpec, func(ctx context.Context) error {
			_, err := inj.RunRecurringExpenses.Execute(ctx)
			return err
		}); err != nil {
			return nil, err
		}
		if err := inj.Scheduler.AddJob("monthly-emails", cfg.Scheduler.MonthlyEmailSpec, func(ctx context.Context) error {
			_, err := inj.RunMonthlyEmails.Execute(ctx)
			return err
		}); err != nil {
			return nil, err
		}
	}

	return inj, nil
}

// Close releases the connections opened by the injector.
func (inj *Injector) Close() error {
	var errs []error
	for i := len(inj.closers) - 1; i >= 0; i-- {
		if err := inj.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (inj *Injector) newPublisher(cfg config.AMQPConfig) adapter.ExpenseEventPublisher {
	if cfg.URL == "" {
		return events.NoopPublisher{}
	}

	publisher, err := events.NewAMQPPublisher(cfg.URL, cfg.Exchange, cfg.RoutingKey)
	if err != nil {
		slog.Warn("AMQP unavailable, expense events disabled", "error", err)
		return events.NoopPublisher{}
	}
	inj.closers = append(inj.closers, publisher.Close)

	slog.Info("Expense events enabled", "exchange", cfg.Exchange, "routing_key", cfg.RoutingKey)
	return publisher
}

func (inj *Injector) newRateLimitStore(cfg config.RedisConfig, client *redis.Client) middleware.RateLimitStore {
	if client != nil {
		return middleware.NewRedisStore(client)
	}
	if cfg.URL == "" {
		return middleware.NewMemoryStore()
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		slog.Warn("Invalid REDIS_URL, using in-memory rate limiting", "error", err)
		return middleware.NewMemoryStore()
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}

	client = redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Redis unreachable, using in-memory rate limiting", "error", err)
		_ = client.Close()
		return middleware.NewMemoryStore()
	}
	inj.closers = append(inj.closers, client.Close)

	slog.Info("Rate limiting backed by Redis")
	return middleware.NewRedisStore(client)
}

func newReviewer(cfg config.AIConfig) *adapters.FallbackReviewer {
	backends := adapters.NewGeminiBackends(cfg.GeminiAPIKey, cfg.GeminiModels, cfg.Temperature)
	if cfg.OpenAIAPIKey != "" {
		backends = append(backends, adapters.NewOpenAIBackend(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.Temperature))
	}

	names := make([]string, len(backends))
	for i, b := range backends {
		names[i] = b.Name()
	}
	slog.Info("AI review backends configured", "backends", names)

	return adapters.NewFallbackReviewer(backends...).WithTimeout(cfg.Timeout)
}

func newEmailSender(cfg config.EmailConfig) adapter.EmailSender {
	switch {
	case cfg.ResendAPIKey != "":
		slog.Info("Email transport configured", "transport", "resend")
		return email.NewResendClient(cfg.ResendAPIKey, cfg.FromName, cfg.FromEmail)
	case cfg.SMTPUser != "" && cfg.SMTPPassword != "":
		slog.Info("Email transport configured", "transport", "smtp", "host", cfg.SMTPHost)
		return email.NewSMTPClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromName, cfg.FromEmail)
	default:
		return nil
	}
}
