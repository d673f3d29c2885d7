package automation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// RunMonthlyEmailsOutput summarizes one run of the monthly email automation.
type RunMonthlyEmailsOutput struct {
	SentCount            int
	FailedCount          int
	NarrativeFailedCount int
	Month                int
	Year                 int
}

// RunMonthlyEmailsUseCase emails every profile the report of the previous month.
type RunMonthlyEmailsUseCase struct {
	profileRepo  adapter.ProfileRepository
	comparison   *report.GetComparisonUseCase
	generator    adapter.ReviewGenerator
	emailService adapter.EmailService
	clock        adapter.Clock
}

// NewRunMonthlyEmailsUseCase creates a new RunMonthlyEmailsUseCase instance.
func NewRunMonthlyEmailsUseCase(
	profileRepo adapter.ProfileRepository,
	comparison *report.GetComparisonUseCase,
	generator adapter.ReviewGenerator,
	emailService adapter.EmailService,
	clock adapter.Clock,
) *RunMonthlyEmailsUseCase {
	return &RunMonthlyEmailsUseCase{
		profileRepo:  profileRepo,
		comparison:   comparison,
		generator:    generator,
		emailService: emailService,
		clock:        clock,
	}
}

// Execute reports on the calendar month preceding the invocation. Users are
// processed one at a time and a failure for one never stops the others. When
// the narrative cannot be generated the email is sent without it.
func (uc *RunMonthlyEmailsUseCase) Execute(ctx context.Context) (*RunMonthlyEmailsOutput, error) {
	period := valueobject.MonthPeriodOf(uc.clock.Now()).Previous()

	output := &RunMonthlyEmailsOutput{Month: period.Month, Year: period.Year}

	slog.Info("Running monthly email automation", "month", period.Month, "year", period.Year)

	profiles, err := uc.profileRepo.FindAllWithEmail(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}

	for _, profile := range profiles {
		if err := ctx.Err(); err != nil {
			return output, err
		}
		if !profile.HasEmail() {
			continue
		}

		logger := slog.With("owner_id", profile.OwnerID, "month", period.Month, "year", period.Year)

		comparison, err := uc.comparison.Execute(ctx, report.GetComparisonInput{
			OwnerID: profile.OwnerID,
			Month:   period.Month,
			Year:    period.Year,
		})
		if err != nil {
			output.FailedCount++
			logger.Error("Failed to build monthly report", "error", err)
			continue
		}

		review, err := uc.generateReview(ctx, comparison.Comparison, profile)
		if err != nil {
			output.NarrativeFailedCount++
			logger.Warn("Sending monthly report without AI review", "error", err)
		}

		result, err := uc.emailService.SendMonthlyReport(ctx, adapter.MonthlyReportEmailInput{
			Profile:    profile,
			Comparison: comparison.Comparison,
			Review:     review,
		})
		if err != nil {
			output.FailedCount++
			logger.Error("Failed to send monthly report email", "error", err)
			continue
		}

		output.SentCount++
		logger.Info("Monthly report email sent", "message_id", result.MessageID)
	}

	slog.Info("Monthly email automation finished",
		"sent", output.SentCount,
		"failed", output.FailedCount,
		"narrative_failed", output.NarrativeFailedCount,
	)

	return output, nil
}

func (uc *RunMonthlyEmailsUseCase) generateReview(
	ctx context.Context,
	comparison *entity.MonthlyComparison,
	profile *entity.Profile,
) (*entity.AIReview, error) {
	if uc.generator == nil || !uc.generator.IsAvailable() {
		return nil, fmt.Errorf("no AI backend is configured")
	}
	return uc.generator.GenerateReview(ctx, &adapter.ReviewRequest{
		Comparison: comparison,
		Profile:    profile,
	})
}
