package persistence

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpenseRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewExpenseRepository(newTestDB(t))

	march := entity.NewExpense("user_1", decimal.RequireFromString("100.50"), "Food", "lunch", entity.PaymentModeCard, entity.EssentialTypeWant, day(2025, 3, 5))
	lateMarch := entity.NewExpense("user_1", decimal.NewFromInt(50), "Travel", "", "", "", day(2025, 3, 31))
	april := entity.NewExpense("user_1", decimal.NewFromInt(20), "Food", "", "", "", day(2025, 4, 1))
	other := entity.NewExpense("user_2", decimal.NewFromInt(99), "Food", "", "", "", day(2025, 3, 10))
	for _, e := range []*entity.Expense{march, lateMarch, april, other} {
		if err := repo.Create(ctx, e); err != nil {
			t.Fatalf("failed to create expense: %v", err)
		}
	}

	t.Run("find by id is owner scoped", func(t *testing.T) {
		got, err := repo.FindByIDAndOwner(ctx, march.ID, "user_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !got.Amount.Equal(decimal.RequireFromString("100.50")) || got.PaymentMode != entity.PaymentModeCard {
			t.Errorf("unexpected expense %+v", got)
		}
		if !got.Date.Equal(day(2025, 3, 5)) {
			t.Errorf("expected date 2025-03-05, got %v", got.Date)
		}

		if _, err := repo.FindByIDAndOwner(ctx, march.ID, "user_2"); !errors.Is(err, domainerror.ErrExpenseNotFound) {
			t.Errorf("expected not found for other owner, got %v", err)
		}
	})

	t.Run("find by owner filters month and sorts by date desc", func(t *testing.T) {
		from, to := day(2025, 3, 1), day(2025, 4, 1)
		got, err := repo.FindByOwner(ctx, "user_1", entity.ExpenseFilter{From: &from, To: &to})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 expenses, got %d", len(got))
		}
		if got[0].ID != lateMarch.ID || got[1].ID != march.ID {
			t.Errorf("unexpected order: %v, %v", got[0].Date, got[1].Date)
		}

		all, _ := repo.FindByOwner(ctx, "user_1", entity.ExpenseFilter{})
		if len(all) != 3 {
			t.Errorf("expected 3 expenses without filter, got %d", len(all))
		}
	})

	t.Run("update and delete", func(t *testing.T) {
		march.Amount = decimal.NewFromInt(120)
		march.Category = "Groceries"
		if err := repo.Update(ctx, march); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, _ := repo.FindByIDAndOwner(ctx, march.ID, "user_1")
		if !got.Amount.Equal(decimal.NewFromInt(120)) || got.Category != "Groceries" {
			t.Errorf("update not persisted: %+v", got)
		}

		if err := repo.Delete(ctx, march.ID, "user_2"); !errors.Is(err, domainerror.ErrExpenseNotFound) {
			t.Errorf("expected not found deleting as other owner, got %v", err)
		}
		if err := repo.Delete(ctx, march.ID, "user_1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := repo.FindByIDAndOwner(ctx, march.ID, "user_1"); !errors.Is(err, domainerror.ErrExpenseNotFound) {
			t.Errorf("expected deleted expense to be gone, got %v", err)
		}
	})

	t.Run("recurring marker lookup", func(t *testing.T) {
		vendor := "netflix"
		materialized := entity.NewExpense("user_1", decimal.RequireFromString("15.99"), "Subscription", entity.RecurringNote(vendor), "", "", day(2025, 5, 10))
		materialized.RecurringVendor = &vendor
		if err := repo.Create(ctx, materialized); err != nil {
			t.Fatalf("failed to create expense: %v", err)
		}

		exists, err := repo.ExistsRecurringInRange(ctx, "user_1", "netflix", day(2025, 5, 1), day(2025, 6, 1))
		if err != nil || !exists {
			t.Errorf("expected marker in May, got %v (err %v)", exists, err)
		}
		exists, _ = repo.ExistsRecurringInRange(ctx, "user_1", "netflix", day(2025, 6, 1), day(2025, 7, 1))
		if exists {
			t.Error("expected no marker in June")
		}
		exists, _ = repo.ExistsRecurringInRange(ctx, "user_2", "netflix", day(2025, 5, 1), day(2025, 6, 1))
		if exists {
			t.Error("expected marker to be owner scoped")
		}
	})
}

func TestRecurringPaymentRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRecurringPaymentRepository(newTestDB(t))

	next := day(2025, 3, 10)
	netflix := entity.NewRecurringPayment("user_1", "netflix", decimal.RequireFromString("15.99"), "", day(2025, 1, 10), &next)
	spotify := entity.NewRecurringPayment("user_1", "spotify", decimal.NewFromInt(10), "Music", day(2025, 1, 1), nil)
	spotify.CreatedAt = netflix.CreatedAt.Add(time.Second)
	spotify.IsActive = false

	for _, p := range []*entity.RecurringPayment{netflix, spotify} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("failed to create payment: %v", err)
		}
	}

	t.Run("duplicate vendor is rejected by the unique index", func(t *testing.T) {
		dup := entity.NewRecurringPayment("user_1", "netflix", decimal.NewFromInt(1), "", day(2025, 1, 1), nil)
		if err := repo.Create(ctx, dup); !errors.Is(err, domainerror.ErrDuplicateVendor) {
			t.Errorf("expected duplicate vendor error, got %v", err)
		}

		sameVendorOtherOwner := entity.NewRecurringPayment("user_2", "netflix", decimal.NewFromInt(1), "", day(2025, 1, 1), nil)
		if err := repo.Create(ctx, sameVendorOtherOwner); err != nil {
			t.Errorf("expected other owner to reuse vendor, got %v", err)
		}
	})

	t.Run("exists by vendor honours exclusion", func(t *testing.T) {
		exists, err := repo.ExistsByVendor(ctx, "user_1", "netflix", nil)
		if err != nil || !exists {
			t.Errorf("expected netflix to exist, got %v (err %v)", exists, err)
		}
		exists, _ = repo.ExistsByVendor(ctx, "user_1", "netflix", &netflix.ID)
		if exists {
			t.Error("expected exclusion of the payment itself")
		}
	})

	t.Run("list and active", func(t *testing.T) {
		owned, err := repo.FindByOwner(ctx, "user_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(owned) != 2 || owned[0].ID != spotify.ID {
			t.Errorf("expected newest first, got %d items", len(owned))
		}

		active, err := repo.FindActive(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, p := range active {
			if p.ID == spotify.ID {
				t.Error("inactive payment returned by FindActive")
			}
		}
	})

	t.Run("update advances and clears next due date", func(t *testing.T) {
		got, err := repo.FindByIDAndOwner(ctx, netflix.ID, "user_1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.NextDueDate == nil || !got.NextDueDate.Equal(next) {
			t.Fatalf("expected next due date %v, got %v", next, got.NextDueDate)
		}

		advanced := day(2025, 4, 10)
		got.NextDueDate = &advanced
		if err := repo.Update(ctx, got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		reloaded, _ := repo.FindByIDAndOwner(ctx, netflix.ID, "user_1")
		if reloaded.NextDueDate == nil || !reloaded.NextDueDate.Equal(advanced) {
			t.Errorf("expected advanced due date, got %v", reloaded.NextDueDate)
		}

		reloaded.NextDueDate = nil
		if err := repo.Update(ctx, reloaded); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cleared, _ := repo.FindByIDAndOwner(ctx, netflix.ID, "user_1")
		if cleared.NextDueDate != nil {
			t.Errorf("expected cleared due date, got %v", cleared.NextDueDate)
		}
	})

	t.Run("missing records", func(t *testing.T) {
		missing := uuid.New()
		if _, err := repo.FindByIDAndOwner(ctx, missing, "user_1"); !errors.Is(err, domainerror.ErrRecurringNotFound) {
			t.Errorf("expected not found, got %v", err)
		}
		if err := repo.Delete(ctx, netflix.ID, "user_2"); !errors.Is(err, domainerror.ErrRecurringNotFound) {
			t.Errorf("expected not found deleting as other owner, got %v", err)
		}
	})
}

func TestProfileRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(newTestDB(t))

	username := "asha"
	budget := decimal.NewFromInt(1000)
	now := time.Now().UTC()
	asha := &entity.Profile{
		OwnerID:            "user_1",
		FullName:           "Asha",
		Email:              "asha@example.com",
		Username:           &username,
		UserType:           entity.UserTypeStudent,
		IncomeTrackingMode: entity.IncomeModeVariable,
		MonthlyBudget:      &budget,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := repo.Upsert(ctx, asha); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.FindByOwner(ctx, "nobody"); !errors.Is(err, domainerror.ErrProfileNotFound) {
		t.Errorf("expected not found, got %v", err)
	}

	t.Run("upsert replaces the existing row", func(t *testing.T) {
		asha.FullName = "Asha K"
		if err := repo.Upsert(ctx, asha); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := repo.FindByEmail(ctx, "asha@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.FullName != "Asha K" || got.MonthlyBudget == nil || !got.MonthlyBudget.Equal(budget) {
			t.Errorf("unexpected profile %+v", got)
		}
		if byName, err := repo.FindByUsername(ctx, "asha"); err != nil || byName.OwnerID != "user_1" {
			t.Errorf("expected lookup by username, got %v (err %v)", byName, err)
		}
	})

	t.Run("unique email and username", func(t *testing.T) {
		clash := &entity.Profile{OwnerID: "user_2", FullName: "B", Email: "asha@example.com", CreatedAt: now, UpdatedAt: now}
		if err := repo.Upsert(ctx, clash); !errors.Is(err, domainerror.ErrEmailInUse) {
			t.Errorf("expected email in use, got %v", err)
		}

		clash = &entity.Profile{OwnerID: "user_2", FullName: "B", Email: "b@example.com", Username: &username, CreatedAt: now, UpdatedAt: now}
		if err := repo.Upsert(ctx, clash); !errors.Is(err, domainerror.ErrUsernameInUse) {
			t.Errorf("expected username in use, got %v", err)
		}
	})

	t.Run("profiles with email", func(t *testing.T) {
		second := &entity.Profile{OwnerID: "user_0", FullName: "Zed", Email: "zed@example.com", CreatedAt: now, UpdatedAt: now}
		if err := repo.Upsert(ctx, second); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		profiles, err := repo.FindAllWithEmail(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(profiles) != 2 || profiles[0].OwnerID != "user_0" {
			t.Errorf("unexpected profiles %d", len(profiles))
		}
	})
}
