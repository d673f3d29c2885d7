// Package adaptertest provides in-memory implementations of the adapter
// interfaces for use case tests.
package adaptertest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ExpenseRepository is an in-memory adapter.ExpenseRepository.
type ExpenseRepository struct {
	mu       sync.Mutex
	expenses map[uuid.UUID]*entity.Expense

	// CreateErr, when set, is returned by Create for matching expenses.
	CreateErr func(expense *entity.Expense) error

	// FindErr, when set, is returned by FindByOwner.
	FindErr error
}

// NewExpenseRepository creates an empty ExpenseRepository.
func NewExpenseRepository() *ExpenseRepository {
	return &ExpenseRepository{expenses: make(map[uuid.UUID]*entity.Expense)}
}

func (r *ExpenseRepository) Create(_ context.Context, expense *entity.Expense) error {
	if r.CreateErr != nil {
		if err := r.CreateErr(expense); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *expense
	r.expenses[expense.ID] = &cp
	return nil
}

func (r *ExpenseRepository) FindByIDAndOwner(_ context.Context, id uuid.UUID, ownerID string) (*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.OwnerID != ownerID {
		return nil, domainerror.ErrExpenseNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *ExpenseRepository) FindByOwner(_ context.Context, ownerID string, filter entity.ExpenseFilter) ([]*entity.Expense, error) {
	if r.FindErr != nil {
		return nil, r.FindErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Expense, 0)
	for _, e := range r.expenses {
		if e.OwnerID != ownerID {
			continue
		}
		if filter.From != nil && e.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !e.Date.Before(*filter.To) {
			continue
		}
		cp := *e
		result = append(result, &cp)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

func (r *ExpenseRepository) Update(_ context.Context, expense *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.expenses[expense.ID]; !ok {
		return domainerror.ErrExpenseNotFound
	}
	cp := *expense
	r.expenses[expense.ID] = &cp
	return nil
}

func (r *ExpenseRepository) Delete(_ context.Context, id uuid.UUID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.expenses[id]
	if !ok || e.OwnerID != ownerID {
		return domainerror.ErrExpenseNotFound
	}
	delete(r.expenses, id)
	return nil
}

func (r *ExpenseRepository) ExistsRecurringInRange(_ context.Context, ownerID, vendor string, from, to time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.expenses {
		if e.OwnerID != ownerID || e.RecurringVendor == nil || *e.RecurringVendor != vendor {
			continue
		}
		if !e.Date.Before(from) && e.Date.Before(to) {
			return true, nil
		}
	}
	return false, nil
}

// All returns every stored expense.
func (r *ExpenseRepository) All() []*entity.Expense {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Expense, 0, len(r.expenses))
	for _, e := range r.expenses {
		cp := *e
		result = append(result, &cp)
	}
	return result
}

// RecurringPaymentRepository is an in-memory adapter.RecurringPaymentRepository.
type RecurringPaymentRepository struct {
	mu       sync.Mutex
	payments map[uuid.UUID]*entity.RecurringPayment

	// FindActiveErr, when set, is returned by FindActive.
	FindActiveErr error

	// UpdateErr, when set, is returned by Update for matching payments.
	UpdateErr func(payment *entity.RecurringPayment) error
}

// NewRecurringPaymentRepository creates an empty RecurringPaymentRepository.
func NewRecurringPaymentRepository() *RecurringPaymentRepository {
	return &RecurringPaymentRepository{payments: make(map[uuid.UUID]*entity.RecurringPayment)}
}

func (r *RecurringPaymentRepository) Create(_ context.Context, payment *entity.RecurringPayment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *RecurringPaymentRepository) FindByIDAndOwner(_ context.Context, id uuid.UUID, ownerID string) (*entity.RecurringPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.OwnerID != ownerID {
		return nil, domainerror.ErrRecurringNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *RecurringPaymentRepository) FindByOwner(_ context.Context, ownerID string) ([]*entity.RecurringPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.RecurringPayment, 0)
	for _, p := range r.payments {
		if p.OwnerID == ownerID {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *RecurringPaymentRepository) FindActive(_ context.Context) ([]*entity.RecurringPayment, error) {
	if r.FindActiveErr != nil {
		return nil, r.FindActiveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.RecurringPayment, 0)
	for _, p := range r.payments {
		if p.IsActive {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

func (r *RecurringPaymentRepository) ExistsByVendor(_ context.Context, ownerID, vendor string, excludeID *uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if excludeID != nil && p.ID == *excludeID {
			continue
		}
		if p.OwnerID == ownerID && p.VendorName == vendor {
			return true, nil
		}
	}
	return false, nil
}

func (r *RecurringPaymentRepository) Update(_ context.Context, payment *entity.RecurringPayment) error {
	if r.UpdateErr != nil {
		if err := r.UpdateErr(payment); err != nil {
			return err
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.payments[payment.ID]; !ok {
		return domainerror.ErrRecurringNotFound
	}
	cp := *payment
	r.payments[payment.ID] = &cp
	return nil
}

func (r *RecurringPaymentRepository) Delete(_ context.Context, id uuid.UUID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok || p.OwnerID != ownerID {
		return domainerror.ErrRecurringNotFound
	}
	delete(r.payments, id)
	return nil
}

// Get returns the stored payment with id, or nil.
func (r *RecurringPaymentRepository) Get(id uuid.UUID) *entity.RecurringPayment {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ProfileRepository is an in-memory adapter.ProfileRepository.
type ProfileRepository struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
}

// NewProfileRepository creates an empty ProfileRepository.
func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[string]*entity.Profile)}
}

func (r *ProfileRepository) FindByOwner(_ context.Context, ownerID string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, domainerror.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *ProfileRepository) FindByEmail(_ context.Context, email string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domainerror.ErrProfileNotFound
}

func (r *ProfileRepository) FindByUsername(_ context.Context, username string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.Username != nil && *p.Username == username {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domainerror.ErrProfileNotFound
}

func (r *ProfileRepository) Upsert(_ context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *profile
	r.profiles[profile.OwnerID] = &cp
	return nil
}

func (r *ProfileRepository) FindAllWithEmail(_ context.Context) ([]*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*entity.Profile, 0)
	for _, p := range r.profiles {
		if p.Email != "" {
			cp := *p
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OwnerID < result[j].OwnerID })
	return result, nil
}
