package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// recurringPaymentRepository implements the adapter.RecurringPaymentRepository interface.
type recurringPaymentRepository struct {
	db *gorm.DB
}

// NewRecurringPaymentRepository creates a new recurring payment repository instance.
func NewRecurringPaymentRepository(db *gorm.DB) adapter.RecurringPaymentRepository {
	return &recurringPaymentRepository{
		db: db,
	}
}

// Create creates a new recurring payment. The (owner, vendor) unique index
// turns a concurrent duplicate into domainerror.ErrDuplicateVendor.
func (r *recurringPaymentRepository) Create(ctx context.Context, payment *entity.RecurringPayment) error {
	if err := r.db.WithContext(ctx).Create(model.RecurringPaymentFromEntity(payment)).Error; err != nil {
		if isDuplicateKey(err) {
			return domainerror.ErrDuplicateVendor
		}
		return err
	}
	return nil
}

// FindByIDAndOwner retrieves a recurring payment by its ID, scoped to its owner.
func (r *recurringPaymentRepository) FindByIDAndOwner(ctx context.Context, id uuid.UUID, ownerID string) (*entity.RecurringPayment, error) {
	var paymentModel model.RecurringPaymentModel
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

// FindByOwner lists the owner's recurring payments, newest first.
func (r *recurringPaymentRepository) FindByOwner(ctx context.Context, ownerID string) ([]*entity.RecurringPayment, error) {
	return r.find(r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC"))
}

// FindActive lists every active recurring payment, oldest first.
func (r *recurringPaymentRepository) FindActive(ctx context.Context) ([]*entity.RecurringPayment, error) {
	return r.find(r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC"))
}

func (r *recurringPaymentRepository) find(query *gorm.DB) ([]*entity.RecurringPayment, error) {
	var paymentModels []model.RecurringPaymentModel
	if err := query.Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*entity.RecurringPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = paymentModels[i].ToEntity()
	}
	return payments, nil
}

// ExistsByVendor reports whether the owner already tracks vendor.
func (r *recurringPaymentRepository) ExistsByVendor(ctx context.Context, ownerID, vendor string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&model.RecurringPaymentModel{}).
		Where("owner_id = ? AND vendor_name = ?", ownerID, vendor)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Update saves every mutable field, including a cleared next due date.
func (r *recurringPaymentRepository) Update(ctx context.Context, payment *entity.RecurringPayment) error {
	result := r.db.WithContext(ctx).
		Model(&model.RecurringPaymentModel{}).
		Where("id = ? AND owner_id = ?", payment.ID, payment.OwnerID).
		Updates(map[string]interface{}{
			"vendor_name":   payment.VendorName,
			"amount":        payment.Amount,
			"category":      payment.Category,
			"frequency":     string(payment.Frequency),
			"start_date":    payment.StartDate,
			"next_due_date": payment.NextDueDate,
			"is_active":     payment.IsActive,
			"updated_at":    payment.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return domainerror.ErrDuplicateVendor
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringNotFound
	}
	return nil
}

// Delete removes a recurring payment owned by ownerID.
func (r *recurringPaymentRepository) Delete(ctx context.Context, id uuid.UUID, ownerID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&model.RecurringPaymentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringNotFound
	}
	return nil
}
