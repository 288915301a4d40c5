package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homefix/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrDuplicatePayment = errors.New("payment already recorded")
)

// PaymentRepository stores the booking payment ledger.
type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	SumVolumeSince(ctx context.Context, contractorID uuid.UUID, since time.Time) (int64, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePayment
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return &payment, nil
}

// SumVolumeSince totals non-canceled payment amounts for a contractor created at or after since.
func (r *paymentRepository) SumVolumeSince(ctx context.Context, contractorID uuid.UUID, since time.Time) (int64, error) {
	var total int64
	if err := volumeQuery(r.db.WithContext(ctx), contractorID, since).Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to sum contractor volume: %w", err)
	}
	return total, nil
}

// volumeQuery sums a contractor's non-canceled payments created at or after since.
func volumeQuery(db *gorm.DB, contractorID uuid.UUID, since time.Time) *gorm.DB {
	return db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("contractor_id = ? AND created_at >= ? AND status <> ?", contractorID, since, models.PaymentStatusCanceled)
}
