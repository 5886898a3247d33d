package mysql

import (
	"context"
	"errors"
	"time"

	"resto-pos-backend/internal/domain/dayclose"

	"gorm.io/gorm"
)

type OpeningRepository struct{ db *gorm.DB }

func NewOpeningRepository(db *gorm.DB) *OpeningRepository { return &OpeningRepository{db: db} }

func (r *OpeningRepository) Create(ctx context.Context, o *dayclose.DayOpening) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OpeningRepository) Save(ctx context.Context, o *dayclose.DayOpening) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OpeningRepository) FindByDateAndCashier(ctx context.Context, businessDate time.Time, cashierID uint64) (*dayclose.DayOpening, error) {
	var out dayclose.DayOpening
	err := r.db.WithContext(ctx).
		Where("business_date = ? AND cashier_id = ?", dayclose.NormalizeDate(businessDate), cashierID).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, dayclose.ErrOpeningNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *OpeningRepository) ListByDate(ctx context.Context, businessDate time.Time) ([]dayclose.DayOpening, error) {
	var out []dayclose.DayOpening
	err := r.db.WithContext(ctx).
		Where("business_date = ? AND is_active = ?", dayclose.NormalizeDate(businessDate), true).
		Order("cashier_id ASC").
		Find(&out).Error
	return out, err
}
