package mysql

import (
	"context"
	"errors"
	"time"

	"resto-pos-backend/internal/domain/dayclose"

	"gorm.io/gorm"
)

type DayCloseRepository struct{ db *gorm.DB }

func NewDayCloseRepository(db *gorm.DB) *DayCloseRepository { return &DayCloseRepository{db: db} }

func (r *DayCloseRepository) Create(ctx context.Context, c *dayclose.DayClose) error {
	if c.Version == 0 {
		c.Version = 1
	}
	return r.db.WithContext(ctx).Create(c).Error
}

// Save writes every column, but only if nobody bumped the version since c was read.
func (r *DayCloseRepository) Save(ctx context.Context, c *dayclose.DayClose) error {
	prev := c.Version
	c.Version = prev + 1
	res := r.db.WithContext(ctx).
		Model(&dayclose.DayClose{}).
		Where("id = ? AND version = ?", c.ID, prev).
		Select("*").
		Omit("id", "created_at", "created_by").
		Updates(c)
	if res.Error != nil {
		c.Version = prev
		return res.Error
	}
	if res.RowsAffected == 0 {
		c.Version = prev
		return dayclose.ErrConcurrentModification
	}
	return nil
}

func (r *DayCloseRepository) FindByID(ctx context.Context, id uint64) (*dayclose.DayClose, error) {
	var out dayclose.DayClose
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error
	return wrapClose(&out, err)
}

func (r *DayCloseRepository) FindByDateAndCashier(ctx context.Context, businessDate time.Time, cashierID uint64) (*dayclose.DayClose, error) {
	var out dayclose.DayClose
	err := r.db.WithContext(ctx).
		Where("business_date = ? AND cashier_id = ?", dayclose.NormalizeDate(businessDate), cashierID).
		First(&out).Error
	return wrapClose(&out, err)
}

func (r *DayCloseRepository) ListByDate(ctx context.Context, businessDate time.Time) ([]dayclose.DayClose, error) {
	var out []dayclose.DayClose
	err := r.db.WithContext(ctx).
		Where("business_date = ?", dayclose.NormalizeDate(businessDate)).
		Order("cashier_name ASC, cashier_id ASC").
		Find(&out).Error
	return out, err
}

func (r *DayCloseRepository) ListByRange(ctx context.Context, from, to time.Time, cashierID *uint64) ([]dayclose.DayClose, error) {
	var out []dayclose.DayClose
	q := r.db.WithContext(ctx).
		Where("business_date >= ? AND business_date <= ?", dayclose.NormalizeDate(from), dayclose.NormalizeDate(to))
	if cashierID != nil {
		q = q.Where("cashier_id = ?", *cashierID)
	}
	err := q.Order("business_date ASC, cashier_name ASC, cashier_id ASC").Find(&out).Error
	return out, err
}

func wrapClose(c *dayclose.DayClose, err error) (*dayclose.DayClose, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, dayclose.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}
