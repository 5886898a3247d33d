package mysql

import (
	"context"
	"errors"
	"time"

	"resto-pos-backend/internal/domain/dayclose"

	"gorm.io/gorm"
)

// LockAuditRepository only ever inserts; there is no update or delete path.
type LockAuditRepository struct{ db *gorm.DB }

func NewLockAuditRepository(db *gorm.DB) *LockAuditRepository { return &LockAuditRepository{db: db} }

func (r *LockAuditRepository) Append(ctx context.Context, a *dayclose.DayLockAudit) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *LockAuditRepository) Latest(ctx context.Context, businessDate time.Time) (*dayclose.DayLockAudit, error) {
	var out dayclose.DayLockAudit
	err := r.db.WithContext(ctx).
		Where("business_date = ?", dayclose.NormalizeDate(businessDate)).
		Order("lock_time DESC, id DESC").
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *LockAuditRepository) ListByRange(ctx context.Context, from, to time.Time) ([]dayclose.DayLockAudit, error) {
	var out []dayclose.DayLockAudit
	err := r.db.WithContext(ctx).
		Where("business_date >= ? AND business_date <= ?", dayclose.NormalizeDate(from), dayclose.NormalizeDate(to)).
		Order("lock_time ASC, id ASC").
		Find(&out).Error
	return out, err
}
