package mysql

import (
	"context"
	"time"

	"resto-pos-backend/internal/domain/dayclose"
	"resto-pos-backend/internal/domain/uow"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// NewRepos binds every repository to db, which may be a plain handle or a tx.
func NewRepos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Openings: &OpeningRepository{db: db},
		Closes:   &DayCloseRepository{db: db},
		Audits:   &LockAuditRepository{db: db},
		Users:    &UserRepository{db: db},
		Ledger:   &LedgerReader{db: db},
	}
}

func (u *GormUoW) WithinDateTx(ctx context.Context, businessDate time.Time, fn func(r uow.Repos) error) error {
	date := dayclose.NormalizeDate(businessDate)
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// make sure the guard row exists, then lock it up-front so same-date writers queue here
		guard := dayclose.DateGuard{BusinessDate: date, CreatedAt: time.Now().UTC()}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&guard).Error; err != nil {
			return err
		}
		var locked dayclose.DateGuard
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("business_date = ?", date).
			First(&locked).Error; err != nil {
			return err
		}
		return fn(NewRepos(tx))
	})
}
