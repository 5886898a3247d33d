package dayclosing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"resto-pos-backend/internal/domain/dayclose"
	"resto-pos-backend/internal/domain/uow"
	"resto-pos-backend/internal/usecase/report"
	"resto-pos-backend/pkg/id"

	"github.com/sirupsen/logrus"
)

// LockDay freezes every row of the date and appends a LOCKED audit entry.
// It refuses while any row is PENDING or an unapproved CHECK.
func (u *Usecase) LockDay(ctx context.Context, in LockInput) LockResult {
	date, err := requireDate(in.BusinessDate)
	var actor string
	if err == nil {
		actor, err = requireActor("actor", in.Actor)
	}
	var remarks *string
	if err == nil {
		remarks, err = optionalText("remarks", in.Remarks)
	}
	if err != nil {
		return LockResult{Result: u.failure("LockDay", nil, err)}
	}
	data := map[string]any{"business_date": dateKey(date)}

	var (
		audit  *dayclose.DayLockAudit
		locked int
	)
	err = u.withinDate(ctx, date, func(r uow.Repos) error {
		if err := ensureDateOpen(ctx, r, date); err != nil {
			return err
		}
		rows, err := r.Closes.ListByDate(ctx, date)
		if err != nil {
			return err
		}
		if err := dayclose.CheckLockable(date, rows); err != nil {
			return err
		}

		now := u.now()
		for i := range rows {
			row := &rows[i]
			if row.IsLocked() {
				continue
			}
			if err := row.ApplyLock(actor, now); err != nil {
				return err
			}
			if err := r.Closes.Save(ctx, row); err != nil {
				return err
			}
			locked++
		}

		audit = &dayclose.DayLockAudit{
			LockID:       id.NewLockID(),
			BusinessDate: date,
			LockedBy:     actor,
			LockTime:     now,
			Remarks:      remarks,
			Status:       dayclose.AuditLocked,
		}
		return r.Audits.Append(ctx, audit)
	})
	if err != nil {
		res := LockResult{Result: u.failure("LockDay", data, err)}
		var notReady *dayclose.DayNotReadyError
		if errors.As(err, &notReady) {
			res.IssueCount = notReady.IssueCount
		}
		return res
	}

	u.log.WithFields(logrus.Fields{
		"module":        moduleName,
		"business_date": dateKey(date),
		"lock_id":       audit.LockID,
		"rows_locked":   locked,
		"actor":         actor,
	}).Info("business date locked")

	return LockResult{
		Result:     success(fmt.Sprintf("business date %s locked, %d row(s) frozen", dateKey(date), locked)),
		RowsLocked: locked,
		Audit:      audit,
	}
}

// ReopenDay unlocks a locked date so corrections can be made. The lock history is kept and a
// REOPENED entry becomes the latest audit.
func (u *Usecase) ReopenDay(ctx context.Context, in ReopenInput) ReopenResult {
	date, err := requireDate(in.BusinessDate)
	var actor string
	if err == nil {
		actor, err = requireActor("actor", in.Actor)
	}
	reason := strings.TrimSpace(in.Reason)
	if err == nil && reason == "" {
		err = dayclose.Invalid("reason", "is required")
	}
	if err == nil && len(reason) > maxCommentLen {
		err = dayclose.Invalid("reason", fmt.Sprintf("must be at most %d characters", maxCommentLen))
	}
	if err != nil {
		return ReopenResult{Result: u.failure("ReopenDay", nil, err)}
	}
	data := map[string]any{"business_date": dateKey(date)}

	var (
		audit    *dayclose.DayLockAudit
		reopened int
	)
	err = u.withinDate(ctx, date, func(r uow.Repos) error {
		latest, err := r.Audits.Latest(ctx, date)
		if err != nil {
			return err
		}
		if !dayclose.IsDateLocked(latest) {
			return fmt.Errorf("%w: business date %s", dayclose.ErrDayNotLocked, dateKey(date))
		}
		rows, err := r.Closes.ListByDate(ctx, date)
		if err != nil {
			return err
		}

		now := u.now()
		for i := range rows {
			row := &rows[i]
			if !row.IsLocked() {
				continue
			}
			if err := row.ApplyReopen(actor, now); err != nil {
				return err
			}
			if err := r.Closes.Save(ctx, row); err != nil {
				return err
			}
			reopened++
		}

		audit = &dayclose.DayLockAudit{
			LockID:       id.NewLockID(),
			BusinessDate: date,
			LockedBy:     latest.LockedBy,
			LockTime:     now,
			Remarks:      latest.Remarks,
			Status:       dayclose.AuditReopened,
			ReopenedBy:   &actor,
			ReopenedAt:   &now,
			ReopenReason: &reason,
		}
		return r.Audits.Append(ctx, audit)
	})
	if err != nil {
		return ReopenResult{Result: u.failure("ReopenDay", data, err)}
	}

	u.log.WithFields(logrus.Fields{
		"module":        moduleName,
		"business_date": dateKey(date),
		"lock_id":       audit.LockID,
		"rows_reopened": reopened,
		"actor":         actor,
	}).Warn("business date reopened")

	return ReopenResult{
		Result:       success(fmt.Sprintf("business date %s reopened, %d row(s) unlocked", dateKey(date), reopened)),
		RowsReopened: reopened,
		Audit:        audit,
	}
}

// GenerateEODReport combines the closing summary, lock state and sales rollup of one date.
func (u *Usecase) GenerateEODReport(ctx context.Context, businessDate time.Time, generatedBy string) EODResult {
	actor, err := requireActor("generated_by", generatedBy)
	if err != nil {
		return EODResult{Result: u.failure("GenerateEODReport", nil, err)}
	}
	summary := u.GetDayClosingSummary(ctx, businessDate)
	if !summary.Success {
		return EODResult{Result: summary.Result}
	}
	status := u.GetDayLockStatus(ctx, businessDate)
	if !status.Success {
		return EODResult{Result: status.Result}
	}
	date := dayclose.NormalizeDate(businessDate)
	sales, err := u.repos.Ledger.GetSalesSummary(ctx, date)
	if err != nil {
		return EODResult{Result: u.failure("GenerateEODReport", map[string]any{"business_date": dateKey(date)}, err)}
	}
	return EODResult{
		Result: success(fmt.Sprintf("end of day report for %s", dateKey(date))),
		Report: &EODReport{
			BusinessDate: dateKey(date),
			GeneratedBy:  actor,
			GeneratedAt:  u.now(),
			Rows:         summary.Rows,
			Totals:       summary.Totals,
			Locked:       status.Locked,
			LatestAudit:  status.Latest,
			Sales:        sales,
		},
	}
}

// GenerateCashClosingReport projects closes and lock history over a date range.
func (u *Usecase) GenerateCashClosingReport(ctx context.Context, in report.Input) ReportResult {
	rep, err := u.reporter.CashClosingReport(ctx, in)
	if err != nil {
		return ReportResult{Result: u.failure("GenerateCashClosingReport", nil, err)}
	}
	return ReportResult{
		Result: success(fmt.Sprintf("%d record(s) between %s and %s", len(rep.Details), rep.Summary.From, rep.Summary.To)),
		Report: rep,
	}
}
