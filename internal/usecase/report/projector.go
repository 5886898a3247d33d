package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"resto-pos-backend/internal/domain/dayclose"

	"github.com/shopspring/decimal"
)

// Projector builds range reports from persisted closes and lock audits. It never writes.
type Projector struct {
	closes    dayclose.CloseRepository
	audits    dayclose.AuditRepository
	tolerance decimal.Decimal
	maxDays   int
	now       func() time.Time
}

func NewProjector(closes dayclose.CloseRepository, audits dayclose.AuditRepository, tolerance decimal.Decimal, maxDays int) *Projector {
	return &Projector{
		closes:    closes,
		audits:    audits,
		tolerance: tolerance,
		maxDays:   maxDays,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (p *Projector) validate(in Input) (time.Time, time.Time, error) {
	if in.From.IsZero() {
		return time.Time{}, time.Time{}, dayclose.Invalid("start_date", "is required")
	}
	if in.To.IsZero() {
		return time.Time{}, time.Time{}, dayclose.Invalid("end_date", "is required")
	}
	from, to := dayclose.NormalizeDate(in.From), dayclose.NormalizeDate(in.To)
	if to.Before(from) {
		return time.Time{}, time.Time{}, dayclose.Invalid("end_date", "must not be before start_date")
	}
	if p.maxDays > 0 {
		if days := int(to.Sub(from).Hours()/24) + 1; days > p.maxDays {
			return time.Time{}, time.Time{}, dayclose.Invalid("end_date", fmt.Sprintf("range must not exceed %d days", p.maxDays))
		}
	}
	if in.CashierID != nil && *in.CashierID == 0 {
		return time.Time{}, time.Time{}, dayclose.Invalid("cashier_id", "must be positive")
	}
	return from, to, nil
}

func (p *Projector) CashClosingReport(ctx context.Context, in Input) (*CashClosingReport, error) {
	from, to, err := p.validate(in)
	if err != nil {
		return nil, err
	}
	rows, err := p.closes.ListByRange(ctx, from, to, in.CashierID)
	if err != nil {
		return nil, err
	}
	audits, err := p.audits.ListByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return Build(from, to, rows, audits, p.tolerance, p.now()), nil
}

// Build is the pure projection behind CashClosingReport.
func Build(from, to time.Time, rows []dayclose.DayClose, audits []dayclose.DayLockAudit, tolerance decimal.Decimal, generatedAt time.Time) *CashClosingReport {
	out := &CashClosingReport{
		GeneratedAt: generatedAt,
		Summary: Summary{
			From: from.Format(dayclose.DateLayout),
			To:   to.Format(dayclose.DateLayout),
		},
		Daily:       []DailyRow{},
		Details:     make([]DetailRow, 0, len(rows)),
		Cashiers:    []CashierStats{},
		LockHistory: make([]LockEvent, 0, len(audits)),
	}

	// audits arrive ordered by lock_time, so the last one per date wins
	latest := map[string]dayclose.AuditStatus{}
	for _, a := range audits {
		date := a.BusinessDate.Format(dayclose.DateLayout)
		latest[date] = a.Status
		out.LockHistory = append(out.LockHistory, LockEvent{
			LockID:       a.LockID,
			BusinessDate: date,
			Status:       string(a.Status),
			LockedBy:     a.LockedBy,
			LockTime:     a.LockTime,
			Remarks:      a.Remarks,
			ReopenedBy:   a.ReopenedBy,
			ReopenedAt:   a.ReopenedAt,
			ReopenReason: a.ReopenReason,
		})
	}
	for _, st := range latest {
		if st == dayclose.AuditLocked {
			out.Summary.LockedDays++
		}
	}

	s := &out.Summary
	daily := map[string]*DailyRow{}
	var dates []string
	stats := map[uint64]*CashierStats{}
	var cashierIDs []uint64

	for i := range rows {
		r := &rows[i]
		date := r.BusinessDate.Format(dayclose.DateLayout)

		out.Details = append(out.Details, DetailRow{
			CloseID:         r.ID,
			BusinessDate:    date,
			CashierID:       r.CashierID,
			CashierName:     r.CashierName,
			OpeningFloat:    r.OpeningFloat,
			SystemAmount:    r.SystemAmount,
			ExpectedCash:    r.ExpectedCash(),
			DeclaredAmount:  r.DeclaredAmount,
			Variance:        r.Variance,
			Status:          string(r.Status),
			ApprovedBy:      r.ApprovedBy,
			ApprovalComment: r.ApprovalComment,
			LockedBy:        r.LockedBy,
			LockedAt:        r.LockedAt,
		})

		dr, ok := daily[date]
		if !ok {
			dr = &DailyRow{BusinessDate: date, DayLocked: latest[date] == dayclose.AuditLocked}
			daily[date] = dr
			dates = append(dates, date)
		}
		cs, ok := stats[r.CashierID]
		if !ok {
			cs = &CashierStats{CashierID: r.CashierID, CashierName: r.CashierName}
			stats[r.CashierID] = cs
			cashierIDs = append(cashierIDs, r.CashierID)
		}

		s.Records++
		s.TotalOpeningFloat = s.TotalOpeningFloat.Add(r.OpeningFloat)
		s.TotalSystemAmount = s.TotalSystemAmount.Add(r.SystemAmount)
		s.TotalExpectedCash = s.TotalExpectedCash.Add(r.ExpectedCash())
		dr.Cashiers++
		dr.OpeningFloat = dr.OpeningFloat.Add(r.OpeningFloat)
		dr.SystemAmount = dr.SystemAmount.Add(r.SystemAmount)
		cs.Days++

		switch r.Status {
		case dayclose.StatusPending:
			s.PendingCount++
			dr.PendingCount++
		case dayclose.StatusOK:
			s.OKCount++
			dr.OKCount++
		case dayclose.StatusCheck:
			s.CheckCount++
			dr.CheckCount++
		case dayclose.StatusLocked:
			s.LockedCount++
			dr.LockedCount++
		}

		if r.DeclaredAmount == nil || r.Variance == nil {
			continue
		}
		v := *r.Variance
		s.DeclaredRecords++
		s.TotalDeclared = s.TotalDeclared.Add(*r.DeclaredAmount)
		s.TotalVariance = s.TotalVariance.Add(v)
		if v.IsPositive() {
			s.TotalOverage = s.TotalOverage.Add(v)
		} else {
			s.TotalShortage = s.TotalShortage.Add(v.Abs())
		}
		dr.DeclaredTotal = dr.DeclaredTotal.Add(*r.DeclaredAmount)
		dr.Variance = dr.Variance.Add(v)

		cs.DeclaredDays++
		cs.TotalVariance = cs.TotalVariance.Add(v)
		if dayclose.Classify(v, tolerance) == dayclose.StatusOK {
			cs.WithinTolerance++
		} else {
			cs.AboveTolerance++
		}
		if cs.BestVariance == nil || v.Abs().LessThan(cs.BestVariance.Abs()) {
			best := v
			cs.BestVariance = &best
			cs.BestDate = date
		}
		if cs.WorstVariance == nil || v.Abs().GreaterThan(cs.WorstVariance.Abs()) {
			worst := v
			cs.WorstVariance = &worst
			cs.WorstDate = date
		}
	}

	sort.Strings(dates)
	for _, d := range dates {
		out.Daily = append(out.Daily, *daily[d])
	}
	s.Days = len(dates)

	sort.Slice(cashierIDs, func(i, j int) bool {
		a, b := stats[cashierIDs[i]], stats[cashierIDs[j]]
		if a.CashierName != b.CashierName {
			return a.CashierName < b.CashierName
		}
		return a.CashierID < b.CashierID
	})
	for _, id := range cashierIDs {
		cs := stats[id]
		if cs.DeclaredDays > 0 {
			cs.AverageVariance = dayclose.Money(cs.TotalVariance.Div(decimal.NewFromInt(int64(cs.DeclaredDays))))
		}
		out.Cashiers = append(out.Cashiers, *cs)
	}
	s.Cashiers = len(cashierIDs)
	return out
}
