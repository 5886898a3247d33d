package report

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetSummary     = "Summary"
	SheetDaily       = "Daily"
	SheetDetails     = "Details"
	SheetCashiers    = "Cashiers"
	SheetLockHistory = "LockHistory"
)

// ExportXLSX renders the report as a workbook with one sheet per section.
func ExportXLSX(r *CashClosingReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, err
	}
	for _, name := range []string{SheetDaily, SheetDetails, SheetCashiers, SheetLockHistory} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	s := r.Summary
	summary := [][]any{
		{"Field", "Value"},
		{"From", s.From},
		{"To", s.To},
		{"Generated At", r.GeneratedAt.Format(time.RFC3339)},
		{"Records", s.Records},
		{"Days", s.Days},
		{"Cashiers", s.Cashiers},
		{"Declared Records", s.DeclaredRecords},
		{"Total Opening Float", num(s.TotalOpeningFloat)},
		{"Total System Amount", num(s.TotalSystemAmount)},
		{"Total Expected Cash", num(s.TotalExpectedCash)},
		{"Total Declared", num(s.TotalDeclared)},
		{"Total Variance", num(s.TotalVariance)},
		{"Total Overage", num(s.TotalOverage)},
		{"Total Shortage", num(s.TotalShortage)},
		{"Pending", s.PendingCount},
		{"OK", s.OKCount},
		{"Check", s.CheckCount},
		{"Locked", s.LockedCount},
		{"Locked Days", s.LockedDays},
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return nil, err
	}

	daily := [][]any{{"Business Date", "Cashiers", "Opening Float", "System Amount", "Declared", "Variance", "Pending", "OK", "Check", "Locked", "Day Locked"}}
	for _, d := range r.Daily {
		daily = append(daily, []any{d.BusinessDate, d.Cashiers, num(d.OpeningFloat), num(d.SystemAmount), num(d.DeclaredTotal), num(d.Variance),
			d.PendingCount, d.OKCount, d.CheckCount, d.LockedCount, d.DayLocked})
	}
	if err := writeRows(f, SheetDaily, daily); err != nil {
		return nil, err
	}

	details := [][]any{{"Close ID", "Business Date", "Cashier ID", "Cashier", "Opening Float", "System Amount", "Expected Cash", "Declared", "Variance", "Status", "Approved By", "Approval Comment", "Locked By"}}
	for _, d := range r.Details {
		details = append(details, []any{d.CloseID, d.BusinessDate, d.CashierID, d.CashierName, num(d.OpeningFloat), num(d.SystemAmount), num(d.ExpectedCash),
			numPtr(d.DeclaredAmount), numPtr(d.Variance), d.Status, str(d.ApprovedBy), str(d.ApprovalComment), str(d.LockedBy)})
	}
	if err := writeRows(f, SheetDetails, details); err != nil {
		return nil, err
	}

	cashiers := [][]any{{"Cashier ID", "Cashier", "Days", "Declared Days", "Within Tolerance", "Above Tolerance", "Total Variance", "Average Variance", "Best Variance", "Best Date", "Worst Variance", "Worst Date"}}
	for _, c := range r.Cashiers {
		cashiers = append(cashiers, []any{c.CashierID, c.CashierName, c.Days, c.DeclaredDays, c.WithinTolerance, c.AboveTolerance,
			num(c.TotalVariance), num(c.AverageVariance), numPtr(c.BestVariance), c.BestDate, numPtr(c.WorstVariance), c.WorstDate})
	}
	if err := writeRows(f, SheetCashiers, cashiers); err != nil {
		return nil, err
	}

	history := [][]any{{"Lock ID", "Business Date", "Status", "Locked By", "Lock Time", "Remarks", "Reopened By", "Reopen Reason"}}
	for _, e := range r.LockHistory {
		history = append(history, []any{e.LockID, e.BusinessDate, e.Status, e.LockedBy, e.LockTime.Format(time.RFC3339), str(e.Remarks), str(e.ReopenedBy), str(e.ReopenReason)})
	}
	if err := writeRows(f, SheetLockHistory, history); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// spreadsheets want numbers, not decimal strings
func num(d decimal.Decimal) float64 { return d.InexactFloat64() }

func numPtr(d *decimal.Decimal) any {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
