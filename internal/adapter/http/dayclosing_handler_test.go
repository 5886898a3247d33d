package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resto-pos-backend/internal/adapter/middleware"
	mysqlrepo "resto-pos-backend/internal/adapter/repository/mysql"
	"resto-pos-backend/internal/domain/dayclose"
	"resto-pos-backend/internal/domain/ledger"
	"resto-pos-backend/internal/domain/staff"
	infradb "resto-pos-backend/internal/infrastructure/db"
	"resto-pos-backend/internal/infrastructure/logging"
	"resto-pos-backend/internal/usecase/dayclosing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testDay = "2024-01-15"

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	return e
}

type server struct {
	e  *echo.Echo
	db *gorm.DB
}

func newServer(t *testing.T) *server {
	t.Helper()
	db, err := infradb.OpenSQLite(":memory:", infradb.WithLogLevel(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := infradb.MigrateWithCollaborators(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	uc := dayclosing.NewUsecase(mysqlrepo.NewRepos(db), mysqlrepo.NewGormUoW(db), dayclosing.Policy{
		Tolerance:             decimal.Zero,
		CashierRoles:          []string{"cashier"},
		AllowOpeningOverwrite: true,
	})
	e := newEchoWithValidator()
	RegisterRoutes(e, NewHandler(nil), NewDayClosingHandler(uc, logging.Discard()), nil)
	return &server{e: e, db: db}
}

func (s *server) seedCashier(t *testing.T, username string) uint64 {
	t.Helper()
	var r staff.Role
	if err := s.db.Where("name = ?", "cashier").FirstOrCreate(&r, staff.Role{Name: "cashier"}).Error; err != nil {
		t.Fatalf("seed role: %v", err)
	}
	u := &staff.User{Username: username, RoleID: r.ID, IsActive: true}
	if err := s.db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u.ID
}

func (s *server) seedCash(t *testing.T, cashierID uint64, amount string) {
	t.Helper()
	date, _ := dayclose.ParseDate(testDay)
	p := &ledger.Payment{
		OrderID:      1,
		CashierID:    cashierID,
		BusinessDate: date,
		Method:       ledger.MethodCash,
		Amount:       decimal.RequireFromString(amount),
		Status:       ledger.PaymentCompleted,
		PaidAt:       date.Add(12 * time.Hour),
	}
	if err := s.db.Create(p).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
}

func (s *server) do(t *testing.T, method, path, actor, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if actor != "" {
		req.Header.Set(middleware.HeaderActor, actor)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
	}
	return out
}

func TestDayClosingFlow(t *testing.T) {
	s := newServer(t)
	alice := s.seedCashier(t, "alice")
	s.seedCash(t, alice, "2340")
	base := "/day-closing/" + testDay

	rec := s.do(t, stdhttp.MethodPost, base+"/openings", "manager", fmt.Sprintf(`{"cashier_id":%d,"opening_float":500}`, alice))
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("opening => want 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = s.do(t, stdhttp.MethodPost, base+"/declarations", "alice", fmt.Sprintf(`{"cashier_id":%d,"declared_amount":"2800.00"}`, alice))
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("declare => want 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	decl := decode[dayclosing.DeclareResult](t, rec)
	if decl.Status != dayclose.StatusCheck || !decl.Variance.Equal(decimal.NewFromInt(-40)) {
		t.Fatalf("unexpected declaration: %+v", decl)
	}

	rec = s.do(t, stdhttp.MethodPost, base+"/lock", "manager", "")
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("lock with open CHECK => want 409, got %d (%s)", rec.Code, rec.Body.String())
	}
	lock := decode[dayclosing.LockResult](t, rec)
	if lock.Code != dayclose.CodeDayNotReady || lock.IssueCount != 1 {
		t.Fatalf("unexpected lock result: %+v", lock)
	}

	rec = s.do(t, stdhttp.MethodPost, fmt.Sprintf("/day-closing/closes/%d/approval", decl.CloseID), "supervisor", `{"approved":true,"comment":"counted twice"}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("approve => want 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = s.do(t, stdhttp.MethodPost, base+"/lock", "manager", `{"remarks":"end of day"}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("lock => want 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	lock = decode[dayclosing.LockResult](t, rec)
	if lock.Audit == nil || *lock.Audit.Remarks != "end of day" {
		t.Fatalf("unexpected lock audit: %+v", lock.Audit)
	}

	rec = s.do(t, stdhttp.MethodPost, base+"/declarations", "alice", fmt.Sprintf(`{"cashier_id":%d,"declared_amount":2840}`, alice))
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("declare on locked => want 409, got %d", rec.Code)
	}

	rec = s.do(t, stdhttp.MethodGet, base+"/lock-status", "", "")
	status := decode[dayclosing.LockStatusResult](t, rec)
	if rec.Code != stdhttp.StatusOK || !status.Locked {
		t.Fatalf("lock status => %d %+v", rec.Code, status)
	}

	rec = s.do(t, stdhttp.MethodGet, base+"/summary", "", "")
	sum := decode[dayclosing.SummaryResult](t, rec)
	if len(sum.Rows) != 1 || sum.Rows[0].Status != dayclose.StatusLocked {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	rec = s.do(t, stdhttp.MethodPost, base+"/reopen", "owner", `{"reason":"refund keyed late"}`)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("reopen => want 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = s.do(t, stdhttp.MethodGet, base+"/eod-report", "manager", "")
	eod := decode[dayclosing.EODResult](t, rec)
	if rec.Code != stdhttp.StatusOK || eod.Report == nil || eod.Report.Locked {
		t.Fatalf("eod => %d %+v", rec.Code, eod)
	}
}

func TestDayClosing_RequestErrors(t *testing.T) {
	s := newServer(t)
	alice := s.seedCashier(t, "alice")
	base := "/day-closing/" + testDay

	tests := []struct {
		name     string
		method   string
		path     string
		actor    string
		body     string
		wantCode int
		wantText string
	}{
		{"missing actor", stdhttp.MethodPost, base + "/lock", "", "", stdhttp.StatusBadRequest, "missing Ax-Actor"},
		{"invalid actor", stdhttp.MethodPost, base + "/lock", "bad actor", "", stdhttp.StatusBadRequest, "invalid Ax-Actor"},
		{"bad date", stdhttp.MethodGet, "/day-closing/15-01-2024/summary", "", "", stdhttp.StatusBadRequest, "invalid date"},
		{"bad body", stdhttp.MethodPost, base + "/openings", "manager", `{"cashier_id":`, stdhttp.StatusBadRequest, "invalid body"},
		{"missing float", stdhttp.MethodPost, base + "/openings", "manager", fmt.Sprintf(`{"cashier_id":%d}`, alice), stdhttp.StatusUnprocessableEntity, "opening_float"},
		{"three decimals", stdhttp.MethodPost, base + "/declarations", "alice", fmt.Sprintf(`{"cashier_id":%d,"declared_amount":10.005}`, alice), stdhttp.StatusUnprocessableEntity, "2 decimal places"},
		{"no close row", stdhttp.MethodPost, base + "/declarations", "alice", fmt.Sprintf(`{"cashier_id":%d,"declared_amount":10}`, alice), stdhttp.StatusNotFound, "not found"},
		{"unknown close", stdhttp.MethodPost, "/day-closing/closes/999/approval", "sup", `{"approved":true}`, stdhttp.StatusNotFound, "not found"},
		{"bad close id", stdhttp.MethodPost, "/day-closing/closes/abc/approval", "sup", `{"approved":true}`, stdhttp.StatusBadRequest, "close_id"},
		{"approval flag required", stdhttp.MethodPost, "/day-closing/closes/1/approval", "sup", `{"comment":"x"}`, stdhttp.StatusUnprocessableEntity, "approved"},
		{"reopen open day", stdhttp.MethodPost, base + "/reopen", "owner", `{"reason":"x"}`, stdhttp.StatusConflict, "NOT_LOCKED"},
		{"reopen needs reason", stdhttp.MethodPost, base + "/reopen", "owner", `{}`, stdhttp.StatusUnprocessableEntity, "reason"},
		{"report missing range", stdhttp.MethodGet, "/reports/cash-closing?start=2024-01-01", "", "", stdhttp.StatusUnprocessableEntity, "end"},
		{"report bad format", stdhttp.MethodGet, "/reports/cash-closing?start=2024-01-01&end=2024-01-31&format=pdf", "", "", stdhttp.StatusUnprocessableEntity, "format"},
		{"report inverted range", stdhttp.MethodGet, "/reports/cash-closing?start=2024-01-31&end=2024-01-01", "", "", stdhttp.StatusUnprocessableEntity, "end_date"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, tc.method, tc.path, tc.actor, tc.body)
			if rec.Code != tc.wantCode {
				t.Fatalf("want %d, got %d (%s)", tc.wantCode, rec.Code, rec.Body.String())
			}
			if !strings.Contains(rec.Body.String(), tc.wantText) {
				t.Fatalf("body %s does not mention %q", rec.Body.String(), tc.wantText)
			}
		})
	}
}

func TestCashClosingReport_Formats(t *testing.T) {
	s := newServer(t)
	alice := s.seedCashier(t, "alice")
	base := "/day-closing/" + testDay
	if rec := s.do(t, stdhttp.MethodPost, base+"/openings", "manager", fmt.Sprintf(`{"cashier_id":%d,"opening_float":500}`, alice)); rec.Code != stdhttp.StatusCreated {
		t.Fatalf("seed opening: %d %s", rec.Code, rec.Body.String())
	}

	rec := s.do(t, stdhttp.MethodGet, fmt.Sprintf("/reports/cash-closing?start=%s&end=%s&cashier_id=%d", testDay, testDay, alice), "", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("json report => %d (%s)", rec.Code, rec.Body.String())
	}
	rep := decode[dayclosing.ReportResult](t, rec)
	if rep.Report == nil || len(rep.Report.Details) != 1 || rep.Report.Summary.PendingCount != 1 {
		t.Fatalf("unexpected report: %+v", rep.Report)
	}

	rec = s.do(t, stdhttp.MethodGet, fmt.Sprintf("/reports/cash-closing?start=%s&end=%s&format=xlsx", testDay, testDay), "", "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("xlsx report => %d (%s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != mimeXLSX {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), "cash-closing_2024-01-15_2024-01-15.xlsx") {
		t.Fatalf("content disposition = %q", rec.Header().Get(echo.HeaderContentDisposition))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Fatalf("body is not a zip container")
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[dayclose.ResultCode]int{
		dayclose.CodeOK:                stdhttp.StatusCreated,
		dayclose.CodeValidation:        stdhttp.StatusUnprocessableEntity,
		dayclose.CodeNotFound:          stdhttp.StatusNotFound,
		dayclose.CodeAlreadyLocked:     stdhttp.StatusConflict,
		dayclose.CodeDayNotReady:       stdhttp.StatusConflict,
		dayclose.CodeDuplicateOpening:  stdhttp.StatusConflict,
		dayclose.CodeInvalidTransition: stdhttp.StatusConflict,
		dayclose.CodeNotLocked:         stdhttp.StatusConflict,
		dayclose.CodeBusy:              stdhttp.StatusConflict,
		dayclose.CodeInternal:          stdhttp.StatusInternalServerError,
		dayclose.ResultCode("???"):     stdhttp.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := statusFor(code, stdhttp.StatusCreated); got != want {
			t.Fatalf("statusFor(%s) = %d, want %d", code, got, want)
		}
	}
}
