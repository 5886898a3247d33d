package http

import (
	"context"
	"net/http"
	"time"

	"resto-pos-backend/internal/usecase/dayclosing"
	"resto-pos-backend/internal/usecase/report"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Engine is the day closing surface the handlers drive.
type Engine interface {
	GetAvailableCashiers(ctx context.Context, businessDate time.Time) dayclosing.CashiersResult
	InitializeDayOpening(ctx context.Context, in dayclosing.OpeningInput) dayclosing.OpeningResult
	UpdateOpeningFloat(ctx context.Context, in dayclosing.OpeningInput) dayclosing.OpeningResult
	RefreshSystemAmounts(ctx context.Context, businessDate time.Time) dayclosing.RefreshResult
	GetDayClosingSummary(ctx context.Context, businessDate time.Time) dayclosing.SummaryResult
	GetDayLockStatus(ctx context.Context, businessDate time.Time) dayclosing.LockStatusResult
	DeclareCash(ctx context.Context, in dayclosing.DeclareInput) dayclosing.DeclareResult
	ApproveVariance(ctx context.Context, in dayclosing.ApproveInput) dayclosing.ApproveResult
	LockDay(ctx context.Context, in dayclosing.LockInput) dayclosing.LockResult
	ReopenDay(ctx context.Context, in dayclosing.ReopenInput) dayclosing.ReopenResult
	GenerateEODReport(ctx context.Context, businessDate time.Time, generatedBy string) dayclosing.EODResult
	GenerateCashClosingReport(ctx context.Context, in report.Input) dayclosing.ReportResult
}

var _ Engine = (*dayclosing.Usecase)(nil)

type DayClosingHandler struct {
	uc  Engine
	log *logrus.Logger
}

func NewDayClosingHandler(uc Engine, logger *logrus.Logger) *DayClosingHandler {
	return &DayClosingHandler{uc: uc, log: logger}
}

type openingReq struct {
	CashierID    uint64           `json:"cashier_id"    validate:"required,gt=0"`
	OpeningFloat *decimal.Decimal `json:"opening_float" validate:"required,gte=0,lte=99999999.99,dec2"`
}

type updateOpeningReq struct {
	OpeningFloat *decimal.Decimal `json:"opening_float" validate:"required,gte=0,lte=99999999.99,dec2"`
}

type declareReq struct {
	CashierID      uint64           `json:"cashier_id"      validate:"required,gt=0"`
	DeclaredAmount *decimal.Decimal `json:"declared_amount" validate:"required,gte=0,lte=99999999.99,dec2"`
}

type approvalReq struct {
	Approved *bool  `json:"approved" validate:"required"`
	Comment  string `json:"comment"  validate:"max=500"`
}

type lockReq struct {
	Remarks *string `json:"remarks" validate:"omitempty,max=500"`
}

type reopenReq struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// dateAndActor reads the :date path param and the actor header, writing a 400 when either is bad.
func dateAndActor(c echo.Context) (time.Time, string, bool, error) {
	date, err := dateParam(c)
	if err != nil {
		return time.Time{}, "", false, badRequest(c, "invalid date path param", FieldError{Field: "date", Message: "must be a YYYY-MM-DD date"})
	}
	actor, err := actorOf(c)
	if err != nil {
		return time.Time{}, "", false, badRequest(c, err.Error())
	}
	return date, actor, true, nil
}

func (h *DayClosingHandler) ListCashiers(c echo.Context) error {
	date, err := dateParam(c)
	if err != nil {
		return badRequest(c, "invalid date path param", FieldError{Field: "date", Message: "must be a YYYY-MM-DD date"})
	}
	res := h.uc.GetAvailableCashiers(c.Request().Context(), date)
	return c.JSON(statusFor(res.Code, http.StatusOK), res)
}

func (h *DayClosingHandler) InitializeOpening(c echo.Context) error {
	date, actor, ok, done := dateAndActor(c)
	if !ok {
		return done
	}
	var req openingReq
	if ok, done := bindAndValidate(c, &req); !ok {
		return done
	}
	res := h.uc.InitializeDayOpening(c.Request().Context(), dayclosing.OpeningInput{
		BusinessDate: date,
		CashierID:    req.CashierID,
		OpeningFloat: *req.OpeningFloat,
		Actor:        actor,
	})
	okStatus := http.StatusCreated
	if res.Overwritten {
		okStatus = http.StatusOK
	}
	return c.JSON(statusFor(res.Code, okStatus), res)
}

func (h *DayClosingHandler) UpdateOpening(c echo.Context) error {
	date, actor, ok, done := dateAndActor(c)
	if !ok {
		return done
	}
	cashierID, valid := uintParam(c.Param("cashier_id"))
	if !valid {
		return badRequest(c, "invalid cashier_id path param")
	}
	var req updateOpeningReq
	if ok, done := bindAndValidate(c, &req); !ok {
		return done
	}
	res := h.uc.UpdateOpeningFloat(c.Request().Context(), dayclosing.OpeningInput{
		BusinessDate: date,
		CashierID:    cashierID,
		OpeningFloat: *req.OpeningFloat,
		Actor:        actor,
	})
	return c.JSON(statusFor(res.Code, http.StatusOK), res)
}

func (h *DayClosingHandler) Refresh(c echo.Context) error {
	date, _, ok, done := dateAndActor(c)
	if !ok {
		return done
	}
	res := h.uc.RefreshSystemAmounts(c.Request().Context(), date)
	return c.JSON(statusFor(res.Code, http.StatusOK), res)
}

func (h *DayClosingHandler) Summary(c echo.Context) error {
	date, err := dateParam(c)
	if err != nil {
		return badRequest(c, "invalid date path param", FieldError{Field: "date", Message: "must be a YYYY-MM-DD date"})
	}
	res := h.uc.GetDayClosingSummary(c.Request().Context(), date)
	return c.JSON(statusFor(res.Code, http.StatusOK), res)
}

func (h *DayClosingHandler) LockStatus(c echo.Context) error {
	date, err := dateParam(c)
	if err != nil {
		return badRequest(c, "invalid date path param", FieldError{Field: "date", Message: "must be a YYYY-MM-DD date"})
	}
	res := h.uc.GetDayLockStatus(c.Request().Context(), date)
	return c.JSON(statusFor(res.Code, http.StatusOK), res)
}

func (h *DayClosingHandler) Declare(c echo.Context) error {
	date, actor, ok, done := dateAndActor(c)
	if !ok {
		return done
	}
	var req declareReq
	if ok, done := bindAndValidate(c, &req); !ok {
		return done
	}
	res := h.uc.DeclareCash(c.Request().Context(), dayclosing.DeclareInput{
		BusinessDate:   date,
		CashierID:      req.CashierID,
		DeclaredAmount: *req.DeclaredAmount,
		Actor:          actor,
	})
	return c.JSON(statusFor(res.Code, http.StatusOK), res)
}

func (h *DayClosingHandler) Approve(c echo.Context) error {
	closeID, valid := uintParam(c.Param("close_id"))
	if !valid {
		return badRequest(c, "invalid close_id path param")
	}
	actor, err := actorOf(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var req approvalReq
	if ok, done := bindAndValidate(c, &req); !ok {
		return done
	}
	res := h.uc.ApproveVariance(c.Request().Context(), dayclosing.ApproveInput{
		CloseID:  closeID,
		Approved: *req.Approved,
		Comment:  req.Comment,
		Actor:    actor,
	})
	return c.JSON(statusFor(res.Code, http.StatusOK), res)
}

func (h *DayClosingHandler) Lock(c echo.Context) error {
	date, actor, ok, done := dateAndActor(c)
	if !ok {
		return done
	}
	var req lockReq
	if ok, done := bindAndValidate(c, &req); !ok {
		return done
	}
	res := h.uc.LockDay(c.Request().Context(), dayclosing.LockInput{
		BusinessDate: date,
		Actor:        actor,
		Remarks:      req.Remarks,
	})
	return c.JSON(statusFor(res.Code, http.StatusOK), res)
}

func (h *DayClosingHandler) Reopen(c echo.Context) error {
	date, actor, ok, done := dateAndActor(c)
	if !ok {
		return done
	}
	var req reopenReq
	if ok, done := bindAndValidate(c, &req); !ok {
		return done
	}
	res := h.uc.ReopenDay(c.Request().Context(), dayclosing.ReopenInput{
		BusinessDate: date,
		Actor:        actor,
		Reason:       req.Reason,
	})
	return c.JSON(statusFor(res.Code, http.StatusOK), res)
}

func (h *DayClosingHandler) EODReport(c echo.Context) error {
	date, actor, ok, done := dateAndActor(c)
	if !ok {
		return done
	}
	res := h.uc.GenerateEODReport(c.Request().Context(), date, actor)
	return c.JSON(statusFor(res.Code, http.StatusOK), res)
}
