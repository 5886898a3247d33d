package http

import (
	"fmt"
	"net/http"
	"strings"

	"resto-pos-backend/internal/domain/dayclose"
	"resto-pos-backend/internal/infrastructure/logging"
	"resto-pos-backend/internal/usecase/report"

	"github.com/labstack/echo/v4"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type cashClosingQuery struct {
	Start     string `query:"start"      json:"start"      validate:"required,bizdate"`
	End       string `query:"end"        json:"end"        validate:"required,bizdate"`
	CashierID string `query:"cashier_id" json:"cashier_id" validate:"omitempty,numeric"`
	Format    string `query:"format"     json:"format"     validate:"omitempty,oneof=json xlsx"`
}

// CashClosingReport serves the range report as JSON, or as a workbook with format=xlsx.
func (h *DayClosingHandler) CashClosingReport(c echo.Context) error {
	var q cashClosingQuery
	if ok, done := bindAndValidate(c, &q); !ok {
		return done
	}
	from, _ := dayclose.ParseDate(q.Start)
	to, _ := dayclose.ParseDate(q.End)
	in := report.Input{From: from, To: to}
	if q.CashierID != "" {
		id, valid := uintParam(q.CashierID)
		if !valid {
			return badRequest(c, "invalid cashier_id", FieldError{Field: "cashier_id", Message: "must be a positive integer"})
		}
		in.CashierID = &id
	}

	res := h.uc.GenerateCashClosingReport(c.Request().Context(), in)
	if !res.Success || !strings.EqualFold(q.Format, "xlsx") {
		return c.JSON(statusFor(res.Code, http.StatusOK), res)
	}

	book, err := report.ExportXLSX(res.Report)
	if err != nil {
		logging.LogError(h.log, "http", "CashClosingReport", "export xlsx", q, err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not build workbook"})
	}
	name := fmt.Sprintf("cash-closing_%s_%s.xlsx", from.Format(dayclose.DateLayout), to.Format(dayclose.DateLayout))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, mimeXLSX, book)
}
