package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"resto-pos-backend/internal/adapter/middleware"
	"resto-pos-backend/internal/domain/dayclose"

	"github.com/labstack/echo/v4"
)

// statusFor maps an engine result code onto an HTTP status. okStatus is used on success.
func statusFor(code dayclose.ResultCode, okStatus int) int {
	switch code {
	case dayclose.CodeOK:
		return okStatus
	case dayclose.CodeValidation:
		return http.StatusUnprocessableEntity
	case dayclose.CodeNotFound:
		return http.StatusNotFound
	case dayclose.CodeAlreadyLocked,
		dayclose.CodeDayNotReady,
		dayclose.CodeDuplicateOpening,
		dayclose.CodeInvalidTransition,
		dayclose.CodeNotLocked,
		dayclose.CodeBusy:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c echo.Context, msg string, details ...FieldError) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Details: details})
}

// bindAndValidate returns a non-nil done error when the response has already been written.
func bindAndValidate(c echo.Context, req any) (ok bool, done error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func actorOf(c echo.Context) (string, error) {
	return middleware.ActorFrom(c.Request())
}

func dateParam(c echo.Context) (time.Time, error) {
	return dayclose.ParseDate(c.Param("date"))
}

func uintParam(raw string) (uint64, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	return n, err == nil && n > 0
}
