package dayclose

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRecordNotFound         = errors.New("day close record not found")
	ErrOpeningNotFound        = errors.New("day opening not found")
	ErrCashierNotFound        = errors.New("cashier not found")
	ErrAlreadyLocked          = errors.New("already locked")
	ErrDayNotReady            = errors.New("day is not ready to lock")
	ErrDuplicateOpening       = errors.New("day opening already exists")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrDayNotLocked           = errors.New("day is not locked")
	ErrValidation             = errors.New("validation failed")
	ErrDateBusy               = errors.New("another closing operation is running for this date")
	ErrConcurrentModification = errors.New("concurrent modification detected")
)

// DayNotReadyError carries the number of rows still blocking a day lock.
type DayNotReadyError struct {
	BusinessDate time.Time
	IssueCount   int
}

func (e *DayNotReadyError) Error() string {
	return fmt.Sprintf("%d cashier(s) still pending or awaiting approval for %s, cannot lock day",
		e.IssueCount, e.BusinessDate.Format(DateLayout))
}

func (e *DayNotReadyError) Unwrap() error { return ErrDayNotReady }

// ValidationError is a field-level input problem, raised before anything is persisted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Field + " " + e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// ResultCode classifies the outcome of an engine operation.
type ResultCode string

const (
	CodeOK                ResultCode = "OK"
	CodeValidation        ResultCode = "VALIDATION"
	CodeNotFound          ResultCode = "NOT_FOUND"
	CodeAlreadyLocked     ResultCode = "ALREADY_LOCKED"
	CodeDayNotReady       ResultCode = "DAY_NOT_READY"
	CodeDuplicateOpening  ResultCode = "DUPLICATE_OPENING"
	CodeInvalidTransition ResultCode = "INVALID_TRANSITION"
	CodeNotLocked         ResultCode = "NOT_LOCKED"
	CodeBusy              ResultCode = "BUSY"
	CodeInternal          ResultCode = "INTERNAL"
)

// CodeOf maps an error onto its result code. Anything unrecognised is INTERNAL.
func CodeOf(err error) ResultCode {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrRecordNotFound),
		errors.Is(err, ErrOpeningNotFound),
		errors.Is(err, ErrCashierNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAlreadyLocked):
		return CodeAlreadyLocked
	case errors.Is(err, ErrDayNotReady):
		return CodeDayNotReady
	case errors.Is(err, ErrDuplicateOpening):
		return CodeDuplicateOpening
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrDayNotLocked):
		return CodeNotLocked
	case errors.Is(err, ErrDateBusy), errors.Is(err, ErrConcurrentModification):
		return CodeBusy
	default:
		return CodeInternal
	}
}

// IsBusinessError reports whether err is an expected business condition rather than an
// infrastructure failure.
func IsBusinessError(err error) bool {
	c := CodeOf(err)
	return c != CodeOK && c != CodeInternal
}
