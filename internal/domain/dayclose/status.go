package dayclose

// Status is the reconciliation state of a single DayClose row.
type Status string

const (
	StatusPending Status = "PENDING" // opened, nothing declared yet
	StatusOK      Status = "OK"      // variance within tolerance, or approved
	StatusCheck   Status = "CHECK"   // variance outside tolerance, waiting for a supervisor
	StatusLocked  Status = "LOCKED"  // frozen by a day lock
)

// AllStatuses lists every status in display order.
var AllStatuses = []Status{StatusPending, StatusOK, StatusCheck, StatusLocked}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusOK, StatusCheck, StatusLocked:
		return true
	}
	return false
}

// Blocking reports whether a row in this status prevents the day from being locked.
func (s Status) Blocking() bool {
	switch s {
	case StatusPending, StatusCheck:
		return true
	case StatusOK, StatusLocked:
		return false
	}
	// unknown statuses never let a day lock
	return true
}

// BadgeClass is the CSS badge used by the closing screen.
func (s Status) BadgeClass() string {
	switch s {
	case StatusPending:
		return "bg-secondary"
	case StatusOK:
		return "bg-success"
	case StatusCheck:
		return "bg-warning"
	case StatusLocked:
		return "bg-dark"
	}
	return "bg-light"
}

// AuditStatus is the action recorded by a DayLockAudit row.
type AuditStatus string

const (
	AuditLocked   AuditStatus = "LOCKED"
	AuditReopened AuditStatus = "REOPENED"
)

func (s AuditStatus) Valid() bool {
	return s == AuditLocked || s == AuditReopened
}
