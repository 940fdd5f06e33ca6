package booking

import "errors"

// Kind classifies a business rejection. Callers branch on the kind, never
// on the message text.
type Kind string

const (
	KindInvalidInput      Kind = "invalid_input"
	KindNotFound          Kind = "not_found"
	KindForbidden         Kind = "forbidden"
	KindDeviceRetired     Kind = "device_retired"
	KindDeviceUnavailable Kind = "device_unavailable"
	KindUserSanctioned    Kind = "user_sanctioned"
	KindOverdueLoans      Kind = "overdue_loans"
	KindScheduleConflict  Kind = "schedule_conflict"
)

// Error is a recoverable business rejection. Storage failures are not
// wrapped in it; they propagate unchanged.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func reject(kind Kind, message string) error {
	return &Error{Kind: kind, Message: message}
}

// KindOf extracts the rejection kind from err. ok is false for nil errors
// and for storage failures.
func KindOf(err error) (Kind, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return "", false
}
