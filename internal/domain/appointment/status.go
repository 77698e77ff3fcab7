package appointment

import "github.com/BruksfildServices01/medical-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Statuses lists every known status in display order.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

func InitialStatus() Status {
	return StatusPending
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", httperr.ErrValidation(
			"invalid_status",
			"status must be one of pending, confirmed, cancelled, completed",
		)
	}
	return s, nil
}

// ===============================
// Transitions
// ===============================

// TransitionPolicy decides which status changes an update may apply.
// A nil table allows any known status to move to any known status.
type TransitionPolicy struct {
	allowed map[Status][]Status
}

func PermissivePolicy() TransitionPolicy {
	return TransitionPolicy{}
}

// LifecyclePolicy only lets appointments move forward:
// pending -> confirmed|cancelled, confirmed -> completed|cancelled.
func LifecyclePolicy() TransitionPolicy {
	return TransitionPolicy{
		allowed: map[Status][]Status{
			StatusPending:   {StatusConfirmed, StatusCancelled},
			StatusConfirmed: {StatusCompleted, StatusCancelled},
			StatusCancelled: {},
			StatusCompleted: {},
		},
	}
}

func PolicyFor(strict bool) TransitionPolicy {
	if strict {
		return LifecyclePolicy()
	}
	return PermissivePolicy()
}

// Check returns nil when from -> to is allowed. Re-applying the current
// status is always allowed.
func (p TransitionPolicy) Check(from, to Status) error {
	if !to.Valid() {
		return httperr.ErrValidation("invalid_status", "unknown status "+string(to))
	}
	if from == to || p.allowed == nil {
		return nil
	}
	for _, next := range p.allowed[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrValidation(
		"invalid_status_transition",
		"cannot move appointment from "+string(from)+" to "+string(to),
	)
}
