package appointment

import "github.com/BruksfildServices01/medical-scheduler/internal/models"

// Actor is the authenticated caller a use case acts on behalf of.
type Actor struct {
	UserID string
	Name   string
	Email  string
	Role   models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// ===============================
// Domain Rules
// ===============================

// CanAccess reports whether actor may read or mutate ap: admins always,
// patients only their own appointments.
func CanAccess(actor Actor, ap *models.Appointment) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.UserID != "" && actor.UserID == ap.PatientID
}

// ChangeStatus applies next to ap when the policy allows it.
func ChangeStatus(ap *models.Appointment, next Status, policy TransitionPolicy) error {
	if err := policy.Check(Status(ap.Status), next); err != nil {
		return err
	}
	ap.Status = string(next)
	return nil
}
