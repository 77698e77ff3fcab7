package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	domainAppointment "github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/notification"
)

type DeleteAppointment struct {
	repo     domainAppointment.Repository
	notifier notification.Notifier
	audit    audit.Recorder
}

func NewDeleteAppointment(
	repo domainAppointment.Repository,
	notifier notification.Notifier,
	audit audit.Recorder,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
	}
}

// Execute hard-deletes the appointment. The cancellation email is built
// from a snapshot taken before the delete.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	actor domainAppointment.Actor,
	id string,
) (*Result, error) {

	ap, err := loadForActor(ctx, uc.repo, actor, id)
	if err != nil {
		return nil, err
	}

	msg := notification.NewMessage(notification.SubjectCancelled, recipient(ap, actor), ap, ap.Doctor)

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		// deleted concurrently between load and delete
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   audit.ActionAppointmentDeleted,
		Entity:   audit.EntityAppointment,
		EntityID: ap.ID,
		Metadata: map[string]any{"doctorId": ap.DoctorID, "date": ap.Date, "patientId": ap.PatientID},
	})

	return &Result{Warnings: notify(ctx, uc.notifier, msg)}, nil
}
