package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	domainAppointment "github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/dto"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
	"github.com/BruksfildServices01/medical-scheduler/internal/notification"
)

const WarningNotificationFailed = "notification_failed"

// Result is returned by every mutating use case. Warnings report side
// effects that failed after the change was committed.
type Result struct {
	Appointment *dto.AppointmentDTO
	Warnings    []string
}

// loadForActor enforces existence first, then ownership.
func loadForActor(
	ctx context.Context,
	repo domainAppointment.Repository,
	actor domainAppointment.Actor,
	id string,
) (*models.Appointment, error) {

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, httperr.ErrValidation("missing_id", "Appointment id is required.")
	}

	ap, err := repo.GetAppointment(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrNotFound("appointment_not_found", "Appointment not found.")
	}
	if err != nil {
		return nil, err
	}

	if !domainAppointment.CanAccess(actor, ap) {
		return nil, httperr.ErrForbidden("forbidden", "You are not allowed to access this appointment.")
	}
	return ap, nil
}

// notify hands msg to the notifier and turns a refusal into a warning.
func notify(ctx context.Context, n notification.Notifier, msg notification.Message) []string {
	if err := n.Notify(ctx, msg); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("appointment_id", msg.AppointmentID).
			Str("subject", msg.Subject).
			Msg("appointment notification not queued")
		return []string{WarningNotificationFailed}
	}
	return nil
}

// recipient is the patient's address, falling back to the actor's.
func recipient(ap *models.Appointment, actor domainAppointment.Actor) string {
	if ap.Patient != nil && ap.Patient.Email != "" {
		return ap.Patient.Email
	}
	return actor.Email
}
