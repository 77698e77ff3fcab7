package appointment

import (
	"context"
	"time"

	domainAppointment "github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/dto"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
)

// ListAppointmentsInput is an optional calendar window [From, To).
type ListAppointmentsInput struct {
	From *time.Time
	To   *time.Time
}

type ListAppointments struct {
	repo domainAppointment.Repository
}

func NewListAppointments(repo domainAppointment.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns every appointment for admins and only the caller's own
// otherwise, ordered by date.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	actor domainAppointment.Actor,
	in ListAppointmentsInput,
) ([]dto.AppointmentDTO, error) {

	if in.From != nil && in.To != nil && !in.From.Before(*in.To) {
		return nil, httperr.ErrValidation("invalid_range", "from must be before to.")
	}

	filter := domainAppointment.ListFilter{
		From: in.From,
		To:   in.To,
	}
	if !actor.IsAdmin() {
		filter.PatientID = actor.UserID
	}

	apps, err := uc.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(apps, actor.IsAdmin()), nil
}
