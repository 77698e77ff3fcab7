package appointment

import (
	"context"

	domainAppointment "github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/dto"
)

type GetAppointment struct {
	repo domainAppointment.Repository
}

func NewGetAppointment(repo domainAppointment.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor domainAppointment.Actor,
	id string,
) (*dto.AppointmentDTO, error) {

	ap, err := loadForActor(ctx, uc.repo, actor, id)
	if err != nil {
		return nil, err
	}

	out := dto.FromAppointment(ap, true)
	return &out, nil
}
