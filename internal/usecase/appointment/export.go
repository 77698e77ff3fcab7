package appointment

import (
	"context"
	"time"

	domainAppointment "github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/export"
)

type Document struct {
	Filename    string
	ContentType string
	Content     []byte
}

type ExportAppointment struct {
	repo domainAppointment.Repository
	loc  *time.Location
}

func NewExportAppointment(repo domainAppointment.Repository, loc *time.Location) *ExportAppointment {
	return &ExportAppointment{repo: repo, loc: loc}
}

func (uc *ExportAppointment) Execute(
	ctx context.Context,
	actor domainAppointment.Actor,
	id string,
) (*Document, error) {

	ap, err := loadForActor(ctx, uc.repo, actor, id)
	if err != nil {
		return nil, err
	}

	content, err := export.AppointmentPDF(ap, uc.loc)
	if err != nil {
		return nil, err
	}

	return &Document{
		Filename:    export.Filename(ap),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}
