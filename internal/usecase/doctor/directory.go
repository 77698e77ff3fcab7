package doctor

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	domainDoctor "github.com/BruksfildServices01/medical-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

// DoctorInput is the full editable state of a doctor. Updates replace
// the schedule wholesale.
type DoctorInput struct {
	Name      string
	Specialty string
	Schedule  []models.Availability
	Phone     string
	Email     string
}

// AppointmentCounter guards deletes against dangling references.
type AppointmentCounter interface {
	CountAppointmentsForDoctor(ctx context.Context, doctorID string) (int64, error)
}

func errDoctorNotFound() error {
	return httperr.ErrNotFound("doctor_not_found", "Doctor not found.")
}

func (in DoctorInput) normalize() (DoctorInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Specialty = strings.TrimSpace(in.Specialty)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Name == "" || in.Specialty == "" || in.Phone == "" || in.Email == "" {
		return in, httperr.ErrValidation(
			"missing_fields",
			"name, specialty, contactInfo.phone and contactInfo.email are required.",
		)
	}

	if in.Schedule == nil {
		in.Schedule = []models.Availability{}
	}
	for i := range in.Schedule {
		in.Schedule[i].ID = 0
		in.Schedule[i].Day = strings.TrimSpace(in.Schedule[i].Day)
	}
	if err := domainDoctor.ValidateSchedule(in.Schedule); err != nil {
		return in, err
	}
	return in, nil
}

func (in DoctorInput) apply(d *models.Doctor) {
	d.Name = in.Name
	d.Specialty = in.Specialty
	d.Schedule = in.Schedule
	d.ContactInfo = models.ContactInfo{Phone: in.Phone, Email: in.Email}
}

// ======================================================
// READ
// ======================================================

type ListDoctors struct {
	repo domainDoctor.Repository
}

func NewListDoctors(repo domainDoctor.Repository) *ListDoctors {
	return &ListDoctors{repo: repo}
}

func (uc *ListDoctors) Execute(ctx context.Context) ([]models.Doctor, error) {
	docs, err := uc.repo.ListDoctors(ctx)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Doctor{}
	}
	return docs, nil
}

type GetDoctor struct {
	repo domainDoctor.Repository
}

func NewGetDoctor(repo domainDoctor.Repository) *GetDoctor {
	return &GetDoctor{repo: repo}
}

func (uc *GetDoctor) Execute(ctx context.Context, id string) (*models.Doctor, error) {
	return load(ctx, uc.repo, id)
}

func load(ctx context.Context, repo domainDoctor.Repository, id string) (*models.Doctor, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, httperr.ErrValidation("missing_id", "Doctor id is required.")
	}

	d, err := repo.GetDoctor(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errDoctorNotFound()
	}
	return d, err
}

// ======================================================
// WRITE
// ======================================================

type CreateDoctor struct {
	repo  domainDoctor.Repository
	audit audit.Recorder
}

func NewCreateDoctor(repo domainDoctor.Repository, audit audit.Recorder) *CreateDoctor {
	return &CreateDoctor{repo: repo, audit: audit}
}

func (uc *CreateDoctor) Execute(ctx context.Context, actorID string, in DoctorInput) (*models.Doctor, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	d := &models.Doctor{}
	in.apply(d)

	if err := uc.repo.CreateDoctor(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   audit.ActionDoctorCreated,
		Entity:   audit.EntityDoctor,
		EntityID: d.ID,
		Metadata: map[string]any{"name": d.Name, "specialty": d.Specialty},
	})
	return d, nil
}

type UpdateDoctor struct {
	repo  domainDoctor.Repository
	audit audit.Recorder
}

func NewUpdateDoctor(repo domainDoctor.Repository, audit audit.Recorder) *UpdateDoctor {
	return &UpdateDoctor{repo: repo, audit: audit}
}

func (uc *UpdateDoctor) Execute(ctx context.Context, actorID, id string, in DoctorInput) (*models.Doctor, error) {
	d, err := load(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}

	in, err = in.normalize()
	if err != nil {
		return nil, err
	}
	in.apply(d)

	if err := uc.repo.UpdateDoctor(ctx, d); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errDoctorNotFound()
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   audit.ActionDoctorUpdated,
		Entity:   audit.EntityDoctor,
		EntityID: d.ID,
		Metadata: map[string]any{"name": d.Name, "slots": len(d.Schedule)},
	})
	return d, nil
}

type DeleteDoctor struct {
	repo         domainDoctor.Repository
	appointments AppointmentCounter
	audit        audit.Recorder
}

func NewDeleteDoctor(repo domainDoctor.Repository, appointments AppointmentCounter, audit audit.Recorder) *DeleteDoctor {
	return &DeleteDoctor{repo: repo, appointments: appointments, audit: audit}
}

func (uc *DeleteDoctor) Execute(ctx context.Context, actorID, id string) error {
	d, err := load(ctx, uc.repo, id)
	if err != nil {
		return err
	}

	n, err := uc.appointments.CountAppointmentsForDoctor(ctx, d.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return httperr.ErrConflict(
			"doctor_has_appointments",
			"Doctor still has appointments and cannot be removed.",
		)
	}

	if err := uc.repo.DeleteDoctor(ctx, d.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errDoctorNotFound()
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   audit.ActionDoctorDeleted,
		Entity:   audit.EntityDoctor,
		EntityID: d.ID,
		Metadata: map[string]any{"name": d.Name},
	})
	return nil
}
