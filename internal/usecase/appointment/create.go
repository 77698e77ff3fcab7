package appointment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	domainAppointment "github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/medical-scheduler/internal/dto"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
	"github.com/BruksfildServices01/medical-scheduler/internal/notification"
	"github.com/BruksfildServices01/medical-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	DoctorID string
	Date     string
	Reason   string
	Notes    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domainAppointment.Repository
	doctors  doctor.Repository
	notifier notification.Notifier
	audit    audit.Recorder
	loc      *time.Location
}

func NewCreateAppointment(
	repo domainAppointment.Repository,
	doctors doctor.Repository,
	notifier notification.Notifier,
	audit audit.Recorder,
	loc *time.Location,
) *CreateAppointment {
	return &CreateAppointment{
		repo:     repo,
		doctors:  doctors,
		notifier: notifier,
		audit:    audit,
		loc:      loc,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor domainAppointment.Actor,
	in CreateAppointmentInput,
) (*Result, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	in.DoctorID = strings.TrimSpace(in.DoctorID)
	in.Reason = strings.TrimSpace(in.Reason)
	if in.DoctorID == "" || strings.TrimSpace(in.Date) == "" || in.Reason == "" {
		return nil, httperr.ErrValidation("missing_fields", "doctorId, date and reason are required.")
	}

	date, err := timezone.ParseDateTime(strings.TrimSpace(in.Date), uc.loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date must be an ISO 8601 timestamp.")
	}

	// --------------------------------------------------
	// 2. Doctor must exist
	// --------------------------------------------------
	doc, err := uc.doctors.GetDoctor(ctx, in.DoctorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrValidation("doctor_not_found", "The selected doctor does not exist.")
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Persist; the patient is always the caller
	// --------------------------------------------------
	ap := &models.Appointment{
		PatientID: actor.UserID,
		DoctorID:  doc.ID,
		Date:      date,
		Reason:    in.Reason,
		Notes:     strings.TrimSpace(in.Notes),
		Status:    string(domainAppointment.InitialStatus()),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}
	ap.Doctor = doc

	// --------------------------------------------------
	// 4. Side effects
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   audit.EntityAppointment,
		EntityID: ap.ID,
		Metadata: map[string]any{"doctorId": doc.ID, "date": ap.Date},
	})

	warnings := notify(ctx, uc.notifier, notification.NewMessage(
		notification.SubjectCreated, actor.Email, ap, doc,
	))

	out := dto.FromAppointment(ap, false)
	return &Result{Appointment: &out, Warnings: warnings}, nil
}
