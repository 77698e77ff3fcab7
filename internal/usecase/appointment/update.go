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
	"github.com/BruksfildServices01/medical-scheduler/internal/notification"
	"github.com/BruksfildServices01/medical-scheduler/internal/timezone"
)

// UpdateAppointmentInput is a partial update; nil fields are left alone.
// The patient can never be changed.
type UpdateAppointmentInput struct {
	Status   *string
	Date     *string
	Reason   *string
	Notes    *string
	DoctorID *string
}

type UpdateAppointment struct {
	repo     domainAppointment.Repository
	doctors  doctor.Repository
	notifier notification.Notifier
	audit    audit.Recorder
	policy   domainAppointment.TransitionPolicy
	loc      *time.Location
}

func NewUpdateAppointment(
	repo domainAppointment.Repository,
	doctors doctor.Repository,
	notifier notification.Notifier,
	audit audit.Recorder,
	policy domainAppointment.TransitionPolicy,
	loc *time.Location,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:     repo,
		doctors:  doctors,
		notifier: notifier,
		audit:    audit,
		policy:   policy,
		loc:      loc,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor domainAppointment.Actor,
	id string,
	in UpdateAppointmentInput,
) (*Result, error) {

	ap, err := loadForActor(ctx, uc.repo, actor, id)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Validate the whole patch before touching the record
	// --------------------------------------------------
	var changed []string

	var next domainAppointment.Status
	if in.Status != nil {
		s, err := domainAppointment.ParseStatus(strings.TrimSpace(*in.Status))
		if err != nil {
			return nil, err
		}
		if err := uc.policy.Check(domainAppointment.Status(ap.Status), s); err != nil {
			return nil, err
		}
		next = s
	}

	var newDate *time.Time
	if in.Date != nil {
		d, err := timezone.ParseDateTime(strings.TrimSpace(*in.Date), uc.loc)
		if err != nil {
			return nil, httperr.ErrValidation("invalid_date", "date must be an ISO 8601 timestamp.")
		}
		newDate = &d
	}

	if in.Reason != nil && strings.TrimSpace(*in.Reason) == "" {
		return nil, httperr.ErrValidation("missing_fields", "reason cannot be empty.")
	}

	if in.DoctorID != nil && strings.TrimSpace(*in.DoctorID) != ap.DoctorID {
		doc, err := uc.doctors.GetDoctor(ctx, strings.TrimSpace(*in.DoctorID))
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrValidation("doctor_not_found", "The selected doctor does not exist.")
		}
		if err != nil {
			return nil, err
		}
		ap.DoctorID = doc.ID
		ap.Doctor = doc
		changed = append(changed, "doctorId")
	}

	// --------------------------------------------------
	// Apply
	// --------------------------------------------------
	if next != "" {
		if err := domainAppointment.ChangeStatus(ap, next, uc.policy); err != nil {
			return nil, err
		}
		changed = append(changed, "status")
	}
	if newDate != nil {
		ap.Date = *newDate
		changed = append(changed, "date")
	}
	if in.Reason != nil {
		ap.Reason = strings.TrimSpace(*in.Reason)
		changed = append(changed, "reason")
	}
	if in.Notes != nil {
		ap.Notes = strings.TrimSpace(*in.Notes)
		changed = append(changed, "notes")
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.UserID,
		Action:   audit.ActionAppointmentUpdated,
		Entity:   audit.EntityAppointment,
		EntityID: ap.ID,
		Metadata: map[string]any{"fields": changed, "status": ap.Status},
	})

	msg := notification.NewMessage(notification.SubjectUpdated, recipient(ap, actor), ap, ap.Doctor)
	msg.Status = ap.Status
	warnings := notify(ctx, uc.notifier, msg)

	out := dto.FromAppointment(ap, actor.IsAdmin())
	return &Result{Appointment: &out, Warnings: warnings}, nil
}
