package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

// ListFilter narrows ListAppointments. Zero values mean no restriction;
// the window is [From, To).
type ListFilter struct {
	PatientID string
	DoctorID  string
	From      *time.Time
	To        *time.Time
}

type Repository interface {
	// -------- Appointment (CRUD) --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	// GetAppointment loads the appointment with its patient and doctor.
	// Returns domain.ErrNotFound when missing.
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)

	// ListAppointments returns matches ordered by date ascending, with
	// patient and doctor loaded.
	ListAppointments(ctx context.Context, f ListFilter) ([]models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error

	// -------- Doctor references --------
	ListBookedTimes(ctx context.Context, doctorID string, start, end time.Time) ([]time.Time, error)
	CountAppointmentsForDoctor(ctx context.Context, doctorID string) (int64, error)
}

// StatsReader is the read-only view the reporting aggregator needs.
type StatsReader interface {
	CountAppointments(ctx context.Context) (int64, error)
	// CountAppointmentsBetween counts appointments dated in [start, end).
	CountAppointmentsBetween(ctx context.Context, start, end time.Time) (int64, error)
	CountAppointmentsByStatus(ctx context.Context) (map[string]int64, error)
	ListAppointmentDatesBetween(ctx context.Context, start, end time.Time) ([]time.Time, error)
}

// Store is what every backend implements.
type Store interface {
	Repository
	StatsReader
}
