package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment (CRUD)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ap.Date = ap.Date.UTC()
	return translate(r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error)
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Where("id = ?", id).
		First(&ap).Error; err != nil {
		return nil, translate(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f appointment.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor")

	if f.PatientID != "" {
		q = q.Where("patient_id = ?", f.PatientID)
	}
	if f.DoctorID != "" {
		q = q.Where("doctor_id = ?", f.DoctorID)
	}
	if f.From != nil {
		q = q.Where("date >= ?", f.From.UTC())
	}
	if f.To != nil {
		q = q.Where("date < ?", f.To.UTC())
	}

	var apps []models.Appointment
	if err := q.Order("date ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	ap.Date = ap.Date.UTC()
	return translate(r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error)
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id string,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Doctor references
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedTimes(
	ctx context.Context,
	doctorID string,
	start time.Time,
	end time.Time,
) ([]time.Time, error) {

	var dates []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND status <> ? AND date >= ? AND date < ?",
			doctorID, string(appointment.StatusCancelled), start.UTC(), end.UTC(),
		).
		Order("date ASC").
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *AppointmentGormRepository) CountAppointmentsForDoctor(
	ctx context.Context,
	doctorID string,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Count(&n).Error
	return n, err
}

// --------------------------------------------------
// Reporting
// --------------------------------------------------

func (r *AppointmentGormRepository) CountAppointments(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Appointment{}).Count(&n).Error
	return n, err
}

func (r *AppointmentGormRepository) CountAppointmentsBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("date >= ? AND date < ?", start.UTC(), end.UTC()).
		Count(&n).Error
	return n, err
}

func (r *AppointmentGormRepository) CountAppointmentsByStatus(
	ctx context.Context,
) (map[string]int64, error) {

	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

func (r *AppointmentGormRepository) ListAppointmentDatesBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]time.Time, error) {

	var dates []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("date >= ? AND date < ?", start.UTC(), end.UTC()).
		Pluck("date", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

// Compile-time check
var _ appointment.Store = (*AppointmentGormRepository)(nil)
