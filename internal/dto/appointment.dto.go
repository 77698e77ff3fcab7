package dto

import (
	"time"

	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

type DoctorSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

type PatientSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AppointmentDTO struct {
	ID        string          `json:"id"`
	PatientID string          `json:"patientId"`
	Patient   *PatientSummary `json:"patient,omitempty"`
	DoctorID  string          `json:"doctorId"`
	Doctor    *DoctorSummary  `json:"doctor,omitempty"`
	Date      time.Time       `json:"date"`
	Reason    string          `json:"reason"`
	Notes     string          `json:"notes,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// FromAppointment maps ap for output. The patient summary is only
// included when withPatient is set (admin views and single reads).
func FromAppointment(ap *models.Appointment, withPatient bool) AppointmentDTO {
	out := AppointmentDTO{
		ID:        ap.ID,
		PatientID: ap.PatientID,
		DoctorID:  ap.DoctorID,
		Date:      ap.Date,
		Reason:    ap.Reason,
		Notes:     ap.Notes,
		Status:    ap.Status,
		CreatedAt: ap.CreatedAt,
		UpdatedAt: ap.UpdatedAt,
	}

	if ap.Doctor != nil {
		out.Doctor = &DoctorSummary{
			ID:        ap.Doctor.ID,
			Name:      ap.Doctor.Name,
			Specialty: ap.Doctor.Specialty,
		}
	}
	if withPatient && ap.Patient != nil {
		out.Patient = &PatientSummary{
			ID:    ap.Patient.ID,
			Name:  ap.Patient.Name,
			Email: ap.Patient.Email,
		}
	}
	return out
}

func FromAppointments(apps []models.Appointment, withPatient bool) []AppointmentDTO {
	out := make([]AppointmentDTO, 0, len(apps))
	for i := range apps {
		out = append(out, FromAppointment(&apps[i], withPatient))
	}
	return out
}
