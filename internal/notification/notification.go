// Package notification delivers appointment emails without holding up the
// request that triggered them.
package notification

import (
	"context"
	"time"

	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

const (
	SubjectCreated   = "Appointment Created"
	SubjectUpdated   = "Appointment Updated"
	SubjectCancelled = "Appointment Cancelled"
)

// Message is the payload of an appointment email. Status is only set for
// updates.
type Message struct {
	To              string
	Subject         string
	AppointmentID   string
	Date            time.Time
	DoctorName      string
	DoctorSpecialty string
	Reason          string
	Status          string
}

// Notifier accepts a message for delivery. A nil error means the message
// was accepted, not that it was delivered.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Sender performs the actual delivery.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// NewMessage builds the email for ap, addressed to the appointment's patient.
func NewMessage(subject, to string, ap *models.Appointment, doc *models.Doctor) Message {
	msg := Message{
		To:            to,
		Subject:       subject,
		AppointmentID: ap.ID,
		Date:          ap.Date,
		Reason:        ap.Reason,
	}
	if doc != nil {
		msg.DoctorName = doc.Name
		msg.DoctorSpecialty = doc.Specialty
	}
	return msg
}
