package notification

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSender writes notifications to the log instead of sending them.
// Used when SMTP is not configured.
type LogSender struct {
	logger zerolog.Logger
}

func NewLogSender(logger zerolog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	evt := s.logger.Info().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("appointment_id", msg.AppointmentID).
		Time("date", msg.Date).
		Str("doctor", msg.DoctorName)
	if msg.Status != "" {
		evt = evt.Str("status", msg.Status)
	}
	evt.Msg("notification (smtp disabled)")
	return nil
}
