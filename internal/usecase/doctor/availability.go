package doctor

import (
	"context"
	"strings"
	"time"

	domainDoctor "github.com/BruksfildServices01/medical-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/medical-scheduler/internal/httperr"
	"github.com/BruksfildServices01/medical-scheduler/internal/timezone"
)

// BookingReader lists the start times already taken for a doctor,
// ignoring cancelled appointments.
type BookingReader interface {
	ListBookedTimes(ctx context.Context, doctorID string, start, end time.Time) ([]time.Time, error)
}

type Availability struct {
	DoctorID string                  `json:"doctorId"`
	Date     string                  `json:"date"`
	Slots    []domainDoctor.TimeSlot `json:"slots"`
}

type GetAvailability struct {
	doctors  domainDoctor.Repository
	bookings BookingReader
	slot     time.Duration
	loc      *time.Location
}

func NewGetAvailability(
	doctors domainDoctor.Repository,
	bookings BookingReader,
	slot time.Duration,
	loc *time.Location,
) *GetAvailability {
	return &GetAvailability{
		doctors:  doctors,
		bookings: bookings,
		slot:     slot,
		loc:      loc,
	}
}

func (uc *GetAvailability) Execute(ctx context.Context, doctorID, date string) (*Availability, error) {

	// --------------------------------------------------
	// 1. Date
	// --------------------------------------------------
	day, err := timezone.ParseDate(strings.TrimSpace(date), uc.loc)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD.")
	}

	// --------------------------------------------------
	// 2. Doctor
	// --------------------------------------------------
	doc, err := load(ctx, uc.doctors, doctorID)
	if err != nil {
		return nil, err
	}

	out := &Availability{
		DoctorID: doc.ID,
		Date:     day.Format("2006-01-02"),
		Slots:    []domainDoctor.TimeSlot{},
	}

	windows := domainDoctor.WindowsOn(doc.Schedule, day)
	if len(windows) == 0 {
		return out, nil
	}

	// --------------------------------------------------
	// 3. Bookings that day
	// --------------------------------------------------
	start, end := timezone.DayRange(day)
	booked, err := uc.bookings.ListBookedTimes(ctx, doc.ID, start, end)
	if err != nil {
		return nil, err
	}
	for i := range booked {
		booked[i] = booked[i].In(uc.loc)
	}

	out.Slots = domainDoctor.FreeSlots(windows, booked, uc.slot)
	return out, nil
}
