package doctor

import (
	"context"
	"time"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

type fakeDoctors struct {
	items   map[string]models.Doctor
	updates int
}

func newFakeDoctors(docs ...models.Doctor) *fakeDoctors {
	f := &fakeDoctors{items: map[string]models.Doctor{}}
	for _, d := range docs {
		f.items[d.ID] = d
	}
	return f
}

func (f *fakeDoctors) CreateDoctor(_ context.Context, d *models.Doctor) error {
	if d.ID == "" {
		d.ID = models.NewID()
	}
	f.items[d.ID] = *d
	return nil
}

func (f *fakeDoctors) GetDoctor(_ context.Context, id string) (*models.Doctor, error) {
	d, ok := f.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDoctors) ListDoctors(context.Context) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range f.items {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDoctors) UpdateDoctor(_ context.Context, d *models.Doctor) error {
	if _, ok := f.items[d.ID]; !ok {
		return domain.ErrNotFound
	}
	f.updates++
	f.items[d.ID] = *d
	return nil
}

func (f *fakeDoctors) DeleteDoctor(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeDoctors) CountDoctors(context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

type fakeBookings struct {
	counts map[string]int64
	times  []time.Time
}

func (f *fakeBookings) CountAppointmentsForDoctor(_ context.Context, id string) (int64, error) {
	return f.counts[id], nil
}

func (f *fakeBookings) ListBookedTimes(_ context.Context, _ string, start, end time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, t := range f.times {
		if !t.Before(start) && t.Before(end) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeObjects struct {
	keys []string
}

func (f *fakeObjects) Put(_ context.Context, key, contentType string, body []byte) (string, error) {
	f.keys = append(f.keys, key)
	return "https://cdn.example.com/" + key, nil
}

type recordingAudit struct {
	events []audit.Event
}

func (a *recordingAudit) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}

var house = models.Doctor{
	ID:        "d-house",
	Name:      "Gregory House",
	Specialty: "Diagnostics",
	Schedule: []models.Availability{
		{Day: "Monday", StartTime: "09:00", EndTime: "11:00"},
	},
}
