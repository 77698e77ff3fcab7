package appointment

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	domainAppointment "github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
	"github.com/BruksfildServices01/medical-scheduler/internal/notification"
)

// ======================================================
// Appointment store
// ======================================================

type fakeRepo struct {
	mu    sync.Mutex
	items map[string]models.Appointment
	users map[string]*models.User
	docs  *fakeDoctors
	seq   int
}

func newFakeRepo(docs *fakeDoctors, users ...*models.User) *fakeRepo {
	r := &fakeRepo{
		items: map[string]models.Appointment{},
		users: map[string]*models.User{},
		docs:  docs,
	}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	ap.ID = "ap-" + string(rune('0'+r.seq))
	ap.CreatedAt = time.Now()
	ap.UpdatedAt = ap.CreatedAt
	stored := *ap
	stored.Patient, stored.Doctor = nil, nil
	r.items[ap.ID] = stored
	return nil
}

func (r *fakeRepo) load(ap models.Appointment) *models.Appointment {
	ap.Patient = r.users[ap.PatientID]
	if d, ok := r.docs.items[ap.DoctorID]; ok {
		ap.Doctor = &d
	}
	return &ap
}

func (r *fakeRepo) GetAppointment(_ context.Context, id string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.load(ap), nil
}

func (r *fakeRepo) ListAppointments(_ context.Context, f domainAppointment.ListFilter) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.items {
		if f.PatientID != "" && ap.PatientID != f.PatientID {
			continue
		}
		if f.From != nil && ap.Date.Before(*f.From) {
			continue
		}
		if f.To != nil && !ap.Date.Before(*f.To) {
			continue
		}
		out = append(out, *r.load(ap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[ap.ID]; !ok {
		return domain.ErrNotFound
	}
	stored := *ap
	stored.Patient, stored.Doctor = nil, nil
	stored.UpdatedAt = time.Now()
	r.items[ap.ID] = stored
	return nil
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) ListBookedTimes(context.Context, string, time.Time, time.Time) ([]time.Time, error) {
	return nil, nil
}

func (r *fakeRepo) CountAppointmentsForDoctor(context.Context, string) (int64, error) {
	return 0, nil
}

var _ domainAppointment.Repository = (*fakeRepo)(nil)

// ======================================================
// Doctor directory
// ======================================================

type fakeDoctors struct {
	items map[string]models.Doctor
}

func newFakeDoctors(docs ...models.Doctor) *fakeDoctors {
	f := &fakeDoctors{items: map[string]models.Doctor{}}
	for _, d := range docs {
		f.items[d.ID] = d
	}
	return f
}

func (f *fakeDoctors) CreateDoctor(_ context.Context, d *models.Doctor) error {
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
	out := make([]models.Doctor, 0, len(f.items))
	for _, d := range f.items {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDoctors) UpdateDoctor(_ context.Context, d *models.Doctor) error {
	f.items[d.ID] = *d
	return nil
}

func (f *fakeDoctors) DeleteDoctor(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeDoctors) CountDoctors(context.Context) (int64, error) {
	return int64(len(f.items)), nil
}

// ======================================================
// Side effects
// ======================================================

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Message
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, msg notification.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

type recordingAudit struct {
	events []audit.Event
}

func (a *recordingAudit) Dispatch(ev audit.Event) {
	a.events = append(a.events, ev)
}

var errQueueFull = errors.New("queue full")

// ======================================================
// Fixtures
// ======================================================

var (
	alice = &models.User{ID: "u-alice", Name: "Alice", Email: "alice@example.com", Role: models.RolePatient}
	bob   = &models.User{ID: "u-bob", Name: "Bob", Email: "bob@example.com", Role: models.RolePatient}
	admin = &models.User{ID: "u-admin", Name: "Admin", Email: "admin@example.com", Role: models.RoleAdmin}

	house = models.Doctor{ID: "d-house", Name: "Gregory House", Specialty: "Diagnostics"}
	grey  = models.Doctor{ID: "d-grey", Name: "Meredith Grey", Specialty: "Surgery"}
)

func actorOf(u *models.User) domainAppointment.Actor {
	return domainAppointment.Actor{UserID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type fixture struct {
	repo     *fakeRepo
	doctors  *fakeDoctors
	notifier *recordingNotifier
	audit    *recordingAudit
}

func newFixture() *fixture {
	docs := newFakeDoctors(house, grey)
	return &fixture{
		repo:     newFakeRepo(docs, alice, bob, admin),
		doctors:  docs,
		notifier: &recordingNotifier{},
		audit:    &recordingAudit{},
	}
}

func (f *fixture) create(t interface{ Fatalf(string, ...any) }, who *models.User, date string) string {
	uc := NewCreateAppointment(f.repo, f.doctors, f.notifier, f.audit, time.UTC)
	res, err := uc.Execute(context.Background(), actorOf(who), CreateAppointmentInput{
		DoctorID: house.ID,
		Date:     date,
		Reason:   "checkup",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return res.Appointment.ID
}
