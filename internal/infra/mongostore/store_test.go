package mongostore

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/medical-scheduler/internal/audit"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

func setup(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		t.Skip("MONGO_URL not set")
	}

	s, err := Connect(t.Context(), uri, "scheduler_test_"+uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	if err := s.EnsureIndexes(t.Context()); err != nil {
		t.Fatalf("EnsureIndexes() error = %v", err)
	}
	t.Cleanup(func() {
		_ = s.Drop(t.Context())
		_ = s.Disconnect(t.Context())
	})
	return s
}

func TestUsersDuplicateEmail(t *testing.T) {
	s := setup(t)
	users := s.Users()
	ctx := t.Context()

	if err := users.CreateUser(ctx, &models.User{Name: "A", Email: "a@example.com", Password: "x"}); err != nil {
		t.Fatal(err)
	}
	err := users.CreateUser(ctx, &models.User{Name: "B", Email: "a@example.com", Password: "x"})
	if !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("CreateUser(duplicate) error = %v", err)
	}
	if _, err := users.GetUserByID(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetUserByID(missing) error = %v", err)
	}
}

func TestAppointmentsPopulateAndStats(t *testing.T) {
	s := setup(t)
	ctx := t.Context()

	patient := &models.User{Name: "P", Email: "p@example.com", Password: "x", Role: models.RolePatient}
	if err := s.Users().CreateUser(ctx, patient); err != nil {
		t.Fatal(err)
	}
	doc := &models.Doctor{Name: "Dr. Mongo", Specialty: "General"}
	if err := s.Doctors().CreateDoctor(ctx, doc); err != nil {
		t.Fatal(err)
	}

	repo := s.Appointments()
	day := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	for i, status := range []string{"pending", "cancelled", "confirmed"} {
		ap := &models.Appointment{
			PatientID: patient.ID,
			DoctorID:  doc.ID,
			Date:      day.Add(time.Duration(9+i) * time.Hour),
			Reason:    "r",
			Status:    status,
		}
		if err := repo.CreateAppointment(ctx, ap); err != nil {
			t.Fatal(err)
		}
	}

	list, err := repo.ListAppointments(ctx, appointment.ListFilter{PatientID: patient.ID})
	if err != nil || len(list) != 3 {
		t.Fatalf("ListAppointments() = %d, %v", len(list), err)
	}
	if list[0].Doctor == nil || list[0].Doctor.Name != "Dr. Mongo" || list[0].Patient == nil {
		t.Errorf("populate failed: %+v", list[0])
	}

	counts, _ := repo.CountAppointmentsByStatus(ctx)
	if counts["pending"] != 1 || counts["cancelled"] != 1 || counts["confirmed"] != 1 {
		t.Errorf("CountAppointmentsByStatus() = %v", counts)
	}

	booked, _ := repo.ListBookedTimes(ctx, doc.ID, day, day.AddDate(0, 0, 1))
	if len(booked) != 2 {
		t.Errorf("ListBookedTimes() = %d, want 2", len(booked))
	}

	if err := repo.DeleteAppointment(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("DeleteAppointment(missing) error = %v", err)
	}
}

func TestAuditStoreList(t *testing.T) {
	s := setup(t)
	store := s.AuditLogs()
	ctx := t.Context()

	for _, action := range []string{audit.ActionDoctorCreated, audit.ActionDoctorDeleted, audit.ActionDoctorCreated} {
		if err := store.Save(ctx, &models.AuditLog{Action: action, Entity: audit.EntityDoctor}); err != nil {
			t.Fatal(err)
		}
	}

	logs, total, err := store.List(ctx, audit.Filter{Action: audit.ActionDoctorCreated, Page: 1, Limit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(logs) != 1 {
		t.Errorf("List() = %d logs, total %d", len(logs), total)
	}
}
