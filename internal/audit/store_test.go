package audit

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

func TestGormStoreList(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatal(err)
	}

	store := NewGormStore(db)
	ctx := t.Context()
	base := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)

	entries := []models.AuditLog{
		{Action: ActionAppointmentCreated, Entity: EntityAppointment, CreatedAt: base},
		{Action: ActionAppointmentUpdated, Entity: EntityAppointment, CreatedAt: base.Add(time.Hour)},
		{Action: ActionDoctorCreated, Entity: EntityDoctor, CreatedAt: base.AddDate(0, 0, 2)},
	}
	for i := range entries {
		if err := store.Save(ctx, &entries[i]); err != nil {
			t.Fatal(err)
		}
	}

	logs, total, err := store.List(ctx, Filter{Entity: EntityAppointment, Page: 1, Limit: 10})
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(logs) != 2 {
		t.Fatalf("List(entity) = %d/%d", len(logs), total)
	}
	if logs[0].Action != ActionAppointmentUpdated {
		t.Errorf("logs not newest first: %v", logs[0].Action)
	}

	to := base.AddDate(0, 0, 1)
	_, total, _ = store.List(ctx, Filter{To: &to, Page: 1, Limit: 10})
	if total != 2 {
		t.Errorf("List(to) total = %d, want 2", total)
	}

	page2, total, _ := store.List(ctx, Filter{Page: 2, Limit: 2})
	if total != 3 || len(page2) != 1 {
		t.Errorf("page 2 = %d rows (total %d)", len(page2), total)
	}
}
