package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Name: "User " + email, Email: email, Password: "hash", Role: role}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedDoctor(t *testing.T, db *gorm.DB, name string) *models.Doctor {
	t.Helper()
	d := &models.Doctor{
		Name:      name,
		Specialty: "Cardiology",
		Schedule: []models.Availability{
			{Day: "Monday", StartTime: "09:00", EndTime: "12:00"},
		},
		ContactInfo: models.ContactInfo{Phone: "555-0100", Email: "doc@clinic.test"},
	}
	if err := NewDoctorGormRepository(db).CreateDoctor(t.Context(), d); err != nil {
		t.Fatalf("seed doctor: %v", err)
	}
	return d
}
