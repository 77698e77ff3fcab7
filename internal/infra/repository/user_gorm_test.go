package repository

import (
	"errors"
	"testing"

	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserGormRepository(db)
	ctx := t.Context()

	u := &models.User{Name: "Ana", Email: "ana@example.com", Password: "hash", Role: models.RolePatient}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if u.ID == "" {
		t.Fatal("CreateUser() did not assign an id")
	}

	got, err := repo.GetUserByEmail(ctx, "  ANA@example.com ")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("GetUserByEmail() id = %s, want %s", got.ID, u.ID)
	}

	dup := &models.User{Name: "Other", Email: "ana@example.com", Password: "hash"}
	if err := repo.CreateUser(ctx, dup); !errors.Is(err, domain.ErrDuplicate) {
		t.Errorf("duplicate CreateUser() error = %v, want ErrDuplicate", err)
	}

	if _, err := repo.GetUserByID(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("GetUserByID(missing) error = %v, want ErrNotFound", err)
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count != 1 {
		t.Errorf("users = %d, want 1", count)
	}
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserGormRepository(db)
	ctx := t.Context()

	seedUser(t, db, "first@example.com", models.RolePatient)
	second := seedUser(t, db, "second@example.com", models.RolePatient)

	second.Email = "first@example.com"
	if err := repo.UpdateUser(ctx, second); !errors.Is(err, domain.ErrDuplicate) {
		t.Fatalf("UpdateUser() error = %v, want ErrDuplicate", err)
	}

	second.Email = "renamed@example.com"
	second.Name = "Renamed"
	if err := repo.UpdateUser(ctx, second); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}

	got, _ := repo.GetUserByID(ctx, second.ID)
	if got.Name != "Renamed" || got.Email != "renamed@example.com" {
		t.Errorf("update not persisted: %+v", got)
	}
}
