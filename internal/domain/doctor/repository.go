package doctor

import (
	"context"

	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

// Repository is the doctor directory. Lookups by id return
// domain.ErrNotFound when the doctor does not exist.
type Repository interface {
	CreateDoctor(ctx context.Context, d *models.Doctor) error
	GetDoctor(ctx context.Context, id string) (*models.Doctor, error)
	ListDoctors(ctx context.Context) ([]models.Doctor, error)
	// UpdateDoctor replaces scalar fields and the whole schedule.
	UpdateDoctor(ctx context.Context, d *models.Doctor) error
	DeleteDoctor(ctx context.Context, id string) error
	CountDoctors(ctx context.Context) (int64, error)
}
