package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/medical-scheduler/internal/domain"
	"github.com/BruksfildServices01/medical-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/medical-scheduler/internal/models"
)

type DoctorGormRepository struct {
	db *gorm.DB
}

func NewDoctorGormRepository(db *gorm.DB) *DoctorGormRepository {
	return &DoctorGormRepository{db: db}
}

func orderedSchedule(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func numberSchedule(d *models.Doctor) {
	for i := range d.Schedule {
		d.Schedule[i].ID = 0
		d.Schedule[i].DoctorID = d.ID
		d.Schedule[i].Position = i
	}
}

func (r *DoctorGormRepository) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	if d.ID == "" {
		d.ID = models.NewID()
	}
	numberSchedule(d)
	return translate(r.db.WithContext(ctx).Create(d).Error)
}

func (r *DoctorGormRepository) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	var d models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("Schedule", orderedSchedule).
		Where("id = ?", id).
		First(&d).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *DoctorGormRepository) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	var docs []models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("Schedule", orderedSchedule).
		Order("name ASC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// --------------------------------------------------
// Update replaces the schedule inside one transaction
// --------------------------------------------------

func (r *DoctorGormRepository) UpdateDoctor(ctx context.Context, d *models.Doctor) error {
	numberSchedule(d)

	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Doctor{}).
			Where("id = ?", d.ID).
			Select("name", "specialty", "contact_phone", "contact_email", "photo_url").
			Updates(d)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}

		if err := tx.Where("doctor_id = ?", d.ID).Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		if len(d.Schedule) == 0 {
			return nil
		}
		return tx.Create(&d.Schedule).Error
	}))
}

func (r *DoctorGormRepository) DeleteDoctor(ctx context.Context, id string) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("doctor_id = ?", id).Delete(&models.Availability{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Doctor{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	}))
}

func (r *DoctorGormRepository) CountDoctors(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Doctor{}).Count(&n).Error
	return n, err
}

// Compile-time check
var _ doctor.Repository = (*DoctorGormRepository)(nil)
