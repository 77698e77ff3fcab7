package models

import (
	"time"

	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id" bson:"_id"`

	PatientID string `gorm:"size:36;index;not null" json:"patientId" bson:"patient"`
	Patient   *User  `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"patient,omitempty" bson:"-"`

	DoctorID string  `gorm:"size:36;index;not null" json:"doctorId" bson:"doctor"`
	Doctor   *Doctor `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"doctor,omitempty" bson:"-"`

	Date   time.Time `gorm:"index;not null" json:"date" bson:"date"`
	Reason string    `gorm:"size:500;not null" json:"reason" bson:"reason"`
	Notes  string    `gorm:"size:1000" json:"notes,omitempty" bson:"notes,omitempty"`
	Status string    `gorm:"size:20;default:'pending';index" json:"status" bson:"status"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (a *Appointment) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	return nil
}
