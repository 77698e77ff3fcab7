package models

import (
	"time"

	"gorm.io/gorm"
)

// Availability is one weekly window in a doctor's schedule.
type Availability struct {
	ID       uint   `gorm:"primaryKey" json:"-" bson:"-"`
	DoctorID string `gorm:"size:36;index;not null" json:"-" bson:"-"`
	Position int    `gorm:"not null;default:0" json:"-" bson:"-"`

	Day       string `gorm:"size:10;not null" json:"day" bson:"day"`
	StartTime string `gorm:"size:5;not null" json:"startTime" bson:"startTime"` // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"endTime" bson:"endTime"`     // HH:MM
}

type ContactInfo struct {
	Phone string `gorm:"size:30" json:"phone" bson:"phone"`
	Email string `gorm:"size:100" json:"email" bson:"email"`
}

type Doctor struct {
	ID string `gorm:"primaryKey;size:36" json:"id" bson:"_id"`

	Name      string `gorm:"size:100;not null" json:"name" bson:"name"`
	Specialty string `gorm:"size:100;not null" json:"specialty" bson:"specialty"`

	Schedule    []Availability `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"schedule" bson:"schedule"`
	ContactInfo ContactInfo    `gorm:"embedded;embeddedPrefix:contact_" json:"contactInfo" bson:"contactInfo"`
	PhotoURL    string         `gorm:"size:500" json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (d *Doctor) BeforeCreate(*gorm.DB) error {
	if d.ID == "" {
		d.ID = NewID()
	}
	return nil
}
