package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id" bson:"_id"`

	Name     string `gorm:"size:100;not null" json:"name" bson:"name"`
	Email    string `gorm:"size:100;uniqueIndex;not null" json:"email" bson:"email"`
	Password string `gorm:"size:255;not null" json:"-" bson:"password"`
	Role     Role   `gorm:"size:20;default:'patient'" json:"role" bson:"role"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = NewID()
	}
	return nil
}

// NewID returns the string identifier used by every store backend.
func NewID() string {
	return uuid.NewString()
}
