package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id" bson:"-"`

	ActorID *string `gorm:"size:36;index" json:"actorId" bson:"actorId,omitempty"`
	Action  string  `gorm:"size:50;not null;index" json:"action" bson:"action"`

	Entity   string  `gorm:"size:50" json:"entity" bson:"entity"`
	EntityID *string `gorm:"size:36" json:"entityId" bson:"entityId,omitempty"`
	Metadata string  `gorm:"type:text" json:"metadata" bson:"metadata"`

	CreatedAt time.Time `gorm:"index" json:"createdAt" bson:"createdAt"`
}

// All lists every table the relational backends migrate.
func All() []any {
	return []any{
		&User{},
		&Doctor{},
		&Availability{},
		&Appointment{},
		&AuditLog{},
	}
}
