package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateUser         = "CREATE_USER"
	ActionUpdateUser         = "UPDATE_USER"
	ActionDeleteUser         = "DELETE_USER"
	ActionCreateLocation     = "CREATE_LOCATION"
	ActionDeleteLocation     = "DELETE_LOCATION"
	ActionSetUserLocations   = "SET_USER_LOCATIONS"
	ActionAddUserLocation    = "ADD_USER_LOCATION"
	ActionRemoveUserLocation = "REMOVE_USER_LOCATION"
	ActionCaptureOrder       = "CAPTURE_ORDER"
)

// AuditLog tracks Who, What, and When for admin mutations and captured orders
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID    *uuid.UUID `gorm:"type:uuid;index" json:"actor_id"` // nil for system events (seeding)
	Actor      *User      `gorm:"foreignKey:ActorID" json:"-"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(64);index" json:"entity_id"`
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"`
	Details    string     `gorm:"type:text" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
