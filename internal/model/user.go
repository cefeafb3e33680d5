package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an ordering customer or admin. The login code doubles as
// the credential and the external display form; IDHash is the stable opaque
// reference handed to the admin console so mutations survive code changes.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"-"`
	Code      string         `gorm:"type:varchar(8);uniqueIndex;not null" json:"code"`
	IDHash    string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"id_hash"`
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`
	Phone     string         `gorm:"type:varchar(10);not null" json:"phone"`
	IsAdmin   int            `gorm:"not null;default:0" json:"is_admin"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate issues the primary key and the identity hash. Generated in Go
// rather than by the database so the sqlite and postgres engines behave the same.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.IDHash == "" {
		u.IDHash = uuid.NewString()
	}
	return nil
}
