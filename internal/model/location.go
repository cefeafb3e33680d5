package model

import "github.com/google/uuid"

// Location is an entry of the global delivery-site catalog.
type Location struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

// UserLocation is a membership row of the user/location many-to-many relation.
type UserLocation struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	LocationID uint      `gorm:"primaryKey" json:"location_id"`
	Location   Location  `gorm:"foreignKey:LocationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
