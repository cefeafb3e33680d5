package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is a confirmed purchase captured from an assistant conversation.
// LocationName is denormalized: the catalog entry may be deleted later but
// the order keeps the name it was placed with.
type Order struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;index" json:"-"`
	User         User        `gorm:"foreignKey:UserID" json:"-"`
	CustomerName string      `gorm:"type:varchar(100);not null" json:"customer_name"`
	Phone        string      `gorm:"type:varchar(10);not null" json:"phone"`
	LocationName string      `gorm:"type:varchar(100);not null" json:"location_name"`
	Summary      string      `gorm:"type:text" json:"summary"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt    time.Time   `gorm:"index" json:"created_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is one product line of a captured order. Quantities come from the
// assistant as free text, so they are stored as exact decimals, not floats.
type OrderItem struct {
	ID       uint            `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Category string          `gorm:"type:varchar(100)" json:"category"`
	Product  string          `gorm:"type:varchar(100)" json:"product"`
	Spec1    string          `gorm:"type:varchar(100)" json:"spec1,omitempty"`
	Spec2    string          `gorm:"type:varchar(100)" json:"spec2,omitempty"`
	Spec3    string          `gorm:"type:varchar(100)" json:"spec3,omitempty"`
	Quantity decimal.Decimal `gorm:"type:decimal(12,3)" json:"quantity"`
	Unit     string          `gorm:"type:varchar(30)" json:"unit"`
}
