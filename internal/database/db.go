package database

import (
	"log"
	"strings"

	"github.com/abdalla1234567890/chatbot/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewConnection initializes a connection pool using GORM. A postgres:// DSN
// selects the postgres driver; anything else is treated as a sqlite file path,
// mirroring the deploy-or-local split the service has always run with.
func NewConnection(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		if dsn == "" {
			dsn = "users.db"
		}
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.Location{},
		&model.UserLocation{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
