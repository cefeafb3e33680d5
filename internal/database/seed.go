package database

import (
	"log"

	"github.com/abdalla1234567890/chatbot/internal/model"

	"gorm.io/gorm"
)

// Bootstrap credentials for a fresh install. Change the admin code right
// after the first login.
const (
	DefaultAdminCode  = "admin123"
	defaultAdminName  = "Main Admin"
	defaultAdminPhone = "0500000000"
)

var defaultLocations = []string{
	"عمان", "العراق", "مصر قرعة", "مصر مميز VIP", "مصر تضامن إقتصادي",
	"مصر تضامن 5 nuggets", "مصر سياحي إقتصادي", "مصر سياحي مميز",
	"مصر سياحي شركات VIP", "نيجيرا", "مصر بري", "روسيا", "بنغلادش",
	"اندونيسيا", "تشاد", "فلسطين", "مشروع صيانة اعمال جنوب اسيا",
	"ترافيل كورنر", "الراجحي 5 نجوم", "مشروع كدانه دورات مياه مزدلفة",
}

// Seed creates the default admin and the default location catalog when the
// corresponding tables are empty. Safe to call on every startup.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&model.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		log.Println("Database is empty. Creating default admin user...")
		admin := model.User{
			Code:    DefaultAdminCode,
			Name:    defaultAdminName,
			Phone:   defaultAdminPhone,
			IsAdmin: 1,
		}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		log.Printf("Default admin created. Code: %s", DefaultAdminCode)
	}

	var locationCount int64
	if err := db.Model(&model.Location{}).Count(&locationCount).Error; err != nil {
		return err
	}
	if locationCount == 0 {
		for _, name := range defaultLocations {
			if err := db.Create(&model.Location{Name: name}).Error; err != nil {
				return err
			}
		}
		log.Printf("Added %d default locations.", len(defaultLocations))
	}

	return nil
}
