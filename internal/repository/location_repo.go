package repository

import (
	"context"

	"github.com/abdalla1234567890/chatbot/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocationRepository defines data access for the location catalog and the
// user/location assignment relation.
type LocationRepository interface {
	Create(ctx context.Context, location *model.Location) error
	GetByID(ctx context.Context, id uint) (*model.Location, error)
	List(ctx context.Context) ([]model.Location, error)
	// Delete removes a catalog entry and reports whether a row existed.
	Delete(ctx context.Context, id uint) (bool, error)

	ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Location, error)
	// ReplaceForUser swaps the user's whole assignment set in one transaction.
	ReplaceForUser(ctx context.Context, userID uuid.UUID, locationIDs []uint) error
	AddForUser(ctx context.Context, userID uuid.UUID, locationID uint) error
	// RemoveForUser deletes one assignment and reports whether it existed.
	RemoveForUser(ctx context.Context, userID uuid.UUID, locationID uint) (bool, error)
}

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository returns a new instance of LocationRepository
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, location *model.Location) error {
	return GetDB(ctx, r.db).Create(location).Error
}

func (r *locationRepository) GetByID(ctx context.Context, id uint) (*model.Location, error) {
	var location model.Location
	if err := GetDB(ctx, r.db).First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) List(ctx context.Context) ([]model.Location, error) {
	var locations []model.Location
	if err := GetDB(ctx, r.db).Order("name").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *locationRepository) Delete(ctx context.Context, id uint) (bool, error) {
	// Assignment rows referencing the entry go with it; the relation has no
	// delete cascade on sqlite without foreign_keys pragma, so clear explicitly.
	db := GetDB(ctx, r.db)
	if err := db.Where("location_id = ?", id).Delete(&model.UserLocation{}).Error; err != nil {
		return false, err
	}
	res := db.Delete(&model.Location{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *locationRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]model.Location, error) {
	var locations []model.Location
	err := GetDB(ctx, r.db).
		Joins("INNER JOIN user_locations ul ON ul.location_id = locations.id").
		Where("ul.user_id = ?", userID).
		Order("locations.name").
		Find(&locations).Error
	if err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *locationRepository) ReplaceForUser(ctx context.Context, userID uuid.UUID, locationIDs []uint) error {
	return GetDB(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserLocation{}).Error; err != nil {
			return err
		}
		for _, id := range locationIDs {
			row := model.UserLocation{UserID: userID, LocationID: id}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *locationRepository) AddForUser(ctx context.Context, userID uuid.UUID, locationID uint) error {
	row := model.UserLocation{UserID: userID, LocationID: locationID}
	return GetDB(ctx, r.db).Create(&row).Error
}

func (r *locationRepository) RemoveForUser(ctx context.Context, userID uuid.UUID, locationID uint) (bool, error) {
	res := GetDB(ctx, r.db).
		Where("user_id = ? AND location_id = ?", userID, locationID).
		Delete(&model.UserLocation{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
