package service

import (
	"context"
	"time"

	"github.com/abdalla1234567890/chatbot/internal/model"

	"gorm.io/gorm"
)

// LocationRanking ranks a delivery site by captured order volume.
type LocationRanking struct {
	LocationName string `json:"location_name"`
	TotalOrders  int64  `json:"total_orders"`
}

type StatisticsResponse struct {
	TotalUsers     int64             `json:"total_users"`
	TotalAdmins    int64             `json:"total_admins"`
	TotalLocations int64             `json:"total_locations"`
	TotalOrders    int64             `json:"total_orders"`
	OrdersToday    int64             `json:"orders_today"`
	TopLocations   []LocationRanking `json:"top_locations"`
}

type StatisticsService interface {
	GetStatistics(ctx context.Context) (StatisticsResponse, error)
}

type statisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// GetStatistics aggregates console dashboard counters in one pass.
func (s *statisticsService) GetStatistics(ctx context.Context) (StatisticsResponse, error) {
	var response StatisticsResponse
	db := s.db.WithContext(ctx)

	if err := db.Model(&model.User{}).Count(&response.TotalUsers).Error; err != nil {
		return response, err
	}
	if err := db.Model(&model.User{}).Where("is_admin = ?", 1).Count(&response.TotalAdmins).Error; err != nil {
		return response, err
	}
	if err := db.Model(&model.Location{}).Count(&response.TotalLocations).Error; err != nil {
		return response, err
	}
	if err := db.Model(&model.Order{}).Count(&response.TotalOrders).Error; err != nil {
		return response, err
	}

	if err := db.Model(&model.Order{}).Where("created_at >= ?", startOfDay(time.Now())).Count(&response.OrdersToday).Error; err != nil {
		return response, err
	}

	var top []LocationRanking
	err := db.Table("orders").
		Select("location_name, COUNT(*) as total_orders").
		Group("location_name").
		Order("total_orders DESC").
		Limit(5).
		Scan(&top).Error
	if err != nil {
		return response, err
	}
	response.TopLocations = top

	return response, nil
}

// startOfDay returns midnight of t's calendar day in t's own zone, so the
// "orders today" counter follows the deployment's local day and not UTC.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
