package handler

import (
	"net/http"

	"github.com/abdalla1234567890/chatbot/internal/middleware"
	"github.com/abdalla1234567890/chatbot/internal/repository"
	"github.com/abdalla1234567890/chatbot/internal/service"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
	userRepo          repository.UserRepository
}

// NewStatisticsHandler sets up the routing dependencies for statistics endpoints
func NewStatisticsHandler(statisticsService service.StatisticsService, userRepo repository.UserRepository) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService, userRepo: userRepo}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin", middleware.RequireAuth(h.userRepo), middleware.RequireAdmin())
	admin.GET("/statistics", h.GetStatistics)
}

// GetStatistics handles GET /admin/statistics
// @Summary      Console dashboard counters
// @Description  Aggregates user, location, and order totals plus the busiest delivery sites
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  service.StatisticsResponse
// @Failure      403  {object}  response.Detail
// @Router       /admin/statistics [get]
func (h *StatisticsHandler) GetStatistics(c *gin.Context) {
	stats, err := h.statisticsService.GetStatistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
