package handler

import (
	"net/http"

	"github.com/abdalla1234567890/chatbot/internal/middleware"
	"github.com/abdalla1234567890/chatbot/internal/repository"
	"github.com/abdalla1234567890/chatbot/internal/service"
	"github.com/abdalla1234567890/chatbot/pkg/pagination"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderService service.OrderService
	userRepo     repository.UserRepository
}

// NewOrderHandler sets up the routing dependencies for order endpoints
func NewOrderHandler(orderService service.OrderService, userRepo repository.UserRepository) *OrderHandler {
	return &OrderHandler{orderService: orderService, userRepo: userRepo}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin", middleware.RequireAuth(h.userRepo), middleware.RequireAdmin())
	{
		admin.GET("/orders", h.ListOrders)
		admin.GET("/orders/:id", h.GetOrder)
	}
}

// ListOrders handles GET /admin/orders with pagination controls
// @Summary      List captured orders
// @Description  Retrieves captured orders newest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20, max 100)"
// @Success      200    {object}  object
// @Failure      403    {object}  response.Detail
// @Router       /admin/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	params := pagination.Parse(c)

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"total":  total,
		"page":   params.Page,
		"limit":  params.Limit,
	})
}

// GetOrder handles GET /admin/orders/:id
// @Summary      Get one captured order
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order ID"
// @Success      200  {object}  model.Order
// @Failure      404  {object}  response.Detail
// @Router       /admin/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, &service.Error{Status: http.StatusNotFound, Code: "order_not_found"})
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
