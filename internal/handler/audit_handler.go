package handler

import (
	"net/http"

	"github.com/abdalla1234567890/chatbot/internal/middleware"
	"github.com/abdalla1234567890/chatbot/internal/repository"
	"github.com/abdalla1234567890/chatbot/internal/service"
	"github.com/abdalla1234567890/chatbot/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	auditService service.AuditService
	userRepo     repository.UserRepository
}

// NewAuditHandler sets up the routing dependencies for audit endpoints
func NewAuditHandler(auditService service.AuditService, userRepo repository.UserRepository) *AuditHandler {
	return &AuditHandler{auditService: auditService, userRepo: userRepo}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AuditHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin", middleware.RequireAuth(h.userRepo), middleware.RequireAdmin())
	admin.GET("/audit-logs", h.ListEntries)
}

// ListEntries handles GET /admin/audit-logs with pagination controls
// @Summary      List audit log entries
// @Description  Retrieves admin mutations and captured orders, newest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Items per page (default 20, max 100)"
// @Success      200    {object}  object
// @Failure      403    {object}  response.Detail
// @Router       /admin/audit-logs [get]
func (h *AuditHandler) ListEntries(c *gin.Context) {
	params := pagination.Parse(c)

	entries, total, err := h.auditService.ListEntries(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   total,
		"page":    params.Page,
		"limit":   params.Limit,
	})
}
