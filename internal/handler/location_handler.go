package handler

import (
	"net/http"
	"strconv"

	"github.com/abdalla1234567890/chatbot/internal/i18n"
	"github.com/abdalla1234567890/chatbot/internal/middleware"
	"github.com/abdalla1234567890/chatbot/internal/repository"
	"github.com/abdalla1234567890/chatbot/internal/service"
	"github.com/abdalla1234567890/chatbot/pkg/response"

	"github.com/gin-gonic/gin"
)

type LocationHandler struct {
	locationService service.LocationService
	userRepo        repository.UserRepository
}

// NewLocationHandler sets up the routing dependencies for location endpoints
func NewLocationHandler(locationService service.LocationService, userRepo repository.UserRepository) *LocationHandler {
	return &LocationHandler{locationService: locationService, userRepo: userRepo}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *LocationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/locations", h.ListPublicCatalog)
	router.GET("/user-locations", middleware.RequireAuth(h.userRepo), h.ListAllowed)

	admin := router.Group("/admin", middleware.RequireAuth(h.userRepo), middleware.RequireAdmin())
	{
		admin.GET("/locations", h.ListCatalog)
		admin.POST("/locations", h.CreateLocation)
		admin.DELETE("/locations/:id", h.DeleteLocation)

		admin.GET("/user-locations", h.ListUserLocations)
		admin.PUT("/user-locations", h.SetUserLocations)
		admin.POST("/user-locations/add", h.AddUserLocation)
		admin.DELETE("/user-locations/remove", h.RemoveUserLocation)
	}
}

// ListPublicCatalog handles GET /locations
// @Summary      List all delivery locations
// @Description  Returns the full public location catalog
// @Tags         locations
// @Produce      json
// @Success      200  {array}  model.Location
// @Router       /locations [get]
func (h *LocationHandler) ListPublicCatalog(c *gin.Context) {
	locations, err := h.locationService.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// ListAllowed handles GET /user-locations for the authenticated user
// @Summary      List allowed delivery locations
// @Description  Returns the caller's assigned locations, or the whole catalog when unrestricted
// @Tags         locations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.Location
// @Failure      401  {object}  response.Detail
// @Router       /user-locations [get]
func (h *LocationHandler) ListAllowed(c *gin.Context) {
	locations, err := h.locationService.ListForUser(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// ListCatalog handles GET /admin/locations
// @Summary      List the location catalog
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.Location
// @Failure      403  {object}  response.Detail
// @Router       /admin/locations [get]
func (h *LocationHandler) ListCatalog(c *gin.Context) {
	locations, err := h.locationService.ListLocations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// CreateLocation handles POST /admin/locations
// @Summary      Add a catalog location
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateLocationRequest  true  "Location name"
// @Success      201      {object}  object
// @Failure      400      {object}  response.Detail
// @Failure      409      {object}  response.Detail
// @Router       /admin/locations [post]
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req service.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c)
		return
	}

	location, err := h.locationService.CreateLocation(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   "success",
		"message":  i18n.T(middleware.Lang(c), "location_added"),
		"location": location,
	})
}

// DeleteLocation handles DELETE /admin/locations/:id
// @Summary      Delete a catalog location
// @Description  Removes the location and every user assignment referencing it
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Location ID"
// @Success      200  {object}  response.Status
// @Failure      404  {object}  response.Detail
// @Router       /admin/locations/{id} [delete]
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, &service.Error{Status: http.StatusNotFound, Code: "location_not_found"})
		return
	}

	if err := h.locationService.DeleteLocation(c.Request.Context(), middleware.CurrentUser(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(i18n.T(middleware.Lang(c), "location_deleted")))
}

// ListUserLocations handles GET /admin/user-locations?user_ref=...
// @Summary      List a user's assigned locations
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        user_ref  query     string  true  "User reference (identity hash or code)"
// @Success      200       {array}   model.Location
// @Failure      404       {object}  response.Detail
// @Router       /admin/user-locations [get]
func (h *LocationHandler) ListUserLocations(c *gin.Context) {
	locations, err := h.locationService.ListUserLocations(c.Request.Context(), c.Query("user_ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, locations)
}

// SetUserLocations handles PUT /admin/user-locations replacing the whole set
// @Summary      Replace a user's location assignments
// @Description  Replaces the user's full assignment set; an empty list removes every restriction
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.SetUserLocationsRequest  true  "User reference and location IDs"
// @Success      200      {object}  response.Status
// @Failure      404      {object}  response.Detail
// @Router       /admin/user-locations [put]
func (h *LocationHandler) SetUserLocations(c *gin.Context) {
	var req service.SetUserLocationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c)
		return
	}

	if err := h.locationService.SetUserLocations(c.Request.Context(), middleware.CurrentUser(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(i18n.T(middleware.Lang(c), "locations_updated")))
}

// AddUserLocation handles POST /admin/user-locations/add
// @Summary      Assign one location to a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UserLocationRequest  true  "User reference and location ID"
// @Success      200      {object}  response.Status
// @Failure      404      {object}  response.Detail
// @Failure      409      {object}  response.Detail
// @Router       /admin/user-locations/add [post]
func (h *LocationHandler) AddUserLocation(c *gin.Context) {
	var req service.UserLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c)
		return
	}

	if err := h.locationService.AddUserLocation(c.Request.Context(), middleware.CurrentUser(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(i18n.T(middleware.Lang(c), "user_location_added")))
}

// RemoveUserLocation handles DELETE /admin/user-locations/remove
// @Summary      Remove one location assignment from a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.UserLocationRequest  true  "User reference and location ID"
// @Success      200      {object}  response.Status
// @Failure      404      {object}  response.Detail
// @Router       /admin/user-locations/remove [delete]
func (h *LocationHandler) RemoveUserLocation(c *gin.Context) {
	var req service.UserLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c)
		return
	}

	if err := h.locationService.RemoveUserLocation(c.Request.Context(), middleware.CurrentUser(c), req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(i18n.T(middleware.Lang(c), "user_location_removed")))
}
