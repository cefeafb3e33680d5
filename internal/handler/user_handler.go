package handler

import (
	"net/http"

	"github.com/abdalla1234567890/chatbot/internal/i18n"
	"github.com/abdalla1234567890/chatbot/internal/middleware"
	"github.com/abdalla1234567890/chatbot/internal/repository"
	"github.com/abdalla1234567890/chatbot/internal/service"
	"github.com/abdalla1234567890/chatbot/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	userRepo    repository.UserRepository
}

// NewUserHandler sets up the routing dependencies for User endpoints
func NewUserHandler(userService service.UserService, userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{userService: userService, userRepo: userRepo}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Public routes. /login takes a classic form post, /login_json the same
	// payload as JSON; both answer the same token envelope.
	router.POST("/login", h.Login)
	router.POST("/login_json", h.LoginJSON)

	admin := router.Group("/admin", middleware.RequireAuth(h.userRepo), middleware.RequireAdmin())
	{
		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
		admin.PUT("/users/:ref", h.UpdateUser)
		admin.DELETE("/users/:ref", h.DeleteUser)
	}
}

// Login handles POST /login to authenticate by access code (form encoded)
// @Summary      Login with access code
// @Description  Authenticates a user by their 8-character access code, returning a JWT token and the user profile
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        code  formData  string  true  "Access code"
// @Success      200   {object}  service.TokenResponse
// @Failure      401   {object}  response.Detail
// @Router       /login [post]
func (h *UserHandler) Login(c *gin.Context) {
	code := c.PostForm("code")
	if code == "" {
		// OAuth2-style form clients carry the code in the username field.
		code = c.PostForm("username")
	}
	if code == "" {
		bindError(c)
		return
	}
	h.login(c, service.LoginRequest{Code: code})
}

// LoginJSON handles POST /login_json with a JSON body
// @Summary      Login with access code (JSON)
// @Description  Same as /login but takes the access code as a JSON body
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest  true  "Login Credentials"
// @Success      200      {object}  service.TokenResponse
// @Failure      401      {object}  response.Detail
// @Router       /login_json [post]
func (h *UserHandler) LoginJSON(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c)
		return
	}
	h.login(c, req)
}

func (h *UserHandler) login(c *gin.Context, req service.LoginRequest) {
	tokenRes, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokenRes)
}

// ListUsers handles GET /admin/users
// @Summary      List users
// @Description  Retrieves every registered user, oldest first
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   service.UserInfo
// @Failure      403  {object}  response.Detail
// @Router       /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /admin/users
// @Summary      Create a new user
// @Description  Creates a user after validating the access code, name, and phone constraints
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateUserRequest  true  "Create User Payload"
// @Success      201      {object}  object
// @Failure      400      {object}  response.Detail
// @Failure      409      {object}  response.Detail
// @Router       /admin/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": i18n.T(middleware.Lang(c), "user_added"),
		"user":    user,
	})
}

// UpdateUser handles PUT /admin/users/:ref changing exactly one field
// @Summary      Update one user field
// @Description  Updates the name, phone, or code of the user referenced by identity hash or access code
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        ref      path      string                            true  "User reference (identity hash or code)"
// @Param        payload  body      service.UpdateUserFieldRequest    true  "Field and new value"
// @Success      200      {object}  object
// @Failure      400      {object}  response.Detail
// @Failure      404      {object}  response.Detail
// @Router       /admin/users/{ref} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req service.UpdateUserFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c)
		return
	}

	user, err := h.userService.UpdateUserField(c.Request.Context(), middleware.CurrentUser(c), c.Param("ref"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": i18n.Tf(middleware.Lang(c), "user_updated", req.Field),
		"user":    user,
	})
}

// DeleteUser handles DELETE /admin/users/:ref
// @Summary      Delete user
// @Description  Deletes the referenced user; the last remaining admin cannot be removed
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        ref  path      string  true  "User reference (identity hash or code)"
// @Success      200  {object}  response.Status
// @Failure      400  {object}  response.Detail
// @Failure      404  {object}  response.Detail
// @Router       /admin/users/{ref} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(c.Request.Context(), middleware.CurrentUser(c), c.Param("ref")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.OK(i18n.T(middleware.Lang(c), "user_deleted")))
}
