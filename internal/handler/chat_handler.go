package handler

import (
	"net/http"

	"github.com/abdalla1234567890/chatbot/internal/middleware"
	"github.com/abdalla1234567890/chatbot/internal/repository"
	"github.com/abdalla1234567890/chatbot/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chatService service.ChatService
	userRepo    repository.UserRepository
}

// NewChatHandler sets up the routing dependencies for the chat endpoint
func NewChatHandler(chatService service.ChatService, userRepo repository.UserRepository) *ChatHandler {
	return &ChatHandler{chatService: chatService, userRepo: userRepo}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/chat", middleware.RequireAuth(h.userRepo), h.Chat)
}

// Chat handles POST /chat running one assistant turn
// @Summary      Send a chat message
// @Description  Runs one conversation turn against the ordering assistant. Confirmed orders are captured server-side and order_placed is set on the response.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.ChatRequest  true  "Message and prior conversation history"
// @Success      200      {object}  service.ChatResponse
// @Failure      401      {object}  response.Detail
// @Router       /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req service.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c)
		return
	}

	resp, err := h.chatService.Chat(c.Request.Context(), middleware.Lang(c), middleware.CurrentUser(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
