package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/abdalla1234567890/chatbot/internal/i18n"
	"github.com/abdalla1234567890/chatbot/internal/middleware"
	"github.com/abdalla1234567890/chatbot/internal/service"
	"github.com/abdalla1234567890/chatbot/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP status and localized detail
// message. Anything that is not a business-rule error answers 500 without
// leaking internals.
func respondError(c *gin.Context, err error) {
	lang := middleware.Lang(c)

	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		c.JSON(svcErr.Status, response.Err(i18n.T(lang, svcErr.Code)))
		return
	}

	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, response.Err(i18n.T(lang, "unexpected_error")))
}

// bindError answers a malformed request body in the same detail envelope.
func bindError(c *gin.Context) {
	c.JSON(http.StatusBadRequest, response.Err(i18n.T(middleware.Lang(c), "invalid_payload")))
}
