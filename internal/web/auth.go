package web

import (
	"net/http"
	"strings"

	"github.com/abdalla1234567890/chatbot/internal/i18n"
	"github.com/abdalla1234567890/chatbot/internal/session"
	"github.com/abdalla1234567890/chatbot/internal/validate"

	"github.com/gin-gonic/gin"
)

// LoginPage renders the code entry form. Logged-in visitors are sent to
// their landing page instead.
func (s *Server) LoginPage(c *gin.Context) {
	if data := s.sessions.Get(c.Request); data != nil {
		c.Redirect(http.StatusSeeOther, landingPage(data))
		return
	}

	c.HTML(http.StatusOK, "login.html", gin.H{
		"Error":   c.Query("error"),
		"Message": c.Query("message"),
	})
}

// Login handles the form post. The code length is checked before any
// request; the backend stays the authority on whether the code exists.
func (s *Server) Login(c *gin.Context) {
	code := strings.TrimSpace(c.PostForm("code"))
	if !validate.Code(code) {
		redirectWith(c, "/login", "error", i18n.T(lang(c), "code_length"))
		return
	}

	result, err := s.api.Login(c.Request.Context(), code)
	if err != nil {
		if isUnauthorized(err) {
			redirectWith(c, "/login", "error", i18n.T(lang(c), "invalid_code"))
			return
		}
		redirectWith(c, "/login", "error", errorMessage(c, err))
		return
	}

	data := &session.Data{
		Token: result.AccessToken,
		User: session.User{
			Code:    result.User.Code,
			Name:    result.User.Name,
			Phone:   result.User.Phone,
			IsAdmin: result.User.IsAdmin,
			IDHash:  result.User.IDHash,
		},
	}
	if err := s.sessions.Set(c.Writer, c.Request, data); err != nil {
		redirectWith(c, "/login", "error", i18n.T(lang(c), "unexpected_error"))
		return
	}

	c.Redirect(http.StatusSeeOther, landingPage(data))
}

// Logout clears the session and chat transcript.
func (s *Server) Logout(c *gin.Context) {
	s.logout(c)
}

// landingPage sends admins to the console and everyone else to the chat.
func landingPage(data *session.Data) string {
	if data.User.IsAdmin == 1 {
		return "/admin"
	}
	return "/"
}
