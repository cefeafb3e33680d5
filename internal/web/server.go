package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"

	"github.com/abdalla1234567890/chatbot/internal/apiclient"
	"github.com/abdalla1234567890/chatbot/internal/chat"
	"github.com/abdalla1234567890/chatbot/internal/i18n"
	"github.com/abdalla1234567890/chatbot/internal/session"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionDataKey = "sessionData"

// Server is the browser-facing frontend. It holds no domain state of its
// own: everything is read from the backend per request, except the chat
// transcripts which live in the session manager.
type Server struct {
	api      *apiclient.Client
	sessions session.Store
	chats    *chat.Manager
}

// NewServer wires the frontend against the backend client and session store.
func NewServer(api *apiclient.Client, sessions session.Store) *Server {
	return &Server{
		api:      api,
		sessions: sessions,
		chats:    chat.NewManager(),
	}
}

// Router builds the gin engine with all pages registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	router.GET("/login", s.LoginPage)
	router.POST("/login", s.Login)
	router.GET("/logout", s.Logout)

	authed := router.Group("", s.requireSession())
	{
		authed.GET("/", s.ChatPage)
		authed.POST("/chat/send", s.ChatSend)

		admin := authed.Group("/admin", s.requireAdmin())
		{
			admin.GET("", s.AdminPage)
			admin.POST("/users/create", s.AdminCreateUser)
			admin.POST("/users/update", s.AdminUpdateUser)
			admin.POST("/users/delete", s.AdminDeleteUser)
			admin.POST("/locations/create", s.AdminCreateLocation)
			admin.POST("/locations/delete", s.AdminDeleteLocation)
			admin.GET("/assignments", s.AssignmentsPage)
			admin.POST("/assignments", s.AssignmentsSave)
		}
	}

	return router
}

// requireSession is the page gate: no session means the login page, nothing
// else rendered. The check runs against the cached session only; a stale
// token is caught later by the 401 handler on the first backend call.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		data := s.sessions.Get(c.Request)
		if data == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Set(sessionDataKey, data)
		c.Next()
	}
}

// requireAdmin sends non-admins back to the chat page.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessionData(c).User.IsAdmin != 1 {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

func sessionData(c *gin.Context) *session.Data {
	v, _ := c.Get(sessionDataKey)
	data, _ := v.(*session.Data)
	return data
}

func lang(c *gin.Context) string {
	return i18n.DetectLanguage(c.GetHeader("Accept-Language"))
}

// redirectWith sends the browser to target with a flash message in the
// query string (post/redirect/get).
func redirectWith(c *gin.Context, target, key, msg string) {
	sep := "?"
	if u, err := url.Parse(target); err == nil && u.RawQuery != "" {
		sep = "&"
	}
	c.Redirect(http.StatusSeeOther, target+sep+key+"="+url.QueryEscape(msg))
}

// logout purges the session store and the chat transcript, then lands on
// the login page. Used by the logout link and by every 401.
func (s *Server) logout(c *gin.Context) {
	if data := s.sessions.Get(c.Request); data != nil {
		s.chats.Drop(data.Token)
	}
	_ = s.sessions.Clear(c.Writer, c.Request)
	c.Redirect(http.StatusSeeOther, "/login")
}

// handleAPIError maps a backend failure on a form action. 401 always logs
// out; a detail-carrying rejection flashes the server's literal message;
// anything else flashes the generic connection error.
func (s *Server) handleAPIError(c *gin.Context, target string, err error) {
	if isUnauthorized(err) {
		s.logout(c)
		return
	}
	redirectWith(c, target, "error", errorMessage(c, err))
}

func isUnauthorized(err error) bool {
	return errors.Is(err, apiclient.ErrUnauthorized)
}

func errorMessage(c *gin.Context, err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return i18n.T(lang(c), "connection_error")
}
