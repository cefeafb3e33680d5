package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/abdalla1234567890/chatbot/internal/apiclient"
	"github.com/abdalla1234567890/chatbot/internal/chat"

	"github.com/gin-gonic/gin"
)

// chatSession returns the caller's conversation, bound to a sender that
// carries the session token.
func (s *Server) chatSession(c *gin.Context) *chat.Session {
	data := sessionData(c)
	send := func(ctx context.Context, message string, history []string) (*apiclient.ChatResult, error) {
		return s.api.Chat(ctx, data.Token, message, history)
	}
	return s.chats.Get(data.Token, lang(c), data.User.Name, send)
}

// ChatPage renders the transcript. The location picker is fetched and shown
// only while the conversation awaits a location choice.
func (s *Server) ChatPage(c *gin.Context) {
	data := sessionData(c)
	sess := s.chatSession(c)

	var locations []apiclient.Location
	if sess.AwaitingLocation() {
		var err error
		locations, err = s.api.Locations(c.Request.Context(), data.Token)
		if err != nil {
			if isUnauthorized(err) {
				s.logout(c)
				return
			}
			// The picker degrades to typing the location by hand.
			locations = nil
		}
	}

	type line struct {
		Role string
		Text string
	}
	transcript := sess.Transcript()
	lines := make([]line, 0, len(transcript))
	for _, m := range transcript {
		lines = append(lines, line{Role: string(m.Role), Text: m.Display()})
	}

	c.HTML(http.StatusOK, "chat.html", gin.H{
		"User":             data.User,
		"Lines":            lines,
		"AwaitingLocation": sess.AwaitingLocation(),
		"Locations":        locations,
		"Error":            c.Query("error"),
	})
}

// ChatSend handles both the free-text form and the location buttons; a
// location click submits its display name through the same path.
func (s *Server) ChatSend(c *gin.Context) {
	sess := s.chatSession(c)

	message := c.PostForm("message")
	if message == "" {
		message = c.PostForm("location")
	}

	err := sess.Send(c.Request.Context(), message)
	switch {
	case err == nil,
		errors.Is(err, chat.ErrEmptyMessage),
		errors.Is(err, chat.ErrBusy):
		// Dropped sends re-render the page unchanged.
		c.Redirect(http.StatusSeeOther, "/")
	case isUnauthorized(err):
		s.logout(c)
	default:
		c.Redirect(http.StatusSeeOther, "/")
	}
}
