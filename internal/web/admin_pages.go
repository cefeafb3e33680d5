package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/abdalla1234567890/chatbot/internal/apiclient"
	"github.com/abdalla1234567890/chatbot/internal/i18n"
	"github.com/abdalla1234567890/chatbot/internal/validate"

	"github.com/gin-gonic/gin"
)

// AdminPage renders the console: users, the location catalog, and the
// dashboard counters, all re-fetched on every load.
func (s *Server) AdminPage(c *gin.Context) {
	data := sessionData(c)
	token := data.Token

	users, err := s.api.ListUsers(c.Request.Context(), token)
	if err != nil {
		s.handleAPIError(c, "/admin", err)
		return
	}
	locations, err := s.api.LocationCatalog(c.Request.Context(), token)
	if err != nil {
		s.handleAPIError(c, "/admin", err)
		return
	}
	stats, err := s.api.GetStatistics(c.Request.Context(), token)
	if err != nil {
		s.handleAPIError(c, "/admin", err)
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"User":      data.User,
		"Users":     users,
		"Locations": locations,
		"Stats":     stats,
		"Error":     c.Query("error"),
		"Message":   c.Query("message"),
	})
}

// AdminCreateUser validates the triple locally, then posts it. Validation
// failures never reach the backend.
func (s *Server) AdminCreateUser(c *gin.Context) {
	code := strings.TrimSpace(c.PostForm("code"))
	name := strings.TrimSpace(c.PostForm("name"))
	phone := strings.TrimSpace(c.PostForm("phone"))

	violations := validate.Violations{}
	validate.User(code, name, phone, violations)
	// Fields are reported in form order so the flashed error is stable when
	// several of them fail at once.
	for _, field := range []string{validate.UserFieldCode, validate.UserFieldName, validate.UserFieldPhone} {
		if msgCode, ok := violations[field]; ok {
			redirectWith(c, "/admin", "error", i18n.T(lang(c), msgCode))
			return
		}
	}

	if err := s.api.CreateUser(c.Request.Context(), sessionData(c).Token, code, name, phone); err != nil {
		s.handleAPIError(c, "/admin", err)
		return
	}
	redirectWith(c, "/admin", "message", i18n.T(lang(c), "user_added"))
}

// AdminUpdateUser changes exactly one field, picked by the form.
func (s *Server) AdminUpdateUser(c *gin.Context) {
	ref := c.PostForm("ref")
	field := c.PostForm("field")
	value := strings.TrimSpace(c.PostForm("value"))

	msgCode := ""
	switch field {
	case validate.UserFieldName:
		if !validate.Name(value) {
			msgCode = "name_too_long"
		}
	case validate.UserFieldPhone:
		if !validate.Phone(value) {
			msgCode = "phone_invalid"
		}
	case validate.UserFieldCode:
		if !validate.Code(value) {
			msgCode = "code_length"
		}
	default:
		msgCode = "field_not_allowed"
	}
	if msgCode != "" {
		redirectWith(c, "/admin", "error", i18n.T(lang(c), msgCode))
		return
	}

	if err := s.api.UpdateUserField(c.Request.Context(), sessionData(c).Token, ref, field, value); err != nil {
		s.handleAPIError(c, "/admin", err)
		return
	}
	redirectWith(c, "/admin", "message", i18n.Tf(lang(c), "user_updated", field))
}

func (s *Server) AdminDeleteUser(c *gin.Context) {
	if err := s.api.DeleteUser(c.Request.Context(), sessionData(c).Token, c.PostForm("ref")); err != nil {
		s.handleAPIError(c, "/admin", err)
		return
	}
	redirectWith(c, "/admin", "message", i18n.T(lang(c), "user_deleted"))
}

func (s *Server) AdminCreateLocation(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		redirectWith(c, "/admin", "error", i18n.T(lang(c), "location_name_empty"))
		return
	}
	if !validate.Name(name) {
		redirectWith(c, "/admin", "error", i18n.T(lang(c), "location_name_long"))
		return
	}

	if err := s.api.CreateLocation(c.Request.Context(), sessionData(c).Token, name); err != nil {
		s.handleAPIError(c, "/admin", err)
		return
	}
	redirectWith(c, "/admin", "message", i18n.T(lang(c), "location_added"))
}

func (s *Server) AdminDeleteLocation(c *gin.Context) {
	id, err := strconv.ParseUint(c.PostForm("id"), 10, 32)
	if err != nil {
		redirectWith(c, "/admin", "error", i18n.T(lang(c), "location_not_found"))
		return
	}

	if err := s.api.DeleteLocation(c.Request.Context(), sessionData(c).Token, uint(id)); err != nil {
		s.handleAPIError(c, "/admin", err)
		return
	}
	redirectWith(c, "/admin", "message", i18n.T(lang(c), "location_deleted"))
}

// AssignmentsPage shows one user's location assignments as checkboxes over
// the full catalog.
func (s *Server) AssignmentsPage(c *gin.Context) {
	token := sessionData(c).Token
	userRef := c.Query("user_ref")
	userName := c.Query("user_name")

	catalog, err := s.api.LocationCatalog(c.Request.Context(), token)
	if err != nil {
		s.handleAPIError(c, "/admin", err)
		return
	}
	assigned, err := s.api.UserLocations(c.Request.Context(), token, userRef)
	if err != nil {
		s.handleAPIError(c, "/admin", err)
		return
	}

	assignedSet := make(map[uint]bool, len(assigned))
	for _, loc := range assigned {
		assignedSet[loc.ID] = true
	}

	type entry struct {
		Location apiclient.Location
		Assigned bool
	}
	entries := make([]entry, 0, len(catalog))
	for _, loc := range catalog {
		entries = append(entries, entry{Location: loc, Assigned: assignedSet[loc.ID]})
	}

	c.HTML(http.StatusOK, "assignments.html", gin.H{
		"User":     sessionData(c).User,
		"UserRef":  userRef,
		"UserName": userName,
		"Entries":  entries,
		"Error":    c.Query("error"),
	})
}

// AssignmentsSave replaces the user's whole assignment set with the checked
// boxes. No checked box means no restriction.
func (s *Server) AssignmentsSave(c *gin.Context) {
	userRef := c.PostForm("user_ref")
	back := "/admin/assignments?user_ref=" + url.QueryEscape(userRef)

	var ids []uint
	for _, raw := range c.PostFormArray("location_ids") {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			redirectWith(c, back, "error", i18n.T(lang(c), "location_not_found"))
			return
		}
		ids = append(ids, uint(id))
	}

	if err := s.api.SetUserLocations(c.Request.Context(), sessionData(c).Token, userRef, ids); err != nil {
		s.handleAPIError(c, back, err)
		return
	}
	redirectWith(c, "/admin", "message", i18n.T(lang(c), "locations_updated"))
}
