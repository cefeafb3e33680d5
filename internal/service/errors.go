package service

import "net/http"

// Error is a business-rule failure carrying the HTTP status to answer with
// and the message code the handler localizes for the client.
type Error struct {
	Status int
	Code   string
}

func (e *Error) Error() string { return e.Code }

func errBadRequest(code string) *Error   { return &Error{Status: http.StatusBadRequest, Code: code} }
func errUnauthorized(code string) *Error { return &Error{Status: http.StatusUnauthorized, Code: code} }
func errNotFound(code string) *Error     { return &Error{Status: http.StatusNotFound, Code: code} }
func errConflict(code string) *Error     { return &Error{Status: http.StatusConflict, Code: code} }
