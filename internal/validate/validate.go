package validate

import (
	"regexp"
	"unicode/utf8"
)

// Field constraints shared by the API services and the web client's
// pre-submission checks. The server remains the final authority; the web
// client only uses these to block requests that would certainly be rejected.
const (
	CodeLength     = 8
	PhoneLength    = 10
	NameMaxLength  = 100
	UserFieldName  = "name"
	UserFieldPhone = "phone"
	UserFieldCode  = "code"
)

var phonePattern = regexp.MustCompile(`^05[0-9]{8}$`)

// Code reports whether a login code has the fixed 8-character length.
func Code(code string) bool {
	return utf8.RuneCountInString(code) == CodeLength
}

// Phone reports whether a phone number is exactly 10 digits starting with 05.
func Phone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// Name reports whether a user or location name fits the 100-character cap.
func Name(name string) bool {
	return utf8.RuneCountInString(name) <= NameMaxLength
}

// UserField reports whether a single-field user update targets an allowed field.
func UserField(field string) bool {
	switch field {
	case UserFieldName, UserFieldPhone, UserFieldCode:
		return true
	}
	return false
}

// Violations maps a field name to the message code of its first failed rule.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// User checks the full create-user triple and records every violation.
func User(code, name, phone string, v Violations) {
	if !Code(code) {
		v["code"] = "code_length"
	}
	if !Name(name) {
		v["name"] = "name_too_long"
	}
	if !Phone(phone) {
		v["phone"] = "phone_invalid"
	}
}
