package session

import (
	"crypto/sha256"
	"encoding/json"
	"net/http"
	"os"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/pbkdf2"
)

const (
	cookieName = "assistant-session"

	tokenKey = "token"
	userKey  = "user"
	// legacyCodeKey was used by an earlier revision that kept the raw access
	// code in the session. It is scrubbed on every login.
	legacyCodeKey = "code"
)

// User is the session copy of the login profile. It mirrors what the API
// returned at login time; the API remains the authority.
type User struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	IsAdmin int    `json:"is_admin"`
	IDHash  string `json:"id_hash"`
}

// Data is one authenticated browser session: the bearer token plus the user
// profile. Token and User are stored and cleared together; a session never
// holds one without the other.
type Data struct {
	Token string
	User  User
}

// Store persists session state across requests.
type Store interface {
	// Get returns the session data, or nil when the visitor is not logged
	// in or the session is corrupt.
	Get(r *http.Request) *Data
	Set(w http.ResponseWriter, r *http.Request, data *Data) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

type cookieStore struct {
	store *sessions.CookieStore
}

// NewCookieStore builds a cookie-backed session store. Signing and
// encryption keys are derived from secret so one environment variable
// configures both.
func NewCookieStore(secret string) Store {
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: SESSION_SECRET environment variable is required in production mode")
		}
		secret = "default_session_secret" // Development fallback only — DO NOT use in production
	}

	authKey := pbkdf2.Key([]byte(secret), []byte("session-auth"), 4096, 64, sha256.New)
	encKey := pbkdf2.Key([]byte(secret), []byte("session-enc"), 4096, 32, sha256.New)

	store := sessions.NewCookieStore(authKey, encKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600 * 24,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &cookieStore{store: store}
}

func (s *cookieStore) Get(r *http.Request) *Data {
	sess, err := s.store.Get(r, cookieName)
	if err != nil {
		return nil
	}

	token, ok := sess.Values[tokenKey].(string)
	if !ok || token == "" {
		return nil
	}
	raw, ok := sess.Values[userKey].(string)
	if !ok {
		return nil
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &Data{Token: token, User: user}
}

func (s *cookieStore) Set(w http.ResponseWriter, r *http.Request, data *Data) error {
	sess, _ := s.store.Get(r, cookieName)

	raw, err := json.Marshal(data.User)
	if err != nil {
		return err
	}

	sess.Values[tokenKey] = data.Token
	sess.Values[userKey] = string(raw)
	delete(sess.Values, legacyCodeKey)

	return sess.Save(r, w)
}

func (s *cookieStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, cookieName)
	sess.Options.MaxAge = -1
	for k := range sess.Values {
		delete(sess.Values, k)
	}
	return sess.Save(r, w)
}
