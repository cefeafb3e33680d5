package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/abdalla1234567890/chatbot/internal/i18n"
	"github.com/abdalla1234567890/chatbot/internal/model"
	"github.com/abdalla1234567890/chatbot/internal/repository"
	"github.com/abdalla1234567890/chatbot/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CurrentUserKey is the gin context key holding the authenticated *model.User.
const CurrentUserKey = "currentUser"

// TokenTTL is the access token lifetime.
const TokenTTL = 24 * time.Hour

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// IssueToken signs a 24h access token for the user. The subject is the
// identity hash, never the login code, so a code change does not revoke
// outstanding sessions by accident.
func IssueToken(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.IDHash,
		"adm": user.IsAdmin == 1,
		"iat": now.Unix(),
		"exp": now.Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(GetJWTSecret())
}

// Lang returns the request language stored by RequestLanguage.
func Lang(c *gin.Context) string {
	if lang, ok := c.Get("lang"); ok {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return i18n.DefaultLang
}

// RequestLanguage resolves the response language from Accept-Language once
// per request so handlers and services do not re-parse the header.
func RequestLanguage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", i18n.DetectLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// RequireAuth validates the bearer token and loads the authenticated user
// into the context. The user row is re-read on every request so a deleted
// account loses access immediately, not at token expiry.
func RequireAuth(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := Lang(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err(i18n.T(lang, "credentials_invalid")))
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err(i18n.T(lang, "credentials_invalid")))
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return GetJWTSecret(), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err(i18n.T(lang, "credentials_invalid")))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err(i18n.T(lang, "credentials_invalid")))
			return
		}
		sub, ok := claims["sub"].(string)
		if !ok || sub == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err(i18n.T(lang, "credentials_invalid")))
			return
		}

		user, err := users.GetByIDHash(c.Request.Context(), sub)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Err(i18n.T(lang, "credentials_invalid")))
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// RequireAdmin gates admin endpoints. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.IsAdmin != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Err(i18n.T(Lang(c), "admin_only")))
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user loaded by RequireAuth, or nil.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(CurrentUserKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}
