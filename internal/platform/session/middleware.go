package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartpletude_backend/internal/feature/auth/domain/entity"
	"smartpletude_backend/internal/feature/auth/usecase"
)

// Context keys set by Resolve.
const (
	ContextUser    = "currentUser"
	ContextSession = "currentSession"
)

// CookieName is the name of the session cookie.
const CookieName = "sp_session"

// UserResolver turns a session ID into the session and its user.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider (usecase).
type UserResolver interface {
	CurrentUser(ctx context.Context, sessionID string) (*entity.Session, *entity.User, error)
}

// CookieVerifier checks the signed cookie value and extracts the session ID.
type CookieVerifier interface {
	Verify(tokenStr string) (string, error)
}

// Resolve returns a middleware that loads the current session and user from
// the session cookie. Requests with no cookie, a bad signature, or a dead
// session continue as anonymous; gating happens in RequireRole. A storage
// fault during the lookup is not an auth rejection and renders the 500 page.
func Resolve(resolver UserResolver, verifier CookieVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(CookieName)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		sid, err := verifier.Verify(cookie)
		if err != nil {
			c.Next()
			return
		}

		session, user, err := resolver.CurrentUser(c.Request.Context(), sid)
		if err != nil {
			if !isAuthRejection(err) {
				slog.Error("session lookup failed", "error", err, "remote_addr", c.ClientIP())
				c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
				c.Abort()
				return
			}
			slog.Debug("session rejected", "error", err, "remote_addr", c.ClientIP())
			c.Next()
			return
		}

		c.Set(ContextSession, session)
		c.Set(ContextUser, user)
		c.Next()
	}
}

// isAuthRejection reports whether err means "this cookie no longer grants a
// session" as opposed to an infrastructure failure.
func isAuthRejection(err error) bool {
	return errors.Is(err, usecase.ErrSessionNotFound) ||
		errors.Is(err, usecase.ErrSessionExpired) ||
		errors.Is(err, usecase.ErrSessionRevoked) ||
		errors.Is(err, usecase.ErrUserNotFound)
}

// RequireRole gates a route on an active session with the given role.
// Anonymous requests are redirected to the login page; a role mismatch
// renders the forbidden page.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if user.UserType != role {
			slog.Warn("role mismatch", "required", role, "actual", user.UserType, "user_id", user.ID)
			c.HTML(http.StatusForbidden, "403.html", gin.H{"CurrentUser": user})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by Resolve, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, ok := v.(*entity.User)
	if !ok {
		return nil
	}
	return user
}

// CurrentSession returns the session set by Resolve, or nil.
func CurrentSession(c *gin.Context) *entity.Session {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil
	}
	session, ok := v.(*entity.Session)
	if !ok {
		return nil
	}
	return session
}
