// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartpletude_backend/internal/feature/auth/domain/entity"
	"smartpletude_backend/internal/feature/auth/transport/http/dto"
	"smartpletude_backend/internal/feature/auth/usecase"
	"smartpletude_backend/internal/platform/session"
)

// AuthUsecase defines the auth operations consumed by this handler.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	// Register creates a new user and returns its ID.
	Register(ctx context.Context, in usecase.RegisterInput) (uint, error)
	// Login authenticates a user and establishes a session on success.
	Login(ctx context.Context, email, password string, remember bool) (*entity.Session, error)
	// Logout revokes a session; revoking twice is not an error.
	Logout(ctx context.Context, sessionID string) error
}

// CookieCodec signs session IDs into cookie values and back.
type CookieCodec interface {
	Sign(sessionID string, expiresAt time.Time) (string, error)
	Verify(tokenStr string) (string, error)
}

// AuthHandler handles the register/login/logout form routes. Usecase results
// are translated into redirects on success and re-rendered forms carrying
// field errors on failure.
type AuthHandler struct {
	auth    AuthUsecase
	cookies CookieCodec
	secure  bool
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(auth AuthUsecase, cookies CookieCodec, secureCookies bool) *AuthHandler {
	return &AuthHandler{auth: auth, cookies: cookies, secure: secureCookies}
}

// ShowRegister renders the registration form, or sends already-authenticated
// users back home.
func (h *AuthHandler) ShowRegister(c *gin.Context) {
	if session.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "register.html", gin.H{"Values": dto.RegisterForm{}})
}

// Register handles the registration form submission.
// - field problems re-render the form with inline errors (200)
// - a taken email becomes an error on the email field
// - success redirects to /login
// Submitted passwords are never echoed back.
func (h *AuthHandler) Register(c *gin.Context) {
	if session.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("register form bind failed", "error", err, "remote_addr", c.ClientIP())
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Errors": map[string]string{"form": "Invalid form submission."},
			"Values": dto.RegisterForm{},
		})
		return
	}

	id, err := h.auth.Register(c.Request.Context(), usecase.RegisterInput{
		Email:           form.Email,
		Password:        form.Password,
		PasswordConfirm: form.PasswordConfirm,
		LastName:        form.LastName,
		FirstName:       form.FirstName,
		UserType:        form.UserType,
	})
	if err != nil {
		h.renderRegisterError(c, form, err)
		return
	}

	slog.Info("user registered", "user_id", id, "email", form.Email, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusFound, "/login")
}

// renderRegisterError maps a usecase error onto the re-rendered form.
func (h *AuthHandler) renderRegisterError(c *gin.Context, form dto.RegisterForm, err error) {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Errors": ve.Fields,
			"Values": safeValues(form),
		})
	case errors.Is(err, usecase.ErrEmailAlreadyExists):
		slog.Warn("register duplicate email", "email", form.Email, "remote_addr", c.ClientIP())
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Errors": map[string]string{"email": "An account with this email already exists."},
			"Values": safeValues(form),
		})
	default:
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
	}
}

// safeValues strips the password fields before the form is echoed back.
func safeValues(form dto.RegisterForm) dto.RegisterForm {
	form.Password = ""
	form.PasswordConfirm = ""
	return form
}

// ShowLogin renders the login form, or sends already-authenticated users
// back home.
func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if session.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{"Values": dto.LoginForm{}})
}

// loginFailedMessage is the single generic message for every credential
// failure, so responses carry no account-enumeration signal.
const loginFailedMessage = "Invalid email or password."

// Login handles the login form submission. On success it sets the signed
// session cookie and redirects to the role page matching the account.
func (h *AuthHandler) Login(c *gin.Context) {
	if session.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}

	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("login form bind failed", "error", err, "remote_addr", c.ClientIP())
		c.HTML(http.StatusOK, "login.html", gin.H{"Error": loginFailedMessage, "Values": dto.LoginForm{}})
		return
	}

	sess, err := h.auth.Login(c.Request.Context(), form.Email, form.Password, form.RememberMe)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			slog.Warn("login failed", "remote_addr", c.ClientIP())
			c.HTML(http.StatusOK, "login.html", gin.H{
				"Error":  loginFailedMessage,
				"Values": dto.LoginForm{Email: form.Email},
			})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
		return
	}

	cookie, err := h.cookies.Sign(sess.ID, sess.ExpiresAt)
	if err != nil {
		slog.Error("session cookie signing failed", "error", err)
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
		return
	}

	// Remembered sessions persist via Max-Age; otherwise the cookie ends
	// with the browser session while the record keeps the short expiry.
	maxAge := 0
	if sess.Remember {
		maxAge = int(time.Until(sess.ExpiresAt).Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, cookie, maxAge, "/", "", h.secure, true)

	slog.Info("user login successful", "user_id", sess.UserID, "remote_addr", c.ClientIP())
	c.Redirect(http.StatusFound, rolePath(sess.UserType))
}

// rolePath maps a role to its landing page.
func rolePath(userType string) string {
	if userType == entity.UserTypeTeacher {
		return "/teachers"
	}
	return "/students"
}

// Logout revokes the current session, clears the cookie and redirects home.
// It is idempotent: without a valid cookie it just redirects.
func (h *AuthHandler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(session.CookieName); err == nil && cookie != "" {
		if sid, err := h.cookies.Verify(cookie); err == nil {
			if err := h.auth.Logout(c.Request.Context(), sid); err != nil {
				slog.Warn("logout revoke failed", "error", err)
			}
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secure, true)
	c.Redirect(http.StatusFound, "/")
}
