// Package router wires the HTTP routes and the access-control middleware.
package router

import (
	"github.com/gin-gonic/gin"

	"smartpletude_backend/internal/feature/auth/domain/entity"
	authhandler "smartpletude_backend/internal/feature/auth/transport/handler"
	pageshandler "smartpletude_backend/internal/feature/pages/transport/handler"
	platformhandler "smartpletude_backend/internal/platform/http/handler"
	"smartpletude_backend/internal/platform/session"
	"smartpletude_backend/internal/platform/web"
)

// NewRouter builds the gin engine with the full route table.
// Public routes carry no gate; /teachers and /students are gated on an
// active session with the matching role. Unmatched routes render the 404
// page and panics surface as the generic 500 page.
func NewRouter(auth *authhandler.AuthHandler, pages *pageshandler.PagesHandler,
	resolver session.UserResolver, verifier session.CookieVerifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(pages.Recovery))
	r.SetHTMLTemplate(web.Templates())

	// Every route sees the current user; gating is per route below.
	r.Use(session.Resolve(resolver, verifier))

	// Liveness probe
	r.GET("/healthz", platformhandler.Health)

	// Public routes
	r.GET("/", pages.Home)
	r.GET("/register", auth.ShowRegister)
	r.POST("/register", auth.Register)
	r.GET("/login", auth.ShowLogin)
	r.POST("/login", auth.Login)
	r.GET("/logout", auth.Logout)

	// Role-gated landing pages
	r.GET("/teachers", session.RequireRole(entity.UserTypeTeacher), pages.Teachers)
	r.GET("/students", session.RequireRole(entity.UserTypeStudent), pages.Students)

	r.NoRoute(pages.NotFound)

	return r
}
