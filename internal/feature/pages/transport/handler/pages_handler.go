// Package handler provides the HTTP handlers for the public and role-gated
// pages.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartpletude_backend/internal/feature/roster/usecase"
	"smartpletude_backend/internal/platform/session"
)

// RosterUsecase supplies the per-role headcounts shown on the role pages.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type RosterUsecase interface {
	Counts(ctx context.Context) (usecase.Counts, error)
}

// PagesHandler renders the landing page, the two role pages and the error
// pages. It holds no business data; access control lives in the middleware.
type PagesHandler struct {
	roster RosterUsecase
}

// NewPagesHandler creates a new instance of PagesHandler.
func NewPagesHandler(roster RosterUsecase) *PagesHandler {
	return &PagesHandler{roster: roster}
}

// Home renders the landing page for everyone; logged-in users see their name.
func (h *PagesHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"CurrentUser": session.CurrentUser(c),
	})
}

// Teachers renders the teacher landing page. The route is gated by
// RequireRole, so the current user is always a teacher here.
func (h *PagesHandler) Teachers(c *gin.Context) {
	c.HTML(http.StatusOK, "teachers.html", gin.H{
		"CurrentUser": session.CurrentUser(c),
		"Counts":      h.counts(c),
	})
}

// Students renders the student landing page.
func (h *PagesHandler) Students(c *gin.Context) {
	c.HTML(http.StatusOK, "students.html", gin.H{
		"CurrentUser": session.CurrentUser(c),
		"Counts":      h.counts(c),
	})
}

// counts fetches roster headcounts. The pages degrade to zero counts rather
// than failing when the store is briefly unavailable.
func (h *PagesHandler) counts(c *gin.Context) usecase.Counts {
	counts, err := h.roster.Counts(c.Request.Context())
	if err != nil {
		slog.Warn("roster counts unavailable", "error", err)
		return usecase.Counts{}
	}
	return counts
}

// NotFound renders the 404 page for unmatched routes.
func (h *PagesHandler) NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", gin.H{
		"CurrentUser": session.CurrentUser(c),
	})
}

// Recovery renders the generic 500 page. Fault details are logged, never
// shown to the client.
func (h *PagesHandler) Recovery(c *gin.Context, err any) {
	slog.Error("unhandled fault", "error", err, "path", c.Request.URL.Path)
	c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
	c.Abort()
}
