// internal/app/features/users/routes.go
package users

import (
	"net/http"

	"github.com/dalemusser/stratapress/internal/app/system/auth"
	"github.com/dalemusser/stratapress/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the user management endpoints. Admin only.
//
// When mounted at /api/users:
//   - GET    /api/users        - List all profiles
//   - POST   /api/users        - Whitelist a new staff member
//   - PATCH  /api/users/{uid}  - Update a profile
//   - DELETE /api/users/{uid}  - Delete a profile
func Routes(h *Handler, sessions *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessions.RequireRole(models.RoleAdmin))

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Patch("/{uid}", h.Update)
	r.Delete("/{uid}", h.Delete)

	return r
}
