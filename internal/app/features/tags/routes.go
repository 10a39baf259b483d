// internal/app/features/tags/routes.go
package tags

import (
	"net/http"

	"github.com/dalemusser/stratapress/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the tag endpoints.
//
// When mounted at /api/tags:
//   - GET /api/tags - List all tag keys
func Routes(h *Handler, sessions *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessions.RequireSignedIn)
	r.Get("/", h.List)
	return r
}
