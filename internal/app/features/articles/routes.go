// internal/app/features/articles/routes.go
package articles

import (
	"net/http"

	"github.com/dalemusser/stratapress/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the article endpoints. All of them require a
// signed-in session; finer access control (authorship) lives in the handlers.
//
// When mounted at /api/articles:
//   - GET    /api/articles        - List visible articles
//   - POST   /api/articles        - Create an article
//   - GET    /api/articles/stats  - Count visible articles by status
//   - GET    /api/articles/{id}   - Fetch one article
//   - PATCH  /api/articles/{id}   - Update fields of an article
//   - DELETE /api/articles/{id}   - Delete an article
func Routes(h *Handler, sessions *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessions.RequireSignedIn)

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/stats", h.Stats)

	r.Route("/{id}", func(ar chi.Router) {
		ar.Get("/", h.Get)
		ar.Patch("/", h.Update)
		ar.Delete("/", h.Delete)
	})

	return r
}
