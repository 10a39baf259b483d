// internal/app/features/accounts/routes.go
package accounts

import (
	"net/http"

	"github.com/dalemusser/stratapress/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the account endpoints.
//
// When mounted at /api/auth:
//   - POST  /api/auth/login    - Sign in with email and password
//   - POST  /api/auth/register - Whitelist registration
//   - POST  /api/auth/logout   - Destroy the session
//   - GET   /api/auth/me       - Current user's profile
//   - PATCH /api/auth/me       - Update own profile photo
func Routes(h *Handler, sessions *auth.SessionManager) http.Handler {
	r := chi.NewRouter()

	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
	r.Post("/logout", h.Logout)

	r.Group(func(pr chi.Router) {
		pr.Use(sessions.RequireSignedIn)
		pr.Get("/me", h.Me)
		pr.Patch("/me", h.UpdateMe)
	})

	return r
}
