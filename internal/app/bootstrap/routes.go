// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	accountsfeature "github.com/dalemusser/stratapress/internal/app/features/accounts"
	articlesfeature "github.com/dalemusser/stratapress/internal/app/features/articles"
	healthfeature "github.com/dalemusser/stratapress/internal/app/features/health"
	tagsfeature "github.com/dalemusser/stratapress/internal/app/features/tags"
	usersfeature "github.com/dalemusser/stratapress/internal/app/features/users"
	articlestore "github.com/dalemusser/stratapress/internal/app/store/articles"
	tagstore "github.com/dalemusser/stratapress/internal/app/store/tags"
	userstore "github.com/dalemusser/stratapress/internal/app/store/users"
	"github.com/dalemusser/stratapress/internal/app/system/auth"
	"github.com/dalemusser/stratapress/internal/app/system/jsonutil"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// The admin panel is a JSON API throughout: session cookies carry auth,
// CSRF tokens protect mutating requests, and every response body is JSON.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Set up the ProfileFetcher so LoadSessionUser fetches fresh profile data
	// on each request. Role changes, deleted profiles, and still-pending
	// placeholders take effect immediately instead of at next login.
	sessionMgr.SetProfileFetcher(userstore.NewFetcher(deps.MongoDatabase, logger))

	// Stores shared across features.
	users := userstore.New(deps.MongoDatabase)
	articles := articlestore.New(deps.MongoDatabase)
	tags := tagstore.New(deps.MongoDatabase)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Session middleware: loads SessionUser into context if logged in.
	// Unauthenticated requests simply have no session, which is fine.
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection middleware with path-based exemption for the
	// pre-session auth endpoints. Cookie name is "stratapress_csrf" to avoid
	// collisions with other services on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("stratapress_csrf"),
		csrf.FieldName("csrf_token"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			jsonutil.Forbidden(w, "CSRF token invalid or missing")
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	trustedOrigins := []string{
		"localhost:8080",
		"localhost:3000",
		"127.0.0.1:8080",
		"127.0.0.1:3000",
	}
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins(trustedOrigins))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	csrfProtect := csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...)

	// Wrap CSRF middleware to skip the endpoints a client hits before it has
	// a session (and therefore before it has fetched a token).
	csrfMiddleware := func(next http.Handler) http.Handler {
		csrfHandler := csrfProtect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			switch req.URL.Path {
			case "/api/auth/login", "/api/auth/register":
				next.ServeHTTP(w, req)
				return
			}
			csrfHandler.ServeHTTP(w, req)
		})
	}
	r.Use(csrfMiddleware)

	// ─────────────────────────────────────────────────────────────────────────────
	// Routes
	// ─────────────────────────────────────────────────────────────────────────────

	// CSRF token endpoint. The admin panel fetches this once after login and
	// sends the token in the X-CSRF-Token header on mutating requests.
	r.Get("/api/csrf", func(w http.ResponseWriter, req *http.Request) {
		jsonutil.OK(w, map[string]string{"csrf_token": csrf.Token(req)})
	})

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, deps.Rebuild, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	healthfeature.MountRootEndpoints(r, healthHandler)

	// Authentication: login, whitelist registration, logout, current user
	accountsHandler := accountsfeature.NewHandler(users, deps.AuthProvider, sessionMgr, logger)
	r.Mount("/api/auth", accountsfeature.Routes(accountsHandler, sessionMgr))

	// Articles: CRUD plus publish-triggered rebuilds and tag syncing
	articlesHandler := articlesfeature.NewHandler(articles, tags, deps.Rebuild, logger)
	r.Mount("/api/articles", articlesfeature.Routes(articlesHandler, sessionMgr))

	// User profile and whitelist management (admin only)
	usersHandler := usersfeature.NewHandler(users, logger)
	r.Mount("/api/users", usersfeature.Routes(usersHandler, sessionMgr))

	// Tag listing for the article editor
	tagsHandler := tagsfeature.NewHandler(tags, logger)
	r.Mount("/api/tags", tagsfeature.Routes(tagsHandler, sessionMgr))

	// 404 catch-all for unmatched routes
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		jsonutil.NotFound(w, "not found")
	})

	return r, nil
}
