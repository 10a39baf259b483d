// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where you put everything specific to YOUR application.
// The struct is passed to most lifecycle hooks, so any configuration
// needed during startup, request handling, or shutdown should live here.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: stratapress-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Maximum session cookie lifetime (default: 24h)

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Identity provider configuration
	// AuthProvider selects where credentials live: "firebase" uses the
	// Google Identity Toolkit REST API, "local" stores bcrypt hashes in
	// MongoDB (useful for development and self-hosted deployments).
	AuthProvider   string
	FirebaseAPIKey string // Identity Toolkit API key (required when AuthProvider is "firebase")

	// Static site rebuild hook
	// When set, publishing an article POSTs to this URL to trigger a
	// rebuild of the public site. Leave empty to disable.
	RebuildHookURL string

	// Whitelist seeding configuration
	// A fresh database has no profiles, so nobody could register; when
	// SeedWhitelistEmail is set, Startup creates one placeholder profile
	// so the first person can complete registration.
	SeedWhitelistEmail    string
	SeedWhitelistName     string // Display name for the seeded placeholder
	SeedWhitelistRole     string // Role for the seeded placeholder (default: admin)
	SeedWhitelistPosition string // Position for the seeded placeholder
}
