// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/stratapress/internal/app/system/inputval"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
// For example, mongo_uri is read from STRATAPRESS_MONGO_URI.
const EnvVarPrefix = "STRATAPRESS"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: STRATAPRESS_MONGO_URI, STRATAPRESS_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "stratapress", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "stratapress-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie max age (e.g., 24h, 720h, 30m)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Identity provider configuration
	{Name: "auth_provider", Default: "firebase", Desc: "Credential backend: 'firebase' or 'local'"},
	{Name: "firebase_api_key", Default: "", Desc: "Firebase Identity Toolkit API key (required for auth_provider=firebase)"},

	// Static site rebuild hook
	{Name: "rebuild_hook_url", Default: "", Desc: "Webhook POSTed on article publish to rebuild the public site (empty disables)"},

	// Whitelist seeding configuration
	{Name: "seed_whitelist_email", Default: "", Desc: "Email to whitelist on startup so the first admin can register"},
	{Name: "seed_whitelist_name", Default: "Admin", Desc: "Display name for the seeded whitelist entry"},
	{Name: "seed_whitelist_role", Default: "admin", Desc: "Role for the seeded whitelist entry: 'admin' or 'staff'"},
	{Name: "seed_whitelist_position", Default: "", Desc: "Position title for the seeded whitelist entry"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STRATAPRESS_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		AuthProvider:   appValues.String("auth_provider"),
		FirebaseAPIKey: appValues.String("firebase_api_key"),

		RebuildHookURL: appValues.String("rebuild_hook_url"),

		SeedWhitelistEmail:    appValues.String("seed_whitelist_email"),
		SeedWhitelistName:     appValues.String("seed_whitelist_name"),
		SeedWhitelistRole:     appValues.String("seed_whitelist_role"),
		SeedWhitelistPosition: appValues.String("seed_whitelist_position"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.AuthProvider {
	case "firebase":
		if appCfg.FirebaseAPIKey == "" {
			return fmt.Errorf("auth_provider is 'firebase' but firebase_api_key is not set")
		}
	case "local":
		// No extra configuration needed; credentials live in MongoDB.
	default:
		return fmt.Errorf("unknown auth_provider: %s (want 'firebase' or 'local')", appCfg.AuthProvider)
	}

	if appCfg.RebuildHookURL != "" && !inputval.IsValidHTTPURL(appCfg.RebuildHookURL) {
		return fmt.Errorf("invalid rebuild_hook_url: %s", appCfg.RebuildHookURL)
	}

	return nil
}
