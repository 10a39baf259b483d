// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/stratapress/internal/app/system/seeding"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema/index setup are complete,
// but before the HTTP handler is built and requests are served.
//
// This is the place for one-time initialization that depends on having live
// database connections and fully loaded configuration. Unlike ConnectDB and
// EnsureSchema which focus on infrastructure, Startup is for application-level
// initialization.
//
// Returning a non-nil error will abort startup and prevent the server from
// starting. The context will be cancelled if the process is asked to shut
// down while Startup is running; honor it in any long-running work.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	// Seed the whitelist so the first person can complete registration.
	// No-op when seed_whitelist_email is unset or already whitelisted.
	seedCfg := seeding.Config{
		Email:       appCfg.SeedWhitelistEmail,
		DisplayName: appCfg.SeedWhitelistName,
		Role:        appCfg.SeedWhitelistRole,
		Position:    appCfg.SeedWhitelistPosition,
	}
	if err := seeding.SeedWhitelist(ctx, deps.MongoDatabase, seedCfg, logger); err != nil {
		logger.Error("failed to seed whitelist", zap.Error(err))
		return err
	}

	return nil
}
