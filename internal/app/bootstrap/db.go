// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/stratapress/internal/app/system/authidp"
	"github.com/dalemusser/stratapress/internal/app/system/indexes"
	"github.com/dalemusser/stratapress/internal/app/system/rebuild"
	"github.com/dalemusser/stratapress/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// ConnectDB connects to databases or other backends.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema and
// Startup. This is the place to establish connections to databases and
// external services that require persistent clients. Everything connected
// here is bundled into DBDeps for the later lifecycle hooks.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	// Configure MongoDB connection pool
	poolCfg := wafflemongo.DefaultPoolConfig()
	if appCfg.MongoMaxPoolSize > 0 {
		poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
	}
	if appCfg.MongoMinPoolSize > 0 {
		poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
	}

	client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
	if err != nil {
		return DBDeps{}, err
	}

	db := client.Database(appCfg.MongoDatabase)

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
		zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
	)

	// Select the identity provider backing login and registration.
	var provider authidp.Provider
	switch appCfg.AuthProvider {
	case "firebase":
		provider = authidp.NewFirebaseProvider(appCfg.FirebaseAPIKey, logger)
		logger.Info("using Firebase identity provider")
	case "local":
		provider = authidp.NewLocalProvider(db)
		logger.Info("using local identity provider",
			zap.String("collection", authidp.CollectionAuthIdentities))
	default:
		// ValidateConfig rejects other values before we get here.
		return DBDeps{}, fmt.Errorf("unknown auth_provider: %s", appCfg.AuthProvider)
	}

	// Rebuild hook trigger. An empty URL yields a disabled trigger that
	// logs a warning instead of firing.
	rb := rebuild.New(appCfg.RebuildHookURL, logger)
	if rb.Enabled() {
		logger.Info("rebuild hook configured", zap.String("url", appCfg.RebuildHookURL))
	} else {
		logger.Info("rebuild hook not configured, publishing will not trigger site rebuilds")
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		AuthProvider:  provider,
		Rebuild:       rb,
	}, nil
}

// EnsureSchema sets up indexes or schema as needed.
//
// This runs after ConnectDB succeeds but before Startup and before the HTTP
// handler is built. The context has a timeout based on
// coreCfg.IndexBootTimeout, so long-running work should respect context
// cancellation.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	// Ensure collections exist and attach JSON-Schema validators.
	// This runs first so indexes can be created on existing collections.
	logger.Info("ensuring collections and validators")
	if err := validators.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure validators", zap.Error(err))
		return err
	}

	// Ensure database indexes for query performance.
	logger.Info("ensuring database indexes")
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure indexes", zap.Error(err))
		return err
	}

	logger.Info("database schema ensured successfully")
	return nil
}
