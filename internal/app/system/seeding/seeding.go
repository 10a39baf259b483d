// Package seeding provisions the first whitelist entry. A fresh deployment
// has no profiles, so nobody could register and nobody could log in to
// whitelist anyone; seeding one admin placeholder from configuration breaks
// that deadlock.
package seeding

import (
	"context"
	"errors"

	userstore "github.com/dalemusser/stratapress/internal/app/store/users"
	"github.com/dalemusser/stratapress/internal/app/system/normalize"
	"github.com/dalemusser/stratapress/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Config describes the seed placeholder. An empty Email disables seeding.
type Config struct {
	Email       string
	DisplayName string
	Role        string
	Position    string
}

// SeedWhitelist inserts the configured placeholder unless a profile with
// that email already exists. Idempotent across restarts.
func SeedWhitelist(ctx context.Context, db *mongo.Database, cfg Config, logger *zap.Logger) error {
	email := normalize.Email(cfg.Email)
	if email == "" {
		logger.Debug("whitelist seeding disabled, no seed email configured")
		return nil
	}

	role := normalize.Role(cfg.Role)
	if role == "" {
		role = models.RoleAdmin
	}
	if !models.IsValidRole(role) {
		return errors.New("seeding: invalid seed role " + role)
	}

	users := userstore.New(db)

	existing, err := users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Debug("whitelist seed email already has a profile",
			zap.String("email", email))
		return nil
	}

	if _, err := users.CreatePlaceholder(ctx, email, cfg.DisplayName, role, cfg.Position); err != nil {
		// A concurrent replica may have seeded first.
		if errors.Is(err, userstore.ErrAlreadyWhitelisted) {
			return nil
		}
		return err
	}

	logger.Info("seeded whitelist placeholder",
		zap.String("email", email),
		zap.String("role", role))
	return nil
}
