// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/dalemusser/stratapress/internal/app/system/auth"
	"github.com/dalemusser/stratapress/internal/app/system/normalize"
	"github.com/dalemusser/stratapress/internal/app/system/timeouts"
	"github.com/dalemusser/stratapress/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Fetcher implements auth.ProfileFetcher to load fresh profile data on each
// request. A session whose UID no longer has a profile document is rejected,
// which is what locks out a deleted user even though their auth identity
// still exists at the provider.
type Fetcher struct {
	users  *mongo.Collection
	logger *zap.Logger
}

// NewFetcher creates a ProfileFetcher that queries the given database.
func NewFetcher(db *mongo.Database, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		users:  db.Collection(Collection),
		logger: logger,
	}
}

// FetchProfile retrieves a profile by UID and returns nil if no profile
// exists or any error occurs. This implements auth.ProfileFetcher.
func (f *Fetcher) FetchProfile(ctx context.Context, uid string) *auth.SessionUser {
	if uid == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u models.UserProfile
	if err := f.users.FindOne(ctx, bson.M{"_id": uid}).Decode(&u); err != nil {
		return nil
	}

	// A placeholder has no auth identity and must never carry a session.
	if u.IsPlaceholder() {
		return nil
	}

	return &auth.SessionUser{
		UID:         u.UID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        normalize.Role(u.Role),
	}
}
