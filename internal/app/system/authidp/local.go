// internal/app/system/authidp/local.go
package authidp

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratapress/internal/app/system/authutil"
	"github.com/dalemusser/stratapress/internal/app/system/inputval"
	"github.com/dalemusser/stratapress/internal/app/system/normalize"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CollectionAuthIdentities stores credentials for the local provider.
const CollectionAuthIdentities = "auth_identities"

// localIdentity is a credential document for the local provider.
type localIdentity struct {
	UID          string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	DisplayName  string    `bson:"display_name,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
}

// LocalProvider is a development stand-in for the hosted identity service.
// Credentials live in a Mongo collection with bcrypt password hashes. The
// identity token is simply the UID, which is enough because local deployments
// are single-operator.
type LocalProvider struct {
	coll *mongo.Collection
}

// NewLocalProvider creates a provider backed by the given database.
func NewLocalProvider(db *mongo.Database) *LocalProvider {
	return &LocalProvider{coll: db.Collection(CollectionAuthIdentities)}
}

// SignIn implements Provider.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	email = normalize.Email(email)

	var doc localIdentity
	err := p.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !authutil.CheckPassword(password, doc.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &Identity{
		UID:         doc.UID,
		Email:       doc.Email,
		DisplayName: doc.DisplayName,
		Token:       doc.UID,
	}, nil
}

// CreateIdentity implements Provider. Validation mirrors the hosted service
// so switching providers does not change which inputs are accepted.
func (p *LocalProvider) CreateIdentity(ctx context.Context, email, password string) (*Identity, error) {
	email = normalize.Email(email)
	if !inputval.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if err := authutil.ValidatePassword(password); err != nil {
		return nil, ErrWeakPassword
	}

	count, err := p.coll.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailInUse
	}

	hash, err := authutil.HashPassword(password)
	if err != nil {
		return nil, err
	}

	doc := localIdentity{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := p.coll.InsertOne(ctx, doc); err != nil {
		// The unique index on email catches a concurrent create that the
		// count above missed.
		if wafflemongo.IsDup(err) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}

	return &Identity{
		UID:   doc.UID,
		Email: doc.Email,
		Token: doc.UID,
	}, nil
}

// DeleteIdentity implements Provider.
func (p *LocalProvider) DeleteIdentity(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, err := p.coll.DeleteOne(ctx, bson.M{"_id": token})
	return err
}

// SetDisplayName implements Provider.
func (p *LocalProvider) SetDisplayName(ctx context.Context, token, displayName string) error {
	_, err := p.coll.UpdateOne(ctx,
		bson.M{"_id": token},
		bson.M{"$set": bson.M{"display_name": displayName}})
	return err
}
