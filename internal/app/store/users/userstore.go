// internal/app/store/users/userstore.go
package userstore

// Terminology: User Identifiers
//   - UID / uid: The string _id of a profile document. For an activated
//     account this is the auth provider's identifier; for a whitelist
//     placeholder it is the candidate's lowercased email.

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratapress/internal/app/system/normalize"
	"github.com/dalemusser/stratapress/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the profile collection name.
const Collection = "users"

// ErrAlreadyWhitelisted is returned when a placeholder is created for an
// email that already has a profile document.
var ErrAlreadyWhitelisted = errors.New("userstore: email already has a profile")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// Get loads a profile by UID. Returns (nil, nil) when no profile exists;
// absence is a normal outcome for callers, not an error.
func (s *Store) Get(ctx context.Context, uid string) (*models.UserProfile, error) {
	if uid == "" {
		return nil, nil
	}
	var u models.UserProfile
	if err := s.c.FindOne(ctx, bson.M{"_id": uid}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail returns every profile whose email matches, normalized. During
// registration this is the whitelist lookup: a placeholder keyed by the email
// means the candidate is pre-registered.
func (s *Store) FindByEmail(ctx context.Context, email string) ([]models.UserProfile, error) {
	email = normalize.Email(email)
	if email == "" {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var profiles []models.UserProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// List returns all profiles, most recently updated first.
func (s *Store) List(ctx context.Context) ([]models.UserProfile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var profiles []models.UserProfile
	if err := cur.All(ctx, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ProfilePatch carries the fields of a merge-save. Nil pointers leave the
// stored value untouched.
type ProfilePatch struct {
	Email       *string
	DisplayName *string
	Role        *string
	Position    *string
	PhotoURL    *string
}

// SaveMerge upserts a profile document, setting only the fields present in
// the patch. updated_at is always refreshed; created_at is set only when the
// document is first inserted.
func (s *Store) SaveMerge(ctx context.Context, uid string, patch ProfilePatch) error {
	now := time.Now().UTC()

	set := bson.M{"updated_at": now}
	if patch.Email != nil {
		set["email"] = normalize.Email(*patch.Email)
	}
	if patch.DisplayName != nil {
		set["display_name"] = normalize.Name(*patch.DisplayName)
	}
	if patch.Role != nil {
		set["role"] = normalize.Role(*patch.Role)
	}
	if patch.Position != nil {
		set["position"] = normalize.Name(*patch.Position)
	}
	if patch.PhotoURL != nil {
		set["photo_url"] = *patch.PhotoURL
	}

	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"created_at": now},
		},
		options.Update().SetUpsert(true))
	return err
}

// Put replaces (or inserts) a whole profile document. The registration flow
// uses this to write the migrated profile under its new UID.
func (s *Store) Put(ctx context.Context, profile *models.UserProfile) error {
	_, err := s.c.ReplaceOne(ctx,
		bson.M{"_id": profile.UID},
		profile,
		options.Replace().SetUpsert(true))
	return err
}

// CreatePlaceholder pre-provisions a profile for a future staff member,
// keyed by their lowercased email. Returns ErrAlreadyWhitelisted when a
// profile with that key already exists.
func (s *Store) CreatePlaceholder(ctx context.Context, email, displayName, role, position string) (*models.UserProfile, error) {
	now := time.Now().UTC()
	email = normalize.Email(email)

	profile := &models.UserProfile{
		UID:         email,
		Email:       email,
		DisplayName: normalize.Name(displayName),
		Role:        normalize.Role(role),
		Position:    normalize.Name(position),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.c.InsertOne(ctx, profile); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrAlreadyWhitelisted
		}
		return nil, err
	}
	return profile, nil
}

// Delete removes a profile by UID. An empty uid is a no-op, matching the
// admin UI which calls delete with whatever key it has. Returns the number
// of documents removed.
func (s *Store) Delete(ctx context.Context, uid string) (int64, error) {
	if uid == "" {
		return 0, nil
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": uid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
