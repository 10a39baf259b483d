// internal/app/store/tags/tagstore.go
package tagstore

import (
	"context"

	"github.com/dalemusser/stratapress/internal/app/system/normalize"
	"github.com/dalemusser/stratapress/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the tag collection name.
const Collection = "tags"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// ListKeys returns every tag key, sorted. The admin UI uses these for
// tag suggestions.
func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var keys []string
	for cur.Next(ctx) {
		var tag models.Tag
		if err := cur.Decode(&tag); err != nil {
			return nil, err
		}
		keys = append(keys, tag.Key)
	}
	return keys, cur.Err()
}

// Sync upserts a tag document for each tag in the list, keyed by the
// lowercased text so "AI" and "ai" land on one document. The display name
// keeps the casing of the tag's first use. usage_count is merge-written as
// the literal 1 on every sync, never incremented; it is not a counter and
// read paths must not treat it as one.
//
// Sync takes the tags as the author typed them, before normalization, so it
// can record the first-use casing. Blanks and duplicates are skipped.
func (s *Store) Sync(ctx context.Context, tags []string) error {
	seen := make(map[string]struct{}, len(tags))
	for _, raw := range tags {
		key := normalize.Tag(raw)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		_, err := s.c.UpdateOne(ctx,
			bson.M{"_id": key},
			bson.M{
				"$set":         bson.M{"usage_count": 1},
				"$setOnInsert": bson.M{"name": normalize.Name(raw)},
			},
			options.Update().SetUpsert(true))
		if err != nil {
			return err
		}
	}
	return nil
}
