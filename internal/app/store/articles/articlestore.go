// internal/app/store/articles/articlestore.go
package articlestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/stratapress/internal/app/system/htmlsanitize"
	"github.com/dalemusser/stratapress/internal/app/system/normalize"
	"github.com/dalemusser/stratapress/internal/app/system/slug"
	"github.com/dalemusser/stratapress/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the article collection name.
const Collection = "articles"

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// List returns articles newest first. A non-empty author restricts the list
// to that author's articles; staff listings always pass their own display
// name here.
func (s *Store) List(ctx context.Context, author string) ([]models.Article, error) {
	filter := bson.M{}
	if author != "" {
		filter["author"] = author
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var articles []models.Article
	if err := cur.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// Get loads an article by ID. Returns (nil, nil) when no article exists.
func (s *Store) Get(ctx context.Context, id string) (*models.Article, error) {
	if id == "" {
		return nil, nil
	}
	var a models.Article
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new article, filling in the derived fields: a fresh ID,
// the slug from the title, normalized tags, a sanitized excerpt, and the
// creation timestamp.
func (s *Store) Create(ctx context.Context, a *models.Article) error {
	a.ID = primitive.NewObjectID().Hex()
	a.Slug = slug.Make(a.Title)
	a.Tags = normalize.Tags(a.Tags)
	a.Excerpt = htmlsanitize.StripTags(a.Excerpt)
	a.CreatedAt = time.Now().UTC()

	_, err := s.c.InsertOne(ctx, a)
	return err
}

// ArticlePatch carries the fields of a merge-update. Nil pointers leave the
// stored value untouched.
type ArticlePatch struct {
	Title     *string
	Thumbnail *string
	Content   *string
	Excerpt   *string
	Author    *string
	Category  *string
	Tags      *[]string
	Status    *string
}

// HasTags reports whether the patch touches the tag list.
func (p *ArticlePatch) HasTags() bool {
	return p.Tags != nil
}

// UpdateMerge applies the patch to an article, setting only the fields
// present. A new title re-derives the slug; the slug is never written on its
// own. Returns the updated article, or (nil, nil) when no article matched.
// created_at is never touched by updates.
func (s *Store) UpdateMerge(ctx context.Context, id string, patch ArticlePatch) (*models.Article, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
		set["slug"] = slug.Make(*patch.Title)
	}
	if patch.Thumbnail != nil {
		set["thumbnail"] = *patch.Thumbnail
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Excerpt != nil {
		set["excerpt"] = htmlsanitize.StripTags(*patch.Excerpt)
	}
	if patch.Author != nil {
		set["author"] = *patch.Author
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Tags != nil {
		set["tags"] = normalize.Tags(*patch.Tags)
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if len(set) == 0 {
		// Nothing to change; hand back the current document.
		return s.Get(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Article
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an article by ID. Deleting a missing article is not an
// error; the result reports how many documents went away.
func (s *Store) Delete(ctx context.Context, id string) (int64, error) {
	if id == "" {
		return 0, nil
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// Stats summarizes article counts, optionally restricted to one author.
type Stats struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
	Drafts    int64 `json:"drafts"`
}

// CountStats returns article counts by status. A non-empty author restricts
// the counts to that author's articles.
func (s *Store) CountStats(ctx context.Context, author string) (Stats, error) {
	base := bson.M{}
	if author != "" {
		base["author"] = author
	}

	total, err := s.c.CountDocuments(ctx, base)
	if err != nil {
		return Stats{}, err
	}

	published := bson.M{"status": models.StatusPublished}
	if author != "" {
		published["author"] = author
	}
	pub, err := s.c.CountDocuments(ctx, published)
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		Total:     total,
		Published: pub,
		Drafts:    total - pub,
	}, nil
}
