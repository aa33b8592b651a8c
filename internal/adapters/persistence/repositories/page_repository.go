package repositories

import (
	"context"
	"errors"
	"time"

	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/config"
	"shoplocal-api/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// pageRepository implements PageRepository
type pageRepository struct {
	coll *mongo.Collection
}

// NewPageRepository creates a new page repository
func NewPageRepository(db *config.Database) PageRepository {
	return &pageRepository{coll: db.Collection(config.CollPages)}
}

// GetByID gets a page by ID
func (r *pageRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Page, error) {
	var page models.Page
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&page)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetBySlug gets a page by its slug
func (r *pageRepository) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	var page models.Page
	err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&page)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// SlugExists checks whether a slug is already taken
func (r *pageRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"slug": slug})
	return count > 0, err
}

// Create creates a new page
func (r *pageRepository) Create(ctx context.Context, page *models.Page) error {
	now := time.Now()
	page.CreatedAt = now
	page.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, page)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugTaken
		}
		return err
	}
	page.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// List lists pages with pagination
func (r *pageRepository) List(ctx context.Context, offset, limit int) ([]*models.Page, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var pages []*models.Page
	if err := cursor.All(ctx, &pages); err != nil {
		return nil, 0, err
	}

	return pages, total, nil
}

// Update replaces the mutable fields of a page
func (r *pageRepository) Update(ctx context.Context, page *models.Page) error {
	page.UpdatedAt = time.Now()

	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": page.ID}, page)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrSlugTaken
		}
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrPageNotFound
	}
	return nil
}

// Delete removes a page
func (r *pageRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrPageNotFound
	}
	return nil
}
