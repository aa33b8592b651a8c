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

// adminUserRepository implements AdminUserRepository
type adminUserRepository struct {
	coll *mongo.Collection
}

// NewAdminUserRepository creates a new admin user repository
func NewAdminUserRepository(db *config.Database) AdminUserRepository {
	return &adminUserRepository{coll: db.Collection(config.CollAdminUsers)}
}

// GetByID gets an admin user by ID
func (r *adminUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail gets an admin user by email
func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAdminNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create creates a new admin user
func (r *adminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEntry
		}
		return err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// List lists admin users with pagination
func (r *adminUserRepository) List(ctx context.Context, offset, limit int) ([]*models.AdminUser, int64, error) {
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

	var users []*models.AdminUser
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
