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

// operatorRepository implements OperatorRepository
type operatorRepository struct {
	coll *mongo.Collection
}

// NewOperatorRepository creates a new operator repository
func NewOperatorRepository(db *config.Database) OperatorRepository {
	return &operatorRepository{coll: db.Collection(config.CollOperators)}
}

// GetActiveByID gets an operator by ID, requiring isActive == true.
// A deactivated operator resolves as not found even with a valid token,
// which deauthorizes it immediately without a revocation list.
func (r *operatorRepository) GetActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Operator, error) {
	var operator models.Operator
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "isActive": true}).Decode(&operator)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOperatorNotFound
		}
		return nil, err
	}
	return &operator, nil
}

// GetByPhone gets an operator by phone number
func (r *operatorRepository) GetByPhone(ctx context.Context, phone string) (*models.Operator, error) {
	var operator models.Operator
	err := r.coll.FindOne(ctx, bson.M{"phone": phone}).Decode(&operator)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOperatorNotFound
		}
		return nil, err
	}
	return &operator, nil
}

// Create creates a new operator
func (r *operatorRepository) Create(ctx context.Context, operator *models.Operator) error {
	now := time.Now()
	operator.CreatedAt = now
	operator.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, operator)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEntry
		}
		return err
	}
	operator.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// List lists operators with pagination
func (r *operatorRepository) List(ctx context.Context, offset, limit int) ([]*models.Operator, int64, error) {
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

	var operators []*models.Operator
	if err := cursor.All(ctx, &operators); err != nil {
		return nil, 0, err
	}

	return operators, total, nil
}

// SetActive toggles the active flag (soft deactivation, never hard delete)
func (r *operatorRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	result, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrOperatorNotFound
	}
	return nil
}
