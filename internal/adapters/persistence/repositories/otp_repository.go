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

// otpRepository implements OTPRepository
type otpRepository struct {
	coll *mongo.Collection
}

// NewOTPRepository creates a new OTP repository
func NewOTPRepository(db *config.Database) OTPRepository {
	return &otpRepository{coll: db.Collection(config.CollOTPs)}
}

// Create stores a one-time code, replacing any outstanding code for the
// same email
func (r *otpRepository) Create(ctx context.Context, otp *models.OTP) error {
	otp.CreatedAt = time.Now()

	if err := r.DeleteByEmail(ctx, otp.Email); err != nil {
		return err
	}

	result, err := r.coll.InsertOne(ctx, otp)
	if err != nil {
		return err
	}
	otp.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// GetByEmail returns the most recent code for an email
func (r *otpRepository) GetByEmail(ctx context.Context, email string) (*models.OTP, error) {
	var otp models.OTP
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&otp)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}
	return &otp, nil
}

// DeleteByEmail removes all codes for an email
func (r *otpRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"email": email})
	return err
}
