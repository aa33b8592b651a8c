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

// agentRepository implements AgentRepository
type agentRepository struct {
	coll *mongo.Collection
}

// NewAgentRepository creates a new agent repository
func NewAgentRepository(db *config.Database) AgentRepository {
	return &agentRepository{coll: db.Collection(config.CollAgents)}
}

// GetByID gets an agent by ID
func (r *agentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Agent, error) {
	var agent models.Agent
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&agent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, err
	}
	return &agent, nil
}

// GetByEmail gets an agent by email
func (r *agentRepository) GetByEmail(ctx context.Context, email string) (*models.Agent, error) {
	var agent models.Agent
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&agent)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, err
	}
	return &agent, nil
}

// Create creates a new agent
func (r *agentRepository) Create(ctx context.Context, agent *models.Agent) error {
	now := time.Now()
	agent.CreatedAt = now
	agent.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, agent)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEntry
		}
		return err
	}
	agent.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// List lists agents with pagination
func (r *agentRepository) List(ctx context.Context, offset, limit int) ([]*models.Agent, int64, error) {
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

	var agents []*models.Agent
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, 0, err
	}

	return agents, total, nil
}

// SetActive toggles the active flag (soft deactivation, never hard delete)
func (r *agentRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return r.updateByID(ctx, id, bson.M{"isActive": active})
}

// UpdatePasswordHash replaces the stored password hash
func (r *agentRepository) UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error {
	return r.updateByID(ctx, id, bson.M{"passwordHash": hash})
}

// UpdateEarnings writes the recomputed counters onto the agent document
// in one atomic update
func (r *agentRepository) UpdateEarnings(ctx context.Context, id primitive.ObjectID, totalShops int64, totalEarnings float64) error {
	return r.updateByID(ctx, id, bson.M{
		"totalShops":    totalShops,
		"totalEarnings": totalEarnings,
	})
}

func (r *agentRepository) updateByID(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	fields["updatedAt"] = time.Now()

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}
