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

// shopRepository implements ShopRepository over the three listing
// collections. Union lookups probe them in a fixed order: admin shops,
// legacy shops, agent shops. First match wins.
type shopRepository struct {
	admin  *mongo.Collection
	legacy *mongo.Collection
	agent  *mongo.Collection
}

// NewShopRepository creates a new shop repository
func NewShopRepository(db *config.Database) ShopRepository {
	return &shopRepository{
		admin:  db.Collection(config.CollShops),
		legacy: db.Collection(config.CollLegacy),
		agent:  db.Collection(config.CollAgentShops),
	}
}

// ordered returns the collections in union resolution order
func (r *shopRepository) ordered() []struct {
	kind string
	coll *mongo.Collection
} {
	return []struct {
		kind string
		coll *mongo.Collection
	}{
		{domain.ShopKindAdmin, r.admin},
		{domain.ShopKindLegacy, r.legacy},
		{domain.ShopKindAgent, r.agent},
	}
}

func (r *shopRepository) collFor(kind string) *mongo.Collection {
	switch kind {
	case domain.ShopKindLegacy:
		return r.legacy
	case domain.ShopKindAgent:
		return r.agent
	default:
		return r.admin
	}
}

// Create creates an admin-owned shop
func (r *shopRepository) Create(ctx context.Context, shop *models.Shop) error {
	return r.insert(ctx, r.admin, shop)
}

// CreateAgentShop creates an agent-registered shop
func (r *shopRepository) CreateAgentShop(ctx context.Context, shop *models.Shop) error {
	return r.insert(ctx, r.agent, shop)
}

func (r *shopRepository) insert(ctx context.Context, coll *mongo.Collection, shop *models.Shop) error {
	now := time.Now()
	shop.CreatedAt = now
	shop.UpdatedAt = now

	result, err := coll.InsertOne(ctx, shop)
	if err != nil {
		return err
	}
	shop.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// GetByID gets an admin shop by ID
func (r *shopRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, error) {
	var shop models.Shop
	err := r.admin.FindOne(ctx, bson.M{"_id": id}).Decode(&shop)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShopNotFound
		}
		return nil, err
	}
	return &shop, nil
}

// FindAnyByID resolves a shop ID across all three collections in order,
// returning the shop and the kind of the collection that matched
func (r *shopRepository) FindAnyByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, string, error) {
	for _, entry := range r.ordered() {
		var shop models.Shop
		err := entry.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&shop)
		if err == nil {
			return &shop, entry.kind, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, "", err
		}
	}
	return nil, "", domain.ErrShopNotFound
}

// List lists admin shops with pagination
func (r *shopRepository) List(ctx context.Context, offset, limit int) ([]*models.Shop, int64, error) {
	return r.find(ctx, r.admin, bson.M{}, offset, limit)
}

// ListVisible lists shops the public may see: visible and unexpired,
// merged from the admin and agent collections. The union is windowed as
// one result set so a page never exceeds the requested limit.
func (r *shopRepository) ListVisible(ctx context.Context, offset, limit int) ([]*models.Shop, int64, error) {
	filter := bson.M{
		"isVisible":  true,
		"expiryDate": bson.M{"$gt": time.Now()},
	}

	total, err := r.admin.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	agentTotal, err := r.agent.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$unionWith", Value: bson.D{
			{Key: "coll", Value: r.agent.Name()},
			{Key: "pipeline", Value: mongo.Pipeline{{{Key: "$match", Value: filter}}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$skip", Value: int64(offset)}},
		{{Key: "$limit", Value: int64(limit)}},
	}

	cursor, err := r.admin.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var shops []*models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, 0, err
	}

	return shops, total + agentTotal, nil
}

// ListByAgent lists all shops registered by an agent
func (r *shopRepository) ListByAgent(ctx context.Context, agentID primitive.ObjectID) ([]*models.Shop, error) {
	return r.findAll(ctx, r.agent, bson.M{"agentId": agentID})
}

// ListPaidByAgent lists an agent's shops with confirmed payment
func (r *shopRepository) ListPaidByAgent(ctx context.Context, agentID primitive.ObjectID) ([]*models.Shop, error) {
	return r.findAll(ctx, r.agent, bson.M{
		"agentId":       agentID,
		"paymentStatus": domain.PaymentPaid,
	})
}

// Update replaces the mutable fields of an admin shop
func (r *shopRepository) Update(ctx context.Context, shop *models.Shop) error {
	shop.UpdatedAt = time.Now()

	result, err := r.admin.ReplaceOne(ctx, bson.M{"_id": shop.ID}, shop)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}

// Delete removes an admin shop
func (r *shopRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.admin.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}

// MarkPaid transitions a shop PENDING -> PAID in its own collection
func (r *shopRepository) MarkPaid(ctx context.Context, id primitive.ObjectID, kind string) error {
	result, err := r.collFor(kind).UpdateOne(ctx,
		bson.M{"_id": id, "paymentStatus": domain.PaymentPending},
		bson.M{"$set": bson.M{"paymentStatus": domain.PaymentPaid, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrShopAlreadyPaid
	}
	return nil
}

// SetVisibility sets the isVisible flag in the shop's own collection
func (r *shopRepository) SetVisibility(ctx context.Context, id primitive.ObjectID, kind string, visible bool) error {
	result, err := r.collFor(kind).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isVisible": visible, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrShopNotFound
	}
	return nil
}

// IncrementVisits bumps the visit counter on whichever collection holds the
// shop, probing in union order with first-match-wins semantics
func (r *shopRepository) IncrementVisits(ctx context.Context, id primitive.ObjectID) (string, error) {
	for _, entry := range r.ordered() {
		result, err := entry.coll.UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$inc": bson.M{"visits": 1}},
		)
		if err != nil {
			return "", err
		}
		if result.MatchedCount > 0 {
			return entry.kind, nil
		}
	}
	return "", domain.ErrShopNotFound
}

func (r *shopRepository) find(ctx context.Context, coll *mongo.Collection, filter bson.M, offset, limit int) ([]*models.Shop, int64, error) {
	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(int64(offset)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var shops []*models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, 0, err
	}

	return shops, total, nil
}

func (r *shopRepository) findAll(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]*models.Shop, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shops []*models.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, err
	}

	return shops, nil
}
