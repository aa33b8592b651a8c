package services

import (
	"context"
	"testing"

	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeShopRepo is an in-memory ShopRepository over the three listing
// collections
type fakeShopRepo struct {
	shops map[primitive.ObjectID]*models.Shop
	kinds map[primitive.ObjectID]string
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{
		shops: make(map[primitive.ObjectID]*models.Shop),
		kinds: make(map[primitive.ObjectID]string),
	}
}

func (r *fakeShopRepo) insert(shop *models.Shop, kind string) {
	shop.ID = primitive.NewObjectID()
	r.shops[shop.ID] = shop
	r.kinds[shop.ID] = kind
}

func (r *fakeShopRepo) Create(_ context.Context, shop *models.Shop) error {
	r.insert(shop, domain.ShopKindAdmin)
	return nil
}

func (r *fakeShopRepo) CreateAgentShop(_ context.Context, shop *models.Shop) error {
	r.insert(shop, domain.ShopKindAgent)
	return nil
}

func (r *fakeShopRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Shop, error) {
	shop, ok := r.shops[id]
	if !ok || r.kinds[id] != domain.ShopKindAdmin {
		return nil, domain.ErrShopNotFound
	}
	return shop, nil
}

func (r *fakeShopRepo) FindAnyByID(_ context.Context, id primitive.ObjectID) (*models.Shop, string, error) {
	shop, ok := r.shops[id]
	if !ok {
		return nil, "", domain.ErrShopNotFound
	}
	return shop, r.kinds[id], nil
}

func (r *fakeShopRepo) List(_ context.Context, _, _ int) ([]*models.Shop, int64, error) {
	var shops []*models.Shop
	for _, shop := range r.shops {
		shops = append(shops, shop)
	}
	return shops, int64(len(shops)), nil
}

func (r *fakeShopRepo) ListVisible(_ context.Context, offset, limit int) ([]*models.Shop, int64, error) {
	var shops []*models.Shop
	for _, shop := range r.shops {
		if shop.IsVisible && r.kinds[shop.ID] != domain.ShopKindLegacy {
			shops = append(shops, shop)
		}
	}

	// Window the merged union like the real adapter does
	total := int64(len(shops))
	if offset >= len(shops) {
		return nil, total, nil
	}
	shops = shops[offset:]
	if limit < len(shops) {
		shops = shops[:limit]
	}
	return shops, total, nil
}

func (r *fakeShopRepo) ListByAgent(_ context.Context, agentID primitive.ObjectID) ([]*models.Shop, error) {
	var shops []*models.Shop
	for _, shop := range r.shops {
		if shop.AgentID != nil && *shop.AgentID == agentID {
			shops = append(shops, shop)
		}
	}
	return shops, nil
}

func (r *fakeShopRepo) ListPaidByAgent(_ context.Context, agentID primitive.ObjectID) ([]*models.Shop, error) {
	var shops []*models.Shop
	for _, shop := range r.shops {
		if shop.AgentID != nil && *shop.AgentID == agentID && shop.PaymentStatus == domain.PaymentPaid {
			shops = append(shops, shop)
		}
	}
	return shops, nil
}

func (r *fakeShopRepo) Update(_ context.Context, shop *models.Shop) error {
	if _, ok := r.shops[shop.ID]; !ok {
		return domain.ErrShopNotFound
	}
	r.shops[shop.ID] = shop
	return nil
}

func (r *fakeShopRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.shops[id]; !ok {
		return domain.ErrShopNotFound
	}
	delete(r.shops, id)
	delete(r.kinds, id)
	return nil
}

func (r *fakeShopRepo) MarkPaid(_ context.Context, id primitive.ObjectID, kind string) error {
	shop, ok := r.shops[id]
	if !ok || r.kinds[id] != kind {
		return domain.ErrShopNotFound
	}
	if shop.PaymentStatus == domain.PaymentPaid {
		return domain.ErrShopAlreadyPaid
	}
	shop.PaymentStatus = domain.PaymentPaid
	return nil
}

func (r *fakeShopRepo) SetVisibility(_ context.Context, id primitive.ObjectID, kind string, visible bool) error {
	shop, ok := r.shops[id]
	if !ok || r.kinds[id] != kind {
		return domain.ErrShopNotFound
	}
	shop.IsVisible = visible
	return nil
}

func (r *fakeShopRepo) IncrementVisits(_ context.Context, id primitive.ObjectID) (string, error) {
	shop, ok := r.shops[id]
	if !ok {
		return "", domain.ErrShopNotFound
	}
	shop.Visits++
	return r.kinds[id], nil
}

func seedAgentShop(repo *fakeShopRepo, agentID primitive.ObjectID, amount float64, paid bool) {
	status := domain.PaymentPending
	if paid {
		status = domain.PaymentPaid
	}
	repo.insert(&models.Shop{
		Name:          "shop",
		AgentID:       &agentID,
		Amount:        amount,
		PaymentStatus: status,
	}, domain.ShopKindAgent)
}

func TestRecalculateEarnings(t *testing.T) {
	agentRepo := &fakeAgentRepo{agents: map[primitive.ObjectID]*models.Agent{}}
	shopRepo := newFakeShopRepo()
	svc := NewAgentService(agentRepo, shopRepo)

	agent := &models.Agent{Code: "AGT-TEST", Email: "agent@example.com", IsActive: true}
	require.NoError(t, agentRepo.Create(context.Background(), agent))

	// Three paid shops and one pending: earnings count only the paid
	// ones, the shop counter counts all of them
	seedAgentShop(shopRepo, agent.ID, 100, true)
	seedAgentShop(shopRepo, agent.ID, 250, true)
	seedAgentShop(shopRepo, agent.ID, 333, true)
	seedAgentShop(shopRepo, agent.ID, 999, false)

	updated, err := svc.RecalculateEarnings(context.Background(), agent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), updated.TotalShops)
	assert.Equal(t, float64(137), updated.TotalEarnings)

	stored, err := agentRepo.GetByID(context.Background(), agent.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(137), stored.TotalEarnings)
}

func TestRecalculateEarningsIdempotent(t *testing.T) {
	agentRepo := &fakeAgentRepo{agents: map[primitive.ObjectID]*models.Agent{}}
	shopRepo := newFakeShopRepo()
	svc := NewAgentService(agentRepo, shopRepo)

	agent := &models.Agent{Code: "AGT-TEST", Email: "agent@example.com", IsActive: true}
	require.NoError(t, agentRepo.Create(context.Background(), agent))

	seedAgentShop(shopRepo, agent.ID, 100, true)

	for i := 0; i < 3; i++ {
		updated, err := svc.RecalculateEarnings(context.Background(), agent.ID)
		require.NoError(t, err)
		assert.Equal(t, float64(20), updated.TotalEarnings)
	}
}

func TestCreateAgentGeneratesCode(t *testing.T) {
	agentRepo := &fakeAgentRepo{agents: map[primitive.ObjectID]*models.Agent{}}
	svc := NewAgentService(agentRepo, newFakeShopRepo())

	agent, err := svc.Create(context.Background(), &CreateAgentInput{
		Name:     "  Jo Field  ",
		Email:    "jo@example.com",
		Phone:    "+15550003333",
		Password: "agent-password",
	})
	require.NoError(t, err)
	assert.Regexp(t, `^AGT-[0-9A-F]{8}$`, agent.Code)
	assert.Equal(t, "Jo Field", agent.Name)
	assert.True(t, agent.IsActive)
	assert.NotEqual(t, "agent-password", agent.PasswordHash)
}
